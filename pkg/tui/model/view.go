package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/tailview/pkg/core"
	"github.com/modoterra/tailview/pkg/filter"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	stampStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the TUI.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	// Form overlay
	if a.form != nil {
		return paneStyle.Width(a.width - 4).Height(a.height - 2).Render(a.form.view())
	}

	// Picker overlays
	switch a.mode {
	case ModeFavorites:
		return a.renderPicker(" Favorites ", a.favoriteLines(), a.favIdx,
			"enter:tail  d:delete  esc:close")
	case ModeUnits:
		return a.renderPicker(" Systemd Units ", a.unitLines(), a.unitIdx,
			"enter:tail unit  esc:close")
	}

	header := a.renderHeader()
	statusBar := a.renderStatusBar()

	bodyH := a.height - lipgloss.Height(header) - lipgloss.Height(statusBar) - 2
	if bodyH < 1 {
		bodyH = 1
	}

	entries := filter.Apply(a.collector.Entries(), a.filter, time.Now())
	body := a.renderEntries(entries, a.width-4, bodyH)
	pane := paneStyle.Width(a.width - 2).Height(bodyH).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, pane, statusBar)
}

func (a App) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" tailview "))
	b.WriteString(dimStyle.Render(" tailing: "))
	b.WriteString(truncate(a.collector.Command(), a.width/2))

	if a.mode == ModeCommand {
		return b.String() + "\n" + dimStyle.Render(" command: ") + a.command.View()
	}
	if a.mode == ModeSaveFavorite {
		return b.String() + "\n" + dimStyle.Render(" name: ") + a.favName.View()
	}

	filters := fmt.Sprintf(" level:%s  mode:%s  time:%s",
		a.levelLabel(), a.filter.Mode, a.spanLabel())
	line2 := dimStyle.Render(filters)
	if a.mode == ModeSearch || a.filter.Search != "" {
		line2 += dimStyle.Render("  search: ") + a.search.View()
	}
	return b.String() + "\n" + line2
}

func (a App) levelLabel() string {
	if a.levelIdx < 0 || a.levelIdx >= len(core.LevelTokens) {
		return "all"
	}
	return core.LevelTokens[a.levelIdx]
}

func (a App) spanLabel() string {
	switch a.filter.Span.Kind {
	case filter.SpanPreset:
		return string(a.filter.Span.Preset)
	case filter.SpanCustom:
		return "custom"
	case filter.SpanRelative:
		return fmt.Sprintf("last %d %s", a.filter.Span.Amount, a.filter.Span.Unit)
	}
	return "off"
}

func (a App) renderEntries(entries []core.Entry, w, h int) string {
	if len(entries) == 0 {
		if err := a.collector.Err(); err != nil {
			return errorStyle.Render("source unavailable: " + err.Error())
		}
		if a.collector.Loading() {
			return dimStyle.Render("waiting for output...")
		}
		return dimStyle.Render("no entries")
	}

	start := len(entries) - h
	if start < 0 {
		start = 0
	}
	if !a.autoScroll {
		start = a.scroll
		if start > len(entries)-1 {
			start = len(entries) - 1
		}
	}

	contentW := w - len(core.TimeFormat) - 2
	if contentW < 8 {
		contentW = 8
	}

	var b strings.Builder
	for i := start; i < len(entries) && i-start < h; i++ {
		e := entries[i]
		b.WriteString(stampStyle.Render(e.Timestamp))
		b.WriteString("  ")
		b.WriteString(truncate(e.Content, contentW))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderPicker(title string, lines []string, selected int, help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")

	maxVisible := a.height - 6
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := 0
	if selected >= maxVisible {
		start = selected - maxVisible + 1
	}

	w := a.width - 6
	for i := start; i < len(lines) && i-start < maxVisible; i++ {
		line := " " + truncate(lines[i], w)
		if i == selected {
			line = selectedStyle.Width(w).Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  "+help))
	return paneStyle.Width(a.width - 4).Height(a.height - 2).Render(b.String())
}

func (a App) favoriteLines() []string {
	lines := make([]string, len(a.cfg.Favorites))
	for i, f := range a.cfg.Favorites {
		lines[i] = fmt.Sprintf("%-20s %s", f.Name, f.Command)
	}
	return lines
}

func (a App) unitLines() []string {
	lines := make([]string, len(a.units))
	for i, u := range a.units {
		state := u.ActiveState
		if state == "active" {
			state = activeStyle.Render(state)
		} else {
			state = dimStyle.Render(state)
		}
		lines[i] = fmt.Sprintf("%-40s %s  %s", u.Name, state, u.Description)
	}
	return lines
}

func (a App) renderStatusBar() string {
	left := a.statusMsg
	if left == "" {
		left = fmt.Sprintf(" %d entries", a.collector.Len())
		if a.collector.Loading() {
			left += dimStyle.Render("  collecting...")
		}
		if !a.autoScroll {
			left += dimStyle.Render("  [scroll locked]")
		}
	}
	right := "/:search l:level m:mode t:time T:custom y:relative e:command f:fav u:units r:restart c:clear a:follow q:quit"
	switch a.mode {
	case ModeSearch:
		right = "enter:keep esc:clear"
	case ModeCommand, ModeSaveFavorite:
		right = "enter:apply esc:cancel"
	}

	gap := a.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return helpStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
