package model

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/tailview/pkg/core"
	"github.com/modoterra/tailview/pkg/filter"
	"github.com/modoterra/tailview/pkg/ingest"
	"github.com/modoterra/tailview/pkg/providers/journal"
	"github.com/modoterra/tailview/pkg/settings"
)

// Mode identifies the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
	ModeFavorites
	ModeSaveFavorite
	ModeUnits
	ModeCustomRange
	ModeRelativeRange
)

// App is the root Bubble Tea model. It owns the collector and the filter
// state; all engine mutation happens on this single update loop.
type App struct {
	collector *ingest.Collector
	filter    filter.State
	cfg       settings.Settings
	cfgPath   string
	logger    *slog.Logger

	// Level cycling: -1 selects all levels, otherwise an index into
	// core.LevelTokens.
	levelIdx int
	// Preset cycling: -1 disables time filtering, otherwise an index
	// into filter.Presets.
	presetIdx int

	mode    Mode
	search  textinput.Model
	command textinput.Model
	favName textinput.Model
	form    *rangeForm

	units   []journal.Unit
	unitIdx int
	favIdx  int

	autoScroll bool
	scroll     int

	width  int
	height int

	statusMsg string
}

// New creates the TUI model around an already-configured collector.
func New(collector *ingest.Collector, cfg settings.Settings, cfgPath string, logger *slog.Logger) App {
	search := textinput.New()
	search.Placeholder = "search..."
	search.CharLimit = 128

	command := textinput.New()
	command.Placeholder = "command to tail"
	command.CharLimit = 256

	favName := textinput.New()
	favName.Placeholder = "favorite name"
	favName.CharLimit = 64

	return App{
		collector:  collector,
		filter:     filter.NewState(),
		cfg:        cfg,
		cfgPath:    cfgPath,
		logger:     logger,
		levelIdx:   -1,
		presetIdx:  -1,
		search:     search,
		command:    command,
		favName:    favName,
		autoScroll: true,
	}
}

// Init starts the collection and the drain tick.
func (a App) Init() tea.Cmd {
	a.collector.Start()
	return tea.Batch(
		a.tickCmd(),
		tea.SetWindowTitle("tailview"),
	)
}

// tickMsg triggers one drain per refresh interval.
type tickMsg time.Time

// unitsMsg carries the systemd unit list for the picker.
type unitsMsg struct {
	units []journal.Unit
	err   error
}

func (a App) tickCmd() tea.Cmd {
	interval := time.Duration(a.cfg.RefreshIntervalMs) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadUnitsCmd(logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		units, err := journal.ListUnits(ctx, logger)
		return unitsMsg{units: units, err: err}
	}
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.collector.Drain()
		return a, a.tickCmd()

	case unitsMsg:
		if msg.err != nil {
			a.statusMsg = "units: " + msg.err.Error()
			a.mode = ModeNormal
			return a, nil
		}
		a.units = msg.units
		a.unitIdx = 0
		a.mode = ModeUnits
		a.statusMsg = ""
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeSearch:
		return a.handleSearchKey(msg)
	case ModeCommand:
		return a.handleCommandKey(msg)
	case ModeSaveFavorite:
		return a.handleSaveFavoriteKey(msg)
	case ModeFavorites:
		return a.handleFavoritesKey(msg)
	case ModeUnits:
		return a.handleUnitsKey(msg)
	case ModeCustomRange, ModeRelativeRange:
		return a.handleFormKey(msg)
	}
	return a.handleNormalKey(msg)
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.collector.Stop()
		return a, tea.Quit

	case "/":
		a.mode = ModeSearch
		a.search.Focus()
		return a, textinput.Blink

	case "l":
		a.cycleLevel(1)
	case "L":
		a.cycleLevel(-1)

	case "m":
		if a.filter.Mode == core.IncludeSelected {
			a.filter.Mode = core.ExcludeSelected
		} else {
			a.filter.Mode = core.IncludeSelected
		}

	case "t":
		a.cyclePreset()
	case "T":
		a.form = newCustomRangeForm(time.Now())
		a.mode = ModeCustomRange
		return a, textinput.Blink
	case "y":
		a.form = newRelativeRangeForm()
		a.mode = ModeRelativeRange
		return a, textinput.Blink

	case "c":
		a.collector.Clear()
		a.scroll = 0
		a.statusMsg = "cleared"

	case "r":
		a.collector.Restart()
		a.scroll = 0
		a.statusMsg = "restarted " + a.collector.Command()

	case "e":
		a.command.SetValue(a.collector.Command())
		a.command.Focus()
		a.mode = ModeCommand
		return a, textinput.Blink

	case "f":
		if len(a.cfg.Favorites) == 0 {
			a.statusMsg = "no favorites saved"
			return a, nil
		}
		a.favIdx = 0
		a.mode = ModeFavorites
	case "F":
		a.favName.SetValue("")
		a.favName.Focus()
		a.mode = ModeSaveFavorite
		return a, textinput.Blink

	case "u":
		a.statusMsg = "listing systemd units..."
		return a, loadUnitsCmd(a.logger)

	case "a":
		a.autoScroll = !a.autoScroll
		if a.autoScroll {
			a.scroll = 0
		}

	case "j", "down":
		if !a.autoScroll {
			a.scroll++
		}
	case "k", "up":
		if !a.autoScroll && a.scroll > 0 {
			a.scroll--
		}
	case "g":
		a.autoScroll = false
		a.scroll = 0
	case "G":
		a.autoScroll = true
		a.scroll = 0
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		a.search.SetValue("")
		a.search.Blur()
		a.filter.Search = ""
		return a, nil
	case "enter":
		a.mode = ModeNormal
		a.search.Blur()
		return a, nil
	default:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.filter.Search = a.search.Value()
		return a, cmd
	}
}

func (a App) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		a.command.Blur()
		return a, nil
	case "enter":
		a.mode = ModeNormal
		a.command.Blur()
		cmd := strings.TrimSpace(a.command.Value())
		if cmd == "" {
			a.statusMsg = "command unchanged"
			return a, nil
		}
		a.applyCommand(cmd)
		return a, nil
	default:
		var cmd tea.Cmd
		a.command, cmd = a.command.Update(msg)
		return a, cmd
	}
}

func (a App) handleSaveFavoriteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		a.favName.Blur()
		return a, nil
	case "enter":
		a.mode = ModeNormal
		a.favName.Blur()
		name := strings.TrimSpace(a.favName.Value())
		if name == "" {
			a.statusMsg = "favorite needs a name"
			return a, nil
		}
		a.cfg.AddFavorite(name, a.collector.Command())
		a.saveSettings()
		a.statusMsg = "saved favorite: " + name
		return a, nil
	default:
		var cmd tea.Cmd
		a.favName, cmd = a.favName.Update(msg)
		return a, cmd
	}
}

func (a App) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
	case "j", "down":
		if a.favIdx < len(a.cfg.Favorites)-1 {
			a.favIdx++
		}
	case "k", "up":
		if a.favIdx > 0 {
			a.favIdx--
		}
	case "d":
		if a.favIdx < len(a.cfg.Favorites) {
			name := a.cfg.Favorites[a.favIdx].Name
			a.cfg.RemoveFavorite(name)
			a.saveSettings()
			a.statusMsg = "removed favorite: " + name
			if a.favIdx >= len(a.cfg.Favorites) {
				a.favIdx = max(0, len(a.cfg.Favorites)-1)
			}
			if len(a.cfg.Favorites) == 0 {
				a.mode = ModeNormal
			}
		}
	case "enter":
		if a.favIdx < len(a.cfg.Favorites) {
			a.mode = ModeNormal
			a.applyCommand(a.cfg.Favorites[a.favIdx].Command)
		}
	}
	return a, nil
}

func (a App) handleUnitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
	case "j", "down":
		if a.unitIdx < len(a.units)-1 {
			a.unitIdx++
		}
	case "k", "up":
		if a.unitIdx > 0 {
			a.unitIdx--
		}
	case "enter":
		if a.unitIdx < len(a.units) {
			a.mode = ModeNormal
			a.applyCommand(journal.FollowCommand(a.units[a.unitIdx].Name))
		}
	}
	return a, nil
}

func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		a.mode = ModeNormal
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		a.form = nil
		return a, nil
	case "enter":
		if a.mode == ModeCustomRange {
			a.filter.Span = a.form.customSpan()
			a.statusMsg = "custom time range applied"
		} else {
			a.filter.Span = a.form.relativeSpan()
			a.statusMsg = "relative time range applied"
		}
		a.presetIdx = -1
		a.mode = ModeNormal
		a.form = nil
		return a, nil
	default:
		cmd := a.form.handleKey(msg)
		return a, cmd
	}
}

// cycleLevel steps the single-token level selection: all levels, then
// each token in severity order.
func (a *App) cycleLevel(dir int) {
	n := len(core.LevelTokens)
	a.levelIdx += dir
	if a.levelIdx >= n {
		a.levelIdx = -1
	}
	if a.levelIdx < -1 {
		a.levelIdx = n - 1
	}
	if a.levelIdx == -1 {
		a.filter.SelectLevel("")
		return
	}
	a.filter.SelectLevel(core.LevelTokens[a.levelIdx])
}

// cyclePreset steps the time span through disabled and each preset.
func (a *App) cyclePreset() {
	a.presetIdx++
	if a.presetIdx >= len(filter.Presets) {
		a.presetIdx = -1
	}
	if a.presetIdx == -1 {
		a.filter.Span = filter.Span{Kind: filter.SpanDisabled}
		return
	}
	a.filter.Span = filter.Span{Kind: filter.SpanPreset, Preset: filter.Presets[a.presetIdx]}
}

// applyCommand switches the ingestion source and persists the choice.
func (a *App) applyCommand(command string) {
	a.collector.SetCommand(command)
	a.collector.Restart()
	a.scroll = 0
	a.cfg.LogCommand = command
	a.saveSettings()
	a.statusMsg = "tailing: " + command
}

func (a *App) saveSettings() {
	if a.cfgPath == "" {
		return
	}
	if err := settings.Save(a.cfgPath, a.cfg); err != nil {
		a.logger.Warn("save settings", "err", err)
		a.statusMsg = "save settings: " + err.Error()
	}
}
