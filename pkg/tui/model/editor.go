package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modoterra/tailview/pkg/filter"
)

// formField is a named text input in a range form.
type formField struct {
	label string
	input textinput.Model
}

// rangeForm is the inline editor for custom and relative time ranges.
// Values that fail to parse resolve to "no time filter" downstream, so
// the form itself never rejects input.
type rangeForm struct {
	title  string
	fields []formField
	active int
}

func newField(label, value string) formField {
	ti := textinput.New()
	ti.Placeholder = label
	ti.SetValue(value)
	ti.CharLimit = 8
	return formField{label: label, input: ti}
}

// newCustomRangeForm builds the from/to form prefilled with now.
func newCustomRangeForm(now time.Time) *rangeForm {
	pad := func(v int) string { return strconv.Itoa(v) }
	fields := []formField{
		newField("from year", pad(now.Year())),
		newField("from month", pad(int(now.Month()))),
		newField("from day", pad(now.Day())),
		newField("from hour", pad(now.Hour())),
		newField("from minute", pad(now.Minute())),
		newField("to year", pad(now.Year())),
		newField("to month", pad(int(now.Month()))),
		newField("to day", pad(now.Day())),
		newField("to hour", pad(now.Hour())),
		newField("to minute", pad(now.Minute())),
	}
	fields[0].input.Focus()
	return &rangeForm{title: "Custom Time Range", fields: fields}
}

// newRelativeRangeForm builds the "within the last N units" form.
func newRelativeRangeForm() *rangeForm {
	fields := []formField{
		newField("amount", "1"),
		newField("unit (minutes|hours|days)", "hours"),
	}
	fields[0].input.Focus()
	return &rangeForm{title: "Relative Time Range", fields: fields}
}

func (f *rangeForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		f.fields[f.active].input.Blur()
		f.active = (f.active + 1) % len(f.fields)
		f.fields[f.active].input.Focus()
		return textinput.Blink
	case "shift+tab":
		f.fields[f.active].input.Blur()
		f.active = (f.active - 1 + len(f.fields)) % len(f.fields)
		f.fields[f.active].input.Focus()
		return textinput.Blink
	default:
		var cmd tea.Cmd
		f.fields[f.active].input, cmd = f.fields[f.active].input.Update(msg)
		return cmd
	}
}

func (f *rangeForm) intAt(i int) int {
	v, err := strconv.Atoi(strings.TrimSpace(f.fields[i].input.Value()))
	if err != nil {
		return 0
	}
	return v
}

// customSpan reads the ten fields into a custom span. Invalid calendar
// combinations disable time filtering when resolved.
func (f *rangeForm) customSpan() filter.Span {
	return filter.Span{
		Kind: filter.SpanCustom,
		From: filter.Bound{
			Year:   f.intAt(0),
			Month:  f.intAt(1),
			Day:    f.intAt(2),
			Hour:   f.intAt(3),
			Minute: f.intAt(4),
		},
		To: filter.Bound{
			Year:   f.intAt(5),
			Month:  f.intAt(6),
			Day:    f.intAt(7),
			Hour:   f.intAt(8),
			Minute: f.intAt(9),
		},
	}
}

// relativeSpan reads amount and unit. Unrecognized units resolve to no
// range downstream.
func (f *rangeForm) relativeSpan() filter.Span {
	return filter.Span{
		Kind:   filter.SpanRelative,
		Amount: f.intAt(0),
		Unit:   filter.Unit(strings.TrimSpace(f.fields[1].input.Value())),
	}
}

// view renders the form overlay.
func (f *rangeForm) view() string {
	s := titleStyle.Render(" "+f.title+" ") + "\n\n"
	for i, field := range f.fields {
		prefix := "  "
		if i == f.active {
			prefix = "▸ "
		}
		s += prefix + dimStyle.Render(field.label+": ") + field.input.View() + "\n"
	}
	s += "\n" + helpStyle.Render("  tab:next  shift+tab:prev  enter:apply  esc:cancel")
	return s
}
