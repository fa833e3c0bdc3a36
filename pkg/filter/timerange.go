package filter

import "time"

// SpanKind selects how the time window is derived.
type SpanKind string

const (
	SpanDisabled SpanKind = "disabled"
	SpanPreset   SpanKind = "preset"
	SpanCustom   SpanKind = "custom"
	SpanRelative SpanKind = "relative"
)

// Preset is a fixed look-back window.
type Preset string

const (
	Last15Min  Preset = "15m"
	Last30Min  Preset = "30m"
	LastHour   Preset = "1h"
	Last6Hours Preset = "6h"
	Last24H    Preset = "24h"
	Last3Days  Preset = "3d"
	LastWeek   Preset = "1w"
	Last30Days Preset = "30d"
)

// Presets lists the selectable look-back windows in menu order.
var Presets = []Preset{
	Last15Min, Last30Min, LastHour, Last6Hours,
	Last24H, Last3Days, LastWeek, Last30Days,
}

// 30d is the fixed calendar approximation for a month.
var presetDurations = map[Preset]time.Duration{
	Last15Min:  15 * time.Minute,
	Last30Min:  30 * time.Minute,
	LastHour:   time.Hour,
	Last6Hours: 6 * time.Hour,
	Last24H:    24 * time.Hour,
	Last3Days:  3 * 24 * time.Hour,
	LastWeek:   7 * 24 * time.Hour,
	Last30Days: 30 * 24 * time.Hour,
}

// Unit is the step size of a relative span.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
)

// Bound is one edge of a custom range. Seconds are fixed by the resolver:
// 0 for the lower bound, 59 for the upper.
type Bound struct {
	Year, Month, Day, Hour, Minute int
}

// Span is a user-facing time filter selection.
type Span struct {
	Kind   SpanKind
	Preset Preset
	From   Bound // custom
	To     Bound // custom
	Amount int   // relative
	Unit   Unit  // relative
}

// Resolve converts a span selection into a concrete [from, to] window.
// ok is false when no time filtering should apply: the span is disabled,
// or any custom field combination does not name a real calendar instant
// (invalid input disables the filter rather than erroring).
func Resolve(span Span, now time.Time) (from, to time.Time, ok bool) {
	switch span.Kind {
	case SpanPreset:
		d, found := presetDurations[span.Preset]
		if !found {
			return time.Time{}, time.Time{}, false
		}
		return now.Add(-d), now, true

	case SpanCustom:
		from, ok := span.From.at(0)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		to, ok := span.To.at(59)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		return from, to, true

	case SpanRelative:
		if span.Amount <= 0 {
			return time.Time{}, time.Time{}, false
		}
		var step time.Duration
		switch span.Unit {
		case UnitMinutes:
			step = time.Minute
		case UnitHours:
			step = time.Hour
		case UnitDays:
			step = 24 * time.Hour
		default:
			return time.Time{}, time.Time{}, false
		}
		return now.Add(-time.Duration(span.Amount) * step), now, true
	}

	return time.Time{}, time.Time{}, false
}

// at builds the bound instant with the given fixed second. time.Date
// normalizes out-of-range fields, so a shifted result means the input was
// not a valid calendar date.
func (b Bound) at(sec int) (time.Time, bool) {
	if b.Month < 1 || b.Month > 12 || b.Day < 1 || b.Day > 31 ||
		b.Hour < 0 || b.Hour > 23 || b.Minute < 0 || b.Minute > 59 {
		return time.Time{}, false
	}
	t := time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, sec, 0, time.Local)
	if t.Year() != b.Year || t.Month() != time.Month(b.Month) || t.Day() != b.Day {
		return time.Time{}, false
	}
	return t, true
}
