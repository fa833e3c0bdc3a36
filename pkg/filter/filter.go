// Package filter evaluates the level, search, and time predicates over
// buffered entries on each query.
package filter

import (
	"strings"
	"time"

	"github.com/modoterra/tailview/pkg/core"
)

// State is the full filter selection. It is mutated by the host UI and
// read on every query; it never touches the buffer.
type State struct {
	Levels map[string]struct{} // lowercase level tokens; empty means match-all
	Mode   core.FilterMode
	Search string
	Span   Span
}

// NewState returns the match-all default: no levels selected, include
// polarity, empty search, time filtering disabled.
func NewState() State {
	return State{
		Levels: make(map[string]struct{}),
		Mode:   core.IncludeSelected,
		Span:   Span{Kind: SpanDisabled},
	}
}

// SelectLevel replaces the selection with the single token, or clears it
// when token is empty ("all levels").
func (s *State) SelectLevel(token string) {
	s.Levels = make(map[string]struct{})
	if token != "" {
		s.Levels[strings.ToLower(token)] = struct{}{}
	}
}

// Apply returns the entries visible under state. The result is recomputed
// fresh on every call; entries and state are never mutated. The three
// predicates are ANDed, cheapest emptiness checks first.
func Apply(entries []core.Entry, state State, now time.Time) []core.Entry {
	from, to, bounded := Resolve(state.Span, now)

	var visible []core.Entry
	for _, e := range entries {
		if !matchesLevels(e, state.Levels, state.Mode) {
			continue
		}
		if !matchesSearch(e, state.Search) {
			continue
		}
		if bounded && !matchesWindow(e, from, to) {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}

func matchesLevels(e core.Entry, levels map[string]struct{}, mode core.FilterMode) bool {
	if len(levels) == 0 {
		return true
	}
	content := strings.ToLower(e.Content)
	found := false
	for token := range levels {
		if strings.Contains(content, token) {
			found = true
			break
		}
	}
	if mode == core.ExcludeSelected {
		return !found
	}
	return found
}

func matchesSearch(e core.Entry, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(e.Content), needle) ||
		strings.Contains(strings.ToLower(e.Timestamp), needle)
}

// entryLayouts parse a stored timestamp back into an instant, from full
// datetime down to bare date.
var entryLayouts = []string{
	core.TimeFormat,
	"2006-01-02 15:04",
	"2006-01-02",
}

func matchesWindow(e core.Entry, from, to time.Time) bool {
	for _, layout := range entryLayouts {
		t, err := time.ParseInLocation(layout, e.Timestamp, time.Local)
		if err != nil {
			continue
		}
		return !t.Before(from) && !t.After(to)
	}
	// unparsable timestamps are never hidden by a time filter
	return true
}
