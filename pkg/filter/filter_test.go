package filter

import (
	"testing"
	"time"

	"github.com/modoterra/tailview/pkg/core"
)

func entryContents(entries []core.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}

func TestApplyLevelAndSearchComposition(t *testing.T) {
	entries := []core.Entry{
		{Timestamp: "2025-09-15 14:00:00", Content: "ERROR disk full"},
		{Timestamp: "2025-09-15 14:01:00", Content: "INFO ok"},
	}
	now := time.Now()

	tests := []struct {
		name   string
		levels []string
		mode   core.FilterMode
		search string
		want   []string
	}{
		{
			name: "empty state matches all",
			mode: core.IncludeSelected,
			want: []string{"ERROR disk full", "INFO ok"},
		},
		{
			name:   "include error",
			levels: []string{"error"},
			mode:   core.IncludeSelected,
			want:   []string{"ERROR disk full"},
		},
		{
			name:   "exclude error",
			levels: []string{"error"},
			mode:   core.ExcludeSelected,
			want:   []string{"INFO ok"},
		},
		{
			name:   "include error with matching search",
			levels: []string{"error"},
			mode:   core.IncludeSelected,
			search: "disk",
			want:   []string{"ERROR disk full"},
		},
		{
			name:   "include error with non-matching search",
			levels: []string{"error"},
			mode:   core.IncludeSelected,
			search: "network",
			want:   nil,
		},
		{
			name:   "search is case-insensitive",
			mode:   core.IncludeSelected,
			search: "DISK",
			want:   []string{"ERROR disk full"},
		},
		{
			name:   "search matches timestamp",
			mode:   core.IncludeSelected,
			search: "14:01",
			want:   []string{"INFO ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			state.Mode = tt.mode
			state.Search = tt.search
			for _, l := range tt.levels {
				state.Levels[l] = struct{}{}
			}

			got := entryContents(Apply(entries, state, now))
			if len(got) != len(tt.want) {
				t.Fatalf("visible = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("visible[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApplyTimeWindow(t *testing.T) {
	now := time.Now()
	entries := []core.Entry{
		{Timestamp: now.Add(-30 * time.Minute).Format(core.TimeFormat), Content: "recent"},
		{Timestamp: now.Add(-2 * time.Hour).Format(core.TimeFormat), Content: "stale"},
		{Timestamp: "not a timestamp", Content: "unparsable"},
	}

	state := NewState()
	state.Span = Span{Kind: SpanRelative, Amount: 1, Unit: UnitHours}

	got := entryContents(Apply(entries, state, now))
	want := []string{"recent", "unparsable"}
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("visible[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApplyInvalidCustomRangeDisablesTimeFilter(t *testing.T) {
	now := time.Now()
	entries := []core.Entry{
		{Timestamp: "1999-01-01 00:00:00", Content: "ancient"},
	}

	state := NewState()
	state.Span = Span{
		Kind: SpanCustom,
		From: Bound{Year: 2025, Month: 2, Day: 30, Hour: 0, Minute: 0}, // no Feb 30
		To:   Bound{Year: 2025, Month: 3, Day: 1, Hour: 0, Minute: 0},
	}

	got := Apply(entries, state, now)
	if len(got) != 1 {
		t.Errorf("invalid custom range must disable time filtering, got %d entries", len(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entries := []core.Entry{
		{Timestamp: "2025-09-15 14:00:00", Content: "ERROR one"},
		{Timestamp: "2025-09-15 14:01:00", Content: "INFO two"},
	}
	state := NewState()
	state.Levels["error"] = struct{}{}

	Apply(entries, state, time.Now())
	Apply(entries, state, time.Now())
	if entries[0].Content != "ERROR one" || entries[1].Content != "INFO two" {
		t.Error("Apply mutated its input")
	}
}

func TestSelectLevel(t *testing.T) {
	state := NewState()
	state.SelectLevel("ERROR")
	if _, ok := state.Levels["error"]; !ok || len(state.Levels) != 1 {
		t.Errorf("Levels = %v, want lowercase single selection", state.Levels)
	}
	state.SelectLevel("")
	if len(state.Levels) != 0 {
		t.Errorf("Levels = %v, want empty after all-levels", state.Levels)
	}
}
