package extract

import (
	"fmt"
	"testing"
	"time"

	"github.com/modoterra/tailview/pkg/core"
)

func TestTimestampFormats(t *testing.T) {
	year := time.Now().Year()
	epoch := time.Unix(1726401000, 0).Format(core.TimeFormat)

	tests := []struct {
		name        string
		line        string
		wantStamp   string
		wantContent string
	}{
		{
			name:        "iso8601 with zulu",
			line:        "2025-09-15T14:30:00Z connection reset",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "connection reset",
		},
		{
			name:        "iso8601 with millis",
			line:        "2025-09-15T14:30:00.123Z connection reset",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "connection reset",
		},
		{
			name:        "iso8601 without zone",
			line:        "2025-09-15T14:30:00 connection reset",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "connection reset",
		},
		{
			name:        "space separated with millis",
			line:        "2025-09-15 14:30:00.250 disk full",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "disk full",
		},
		{
			name:        "space separated",
			line:        "2025-09-15 14:30:00 disk full",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "disk full",
		},
		{
			name:        "syslog assumes current year",
			line:        "Sep 15 14:30:00 host sshd[123]: accepted",
			wantStamp:   fmt.Sprintf("%d-09-15 14:30:00", year),
			wantContent: "host sshd[123]: accepted",
		},
		{
			name:        "epoch seconds",
			line:        "1726401000 worker started",
			wantStamp:   epoch,
			wantContent: "worker started",
		},
		{
			name:        "timestamp mid-line",
			line:        "pod ready at 2025-09-15T14:30:00Z after probe",
			wantStamp:   "2025-09-15 14:30:00",
			wantContent: "pod ready at  after probe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp, content, ok := Timestamp(tt.line)
			if !ok {
				t.Fatalf("Timestamp(%q) ok = false, want true", tt.line)
			}
			if stamp != tt.wantStamp {
				t.Errorf("stamp = %q, want %q", stamp, tt.wantStamp)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestTimestampCascadePrecedence(t *testing.T) {
	// A full datetime also contains a bare time; the full-datetime
	// pattern must win.
	stamp, content, ok := Timestamp("2025-09-15 14:30:00")
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if stamp != "2025-09-15 14:30:00" {
		t.Errorf("stamp = %q, want full datetime", stamp)
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
}

func TestTimestampTimeOnlyUsesToday(t *testing.T) {
	stamp, content, ok := Timestamp("14:30:05 tick")
	if !ok {
		t.Fatal("ok = false, want true")
	}
	want := time.Now().Format("2006-01-02") + " 14:30:05"
	if stamp != want {
		t.Errorf("stamp = %q, want %q", stamp, want)
	}
	if content != "tick" {
		t.Errorf("content = %q, want %q", content, "tick")
	}
}

func TestTimestampNoMatch(t *testing.T) {
	tests := []string{
		"plain text with no timestamp",
		"99:99:99 looks like a time but is not",
		"",
	}
	for _, line := range tests {
		stamp, content, ok := Timestamp(line)
		if ok {
			t.Errorf("Timestamp(%q) ok = true (stamp %q), want false", line, stamp)
		}
		if content != line {
			t.Errorf("content = %q, want untouched line %q", content, line)
		}
	}
}

func TestTimestampRemovesDuplicates(t *testing.T) {
	// Removal is plain substring replacement, so a repeated occurrence
	// is stripped too.
	_, content, ok := Timestamp("2025-09-15 14:30:00 again 2025-09-15 14:30:00")
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if content != "again" {
		t.Errorf("content = %q, want %q", content, "again")
	}
}
