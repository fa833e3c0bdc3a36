package journal

import (
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"
)

func TestFollowCommand(t *testing.T) {
	got := FollowCommand("nginx.service")
	want := "journalctl -f -o short-iso -u nginx.service"
	if got != want {
		t.Errorf("FollowCommand = %q, want %q", got, want)
	}
}

func TestSelectServices(t *testing.T) {
	all := []dbus.UnitStatus{
		{Name: "tmp.mount", ActiveState: "active"},
		{Name: "zebra.service", ActiveState: "active"},
		{Name: "apple.service", ActiveState: "inactive"},
		{Name: "nginx.service", ActiveState: "active", Description: "web server"},
		{Name: "boot.timer", ActiveState: "active"},
	}

	units := selectServices(all)
	if len(units) != 3 {
		t.Fatalf("len = %d, want 3 (services only)", len(units))
	}

	// active services first, alphabetical within state
	wantOrder := []string{"nginx.service", "zebra.service", "apple.service"}
	for i, want := range wantOrder {
		if units[i].Name != want {
			t.Errorf("units[%d] = %q, want %q", i, units[i].Name, want)
		}
	}
	if units[0].Description != "web server" {
		t.Errorf("Description = %q", units[0].Description)
	}
}
