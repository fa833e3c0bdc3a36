// Package journal lists systemd units over D-Bus so the UI can point the
// tail at a unit's journal without typing the command by hand.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
)

// Unit is a systemd unit eligible for journal tailing.
type Unit struct {
	Name        string
	Description string
	ActiveState string
}

// ListUnits returns the service units known to systemd, active ones
// first, alphabetical within state.
func ListUnits(ctx context.Context, logger *slog.Logger) ([]Unit, error) {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	all, err := conn.ListUnitsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	units := selectServices(all)
	logger.Debug("listed systemd units", "count", len(units))
	return units, nil
}

func selectServices(all []dbus.UnitStatus) []Unit {
	units := make([]Unit, 0, len(all))
	for _, u := range all {
		if !strings.HasSuffix(u.Name, ".service") {
			continue
		}
		units = append(units, Unit{
			Name:        u.Name,
			Description: u.Description,
			ActiveState: u.ActiveState,
		})
	}
	sort.Slice(units, func(i, j int) bool {
		ai, aj := units[i].ActiveState == "active", units[j].ActiveState == "active"
		if ai != aj {
			return ai
		}
		return units[i].Name < units[j].Name
	})
	return units
}

// FollowCommand builds the journalctl invocation that tails one unit.
func FollowCommand(unit string) string {
	return "journalctl -f -o short-iso -u " + unit
}
