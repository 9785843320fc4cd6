package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolview/coolview/internal/state"
)

// renderHeader draws the title line with connection state, device count, and
// the last update time.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true).
		Render("COOLVIEW")

	parts := []string{title, connectionBadge(m.snapshot, m.theme)}

	if m.snapshot.Initialized {
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
		parts = append(parts, muted.Render(fmt.Sprintf("%d devices", len(m.snapshot.Devices))))
		if !m.snapshot.LastUpdated.IsZero() {
			parts = append(parts, muted.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05")))
		}
		if m.snapshot.StaleSamples > 0 {
			warn := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
			parts = append(parts, warn.Render(fmt.Sprintf("%d stale sample(s) dropped", m.snapshot.StaleSamples)))
		}
	}

	return strings.Join(parts, "  ")
}

// connectionBadge summarizes daemon reachability for the header.
func connectionBadge(snapshot state.Snapshot, theme Theme) string {
	switch {
	case snapshot.IsOffline():
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Danger)).
			Render("● offline")
	case snapshot.LastError != nil:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)).
			Render("● degraded")
	default:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)).
			Render("● online")
	}
}
