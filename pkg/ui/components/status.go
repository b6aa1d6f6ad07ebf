// Package components provides reusable TUI components.
package components

import (
	"github.com/charmbracelet/lipgloss"
)

// StatusLevel picks the color of a status line.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusPending
	StatusOK
	StatusFailed
)

// StatusLine renders one wallet connection status.
type StatusLine struct {
	Level   StatusLevel
	Message string
	// Spinner is prefixed while the status is pending.
	Spinner string
}

// View renders the status line, or nothing when there is no message.
func (s StatusLine) View() string {
	if s.Message == "" {
		return ""
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	icon := "•"
	switch s.Level {
	case StatusPending:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
		icon = s.Spinner
	case StatusOK:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		icon = "✓"
	case StatusFailed:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		icon = "✗"
	}
	if icon == "" {
		icon = "…"
	}

	return style.Render(icon + " " + s.Message)
}
