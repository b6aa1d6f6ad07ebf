package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 4 * time.Second

// Toast is a short-lived notification shown under the header.
type Toast struct {
	Title       string
	Description string
	Failed      bool
	Until       time.Time
}

// NewToast creates a toast expiring ToastDuration after now.
func NewToast(title, description string, failed bool, now time.Time) *Toast {
	return &Toast{Title: title, Description: description, Failed: failed, Until: now.Add(ToastDuration)}
}

// Expired reports whether the toast should be removed.
func (t *Toast) Expired(now time.Time) bool {
	return t == nil || !now.Before(t.Until)
}

func (t *Toast) View() string {
	if t == nil {
		return ""
	}

	border := lipgloss.Color("#10B981")
	if t.Failed {
		border = lipgloss.Color("#EF4444")
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(border).Render(t.Title)
	if t.Description == "" {
		return style.Render(title)
	}
	return style.Render(title + "\n" + t.Description)
}
