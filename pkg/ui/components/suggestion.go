package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SuggestionCard renders the smart suggestion panel: loading, result or error.
type SuggestionCard struct {
	Loading     bool
	Spinner     string
	Amount      string
	Coin        string
	Profit      string
	Profitable  bool
	Explanation string
	Error       string
	Width       int
}

// Empty reports whether there is nothing to show.
func (c SuggestionCard) Empty() bool {
	return !c.Loading && c.Error == "" && c.Amount == ""
}

func (c SuggestionCard) View() string {
	if c.Empty() {
		return ""
	}

	purple := lipgloss.Color("#7C3AED")
	header := lipgloss.NewStyle().Bold(true).Foreground(purple)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(purple).
		Padding(0, 1)
	if c.Width > 4 {
		box = box.Width(c.Width - 4)
	}

	var sb strings.Builder
	switch {
	case c.Loading:
		sb.WriteString(header.Render(c.Spinner + " Generating Smart Suggestion..."))
	case c.Error != "":
		red := lipgloss.Color("#EF4444")
		box = box.BorderForeground(red)
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(red).Render("Smart Suggestion Failed"))
		sb.WriteString("\n")
		sb.WriteString(c.Error)
		sb.WriteString("\n")
		sb.WriteString(muted.Render("esc: dismiss"))
	default:
		profit := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		if c.Profitable {
			profit = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		}
		sb.WriteString(header.Render("Smart Arbitrage Suggestion"))
		sb.WriteString("\n")
		sb.WriteString(muted.Render("AI-Optimized Trading Strategy"))
		sb.WriteString("\n\n")
		sb.WriteString("Suggested Amount:  " + strings.TrimSpace(c.Amount+" "+c.Coin))
		sb.WriteString("\n")
		sb.WriteString("Estimated Profit:  " + profit.Render(c.Profit))
		sb.WriteString("\n\n")
		sb.WriteString(header.Render("Strategy Explanation"))
		sb.WriteString("\n")
		sb.WriteString(c.Explanation)
	}

	return box.Render(sb.String())
}
