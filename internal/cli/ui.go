package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(80)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

func renderTitle(s string) string  { return titleStyle.Render(s) }
func renderAnswer(s string) string { return answerStyle.Render(s) }
func renderHint(s string) string   { return hintStyle.Render(s) }
func renderError(s string) string  { return errorStyle.Render(s) }
