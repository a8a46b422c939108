package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nzaccagnino/notely/internal/session"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	text      = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}
	muted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			MarginBottom(1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(1, 2)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlight).
				Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(special)

	MutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(special).
			Padding(0, 1).
			Background(lipgloss.Color("#1a1a2e")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(highlight)

	SnackbarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(2, 3).
			Align(lipgloss.Center)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(special)

	SelectedListItemStyle = lipgloss.NewStyle().
				Background(highlight).
				Foreground(lipgloss.Color("#000000"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(highlight)
)

const (
	NoteIcon     = "📝"
	ArchivedIcon = "🗄"
)

// ApplyTheme forces the adaptive palette to the configured background.
// Any value other than "light" or "dark" keeps terminal detection.
func ApplyTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// notificationStyle picks the snackbar text style for a level.
func notificationStyle(level session.Level) lipgloss.Style {
	switch level {
	case session.LevelError:
		return ErrorStyle
	case session.LevelSuccess:
		return SuccessStyle
	default:
		return InfoStyle
	}
}
