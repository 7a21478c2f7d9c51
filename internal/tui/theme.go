package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Tobby-01/Grademate/internal/model"
)

const (
	goldenAccent = "#C89A3A"
	purpleAccent = "#9D4EDD"
	grayBorder   = "#4A4A4A"
	grayText     = "#6E6E6E"
	lightText    = "#F0F0F0"
	mutedText    = "#B0B0B0"
	errorColor   = "#FF4D4F"
)

// themeStyles bundles the lipgloss styles that vary per theme.
type themeStyles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	title       lipgloss.Style
	focusedCell lipgloss.Style
	cell        lipgloss.Style
	summary     lipgloss.Style
	help        lipgloss.Style
	errText     lipgloss.Style
}

// stylesFor returns the style set for a theme. The combined theme colors the
// active tab per semester, so it takes the semester accent as a parameter.
func stylesFor(theme model.Theme, sem model.Semester) themeStyles {
	accent := goldenAccent
	switch theme {
	case model.ThemePurple:
		accent = purpleAccent
	case model.ThemeCombined:
		if sem == model.SemesterRain {
			accent = purpleAccent
		}
	}
	return themeStyles{
		activeTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(lightText)).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(accent)),
		inactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(mutedText)).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(grayBorder)),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		focusedCell: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		cell:        lipgloss.NewStyle().Foreground(lipgloss.Color(lightText)),
		summary:     lipgloss.NewStyle().Foreground(lipgloss.Color(mutedText)),
		help:        lipgloss.NewStyle().Foreground(lipgloss.Color(grayText)),
		errText:     lipgloss.NewStyle().Foreground(lipgloss.Color(errorColor)),
	}
}

// nextTheme cycles golden -> purple -> combined -> golden.
func nextTheme(theme model.Theme) model.Theme {
	switch theme {
	case model.ThemeGolden:
		return model.ThemePurple
	case model.ThemePurple:
		return model.ThemeCombined
	default:
		return model.ThemeGolden
	}
}
