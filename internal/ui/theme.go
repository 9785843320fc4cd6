package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color set for the dashboard.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Border  string
	Success string
	Warning string
	Danger  string

	// Series is the palette cycled through for chart lines, one color per
	// sensor in catalog order.
	Series []string
}

var themes = []Theme{
	{
		Name:    "Glacier",
		Text:    "#c8d3f5",
		Muted:   "#636da6",
		Accent:  "#82aaff",
		Border:  "#2f334d",
		Success: "#c3e88d",
		Warning: "#ffc777",
		Danger:  "#ff757f",
		Series:  []string{"#82aaff", "#86e1fc", "#c099ff", "#4fd6be", "#c3e88d", "#ffc777"},
	},
	{
		Name:    "Ember",
		Text:    "#ebdbb2",
		Muted:   "#928374",
		Accent:  "#fe8019",
		Border:  "#504945",
		Success: "#b8bb26",
		Warning: "#fabd2f",
		Danger:  "#fb4934",
		Series:  []string{"#fe8019", "#fabd2f", "#d3869b", "#8ec07c", "#b8bb26", "#83a598"},
	},
}

// GetTheme returns the theme with the given name, defaulting to the first
// theme when the name is unknown.
func GetTheme(name string) Theme {
	for _, theme := range themes {
		if theme.Name == name {
			return theme
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping
// around at the end of the list.
func NextTheme(name string) string {
	for i, theme := range themes {
		if theme.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// SeriesColor assigns a deterministic palette color to the i-th sensor, so
// a sensor keeps its color across refreshes.
func (t Theme) SeriesColor(i int) lipgloss.Color {
	if len(t.Series) == 0 {
		return lipgloss.Color(t.Accent)
	}
	if i < 0 {
		i = 0
	}
	return lipgloss.Color(t.Series[i%len(t.Series)])
}
