package glyph

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors the glyph grid. Scene colors never reach the grid; only these
// do.
type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Background lipgloss.Color
}

var (
	ThemeMono    = Theme{Name: "mono", Foreground: "#FFFFFF", Background: "#000000"}
	ThemeCyan    = Theme{Name: "cyan", Foreground: "#A7FFFB", Background: "#000000"}
	ThemeNeutral = Theme{Name: "neutral", Foreground: "#CFCFCF", Background: "#000000"}
	ThemeRetro   = Theme{Name: "retro", Foreground: "#00FF00", Background: "#001100"}

	Themes = []Theme{ThemeMono, ThemeCyan, ThemeNeutral, ThemeRetro}
)

// GetTheme looks a theme up by name, falling back to mono.
func GetTheme(name string) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMono
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next cycles to the following theme.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) Style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Foreground).Background(t.Background)
}
