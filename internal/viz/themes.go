package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the animation. Rabbit and Fox tint the headcounts and the
// progress bar; Trace colours the phase panel.
type Theme struct {
	Name   string
	Rabbit lipgloss.Color
	Fox    lipgloss.Color
	Trace  lipgloss.Color
	Text   lipgloss.Color
	Border lipgloss.Color
	Alert  lipgloss.Color
}

var (
	// ThemeDefault uses the chart colours: blue prey, red predators.
	ThemeDefault = Theme{
		Name:   "default",
		Rabbit: lipgloss.Color(PreyColor),
		Fox:    lipgloss.Color(PredatorColor),
		Trace:  lipgloss.Color("#facc15"),
		Text:   lipgloss.Color("#e5e5e5"),
		Border: lipgloss.Color("#666666"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	ThemeMeadow = Theme{
		Name:   "meadow",
		Rabbit: lipgloss.Color("#d6c3a5"),
		Fox:    lipgloss.Color("#e8772e"),
		Trace:  lipgloss.Color("#9ccc65"),
		Text:   lipgloss.Color("#f1f8e9"),
		Border: lipgloss.Color("#33691e"),
		Alert:  lipgloss.Color("#ff5252"),
	}

	ThemeNight = Theme{
		Name:   "night",
		Rabbit: lipgloss.Color("#b0bec5"),
		Fox:    lipgloss.Color("#ffab40"),
		Trace:  lipgloss.Color("#7e57c2"),
		Text:   lipgloss.Color("#cfd8dc"),
		Border: lipgloss.Color("#263238"),
		Alert:  lipgloss.Color("#ef5350"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Rabbit: lipgloss.Color("#ffffff"),
		Fox:    lipgloss.Color("#aaaaaa"),
		Trace:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#888888"),
		Alert:  lipgloss.Color("#ffffff"),
	}

	Themes = []Theme{ThemeDefault, ThemeMeadow, ThemeNight, ThemeMono}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}
