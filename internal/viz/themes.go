package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the replay view. Bobs cycles through colors
// for the members of an ensemble.
type Theme struct {
	Name   string
	Frame  lipgloss.Color
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Bobs   []lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Frame:  lipgloss.Color("#00ffff"),
		Title:  lipgloss.Color("#ff00ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Accent: lipgloss.Color("#ffff00"),
		Bobs:   []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#00ff00", "#ff8800"},
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Frame:  lipgloss.Color("#00ff00"),
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#ffff00"),
		Bobs:   []lipgloss.Color{"#00ff00", "#88ff88", "#00cc00"},
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Frame:  lipgloss.Color("#00a8cc"),
		Title:  lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#00ff88"),
		Bobs:   []lipgloss.Color{"#0077be", "#00a8cc", "#ffd700", "#00ff88"},
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Frame:  lipgloss.Color("#feca57"),
		Title:  lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#ff9ff3"),
		Bobs:   []lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068"},
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// BobColor is the color of ensemble member i.
func (t Theme) BobColor(i int) lipgloss.Color {
	if len(t.Bobs) == 0 {
		return t.Text
	}
	return t.Bobs[i%len(t.Bobs)]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
