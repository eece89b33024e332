package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the terminal chrome: slider tracks, knobs and the status line.
// The drawing itself always uses the palette colors.
type Theme struct {
	Name  string
	Track lipgloss.Color
	Knob  lipgloss.Color
	Label lipgloss.Color
	Muted lipgloss.Color
	Title [2]lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:  "night",
		Track: lipgloss.Color("#444466"),
		Knob:  lipgloss.Color("#ff628c"),
		Label: lipgloss.Color("#ffffff"),
		Muted: lipgloss.Color("#666688"),
		Title: [2]lipgloss.Color{"#ff628c", "#fad000"},
	}

	ThemeRetroGreen = Theme{
		Name:  "retro",
		Track: lipgloss.Color("#005500"),
		Knob:  lipgloss.Color("#88ff88"),
		Label: lipgloss.Color("#00ff00"),
		Muted: lipgloss.Color("#00aa00"),
		Title: [2]lipgloss.Color{"#00ff00", "#88ff88"},
	}

	ThemeMinimal = Theme{
		Name:  "minimal",
		Track: lipgloss.Color("#888888"),
		Knob:  lipgloss.Color("#ffffff"),
		Label: lipgloss.Color("#cccccc"),
		Muted: lipgloss.Color("#888888"),
		Title: [2]lipgloss.Color{"#ffffff", "#888888"},
	}

	Themes = []Theme{
		ThemeNight,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
