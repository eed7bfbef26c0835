package schema

import "strings"

// DefaultTheme is the default UI theme name.
const DefaultTheme ThemeName = "deck"

var themeNames = []ThemeName{
	"deck",
	"gruvbox",
	"mono",
}

// AvailableThemes returns the supported theme names.
func AvailableThemes() []ThemeName {
	out := make([]ThemeName, len(themeNames))
	copy(out, themeNames)
	return out
}

// NormalizeThemeName returns a canonical theme name if supported.
func NormalizeThemeName(name string) (ThemeName, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	switch normalized {
	case "deck", "default":
		return "deck", true
	case "gruvbox":
		return "gruvbox", true
	case "mono", "monochrome":
		return "mono", true
	default:
		return "", false
	}
}
