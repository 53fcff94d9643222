package style

import "github.com/charmbracelet/lipgloss"

// Palette used by the player view and the CLI listings.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Overlay  = lipgloss.Color("#6c7086")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Green    = lipgloss.Color("#a6e3a1")
	Blue     = lipgloss.Color("#89b4fa")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	HiRed       = Red
)

// formatColors tags each stream format in listings.
var formatColors = map[string]lipgloss.Color{
	"dash":   Green,
	"legacy": Peach,
	"audio":  Blue,
}
