package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// ---------------------------------------------------------------------------

const (
	ColorPink     lipgloss.Color = "#f5c2e7"
	ColorRed      lipgloss.Color = "#f38ba8"
	ColorPeach    lipgloss.Color = "#fab387"
	ColorGreen    lipgloss.Color = "#a6e3a1"
	ColorBlue     lipgloss.Color = "#89b4fa"
	ColorLavender lipgloss.Color = "#b4befe"

	ColorText     lipgloss.Color = "#cdd6f4"
	ColorSubtext0 lipgloss.Color = "#a6adc8"
	ColorOverlay1 lipgloss.Color = "#7f849c"
	ColorOverlay0 lipgloss.Color = "#6c7086"
	ColorSurface1 lipgloss.Color = "#45475a"
	ColorSurface0 lipgloss.Color = "#313244"
)

// Semantic aliases.
const (
	ColorAccent = ColorPink
	ColorFocus  = ColorLavender
	ColorMuted  = ColorOverlay1
	ColorBorder = ColorOverlay0
)

// stylesheet maps style names to the lipgloss rules they contribute.
// Elements merge the rules of every style name they carry.
var stylesheet = map[string]lipgloss.Style{}

// RegisterStyle binds a style name to lipgloss rules. Later registrations
// replace earlier ones.
func RegisterStyle(name string, style lipgloss.Style) {
	stylesheet[name] = style
}

// StyleFor merges the rules of the element's style names. Names are applied in
// sorted order and the first name to set a rule wins.
func StyleFor(e *Element) lipgloss.Style {
	out := lipgloss.NewStyle().Foreground(ColorText)
	merged := lipgloss.NewStyle()
	for _, name := range e.StyleNames() {
		if s, ok := stylesheet[name]; ok {
			merged = merged.Inherit(s)
		}
	}
	return merged.Inherit(out)
}

// PopupCardStyle frames popup content.
var PopupCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder).
	Padding(0, 1)
