package ui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Palette.
var (
	colorPrimary   = lipgloss.Color("#a78bfa")
	colorSecondary = lipgloss.Color("#f1a208")
	colorFgBase    = lipgloss.Color("#c0c0c0")
	colorFgMuted   = lipgloss.Color("#808080")
	colorFgSubtle  = lipgloss.Color("#585858")
	colorBorder    = lipgloss.Color("#585858")
	colorError     = lipgloss.Color("#ff5555")
	colorWarning   = lipgloss.Color("#f1a208")
)

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle   = lipgloss.NewStyle().Foreground(colorFgBase).Bold(true)
	artistStyle  = lipgloss.NewStyle().Foreground(colorFgMuted)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorFgSubtle)
	timeStyle    = lipgloss.NewStyle().Foreground(colorFgMuted)
	infoStyle    = lipgloss.NewStyle().Foreground(colorFgMuted).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// gradient renders text with a horizontal color blend from one color to another.
func gradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(from).Render(text)
	}

	colors := blend(len(clusters), from, to)
	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i].Hex())).Render(cluster))
	}
	return b.String()
}

// blend interpolates size colors in HCL space.
func blend(size int, from, to lipgloss.Color) []colorful.Color {
	c1 := toColorful(from)
	c2 := toColorful(to)
	if size < 2 {
		return []colorful.Color{c1}
	}
	colors := make([]colorful.Color, size)
	for i := range size {
		colors[i] = c1.BlendHcl(c2, float64(i)/float64(size-1)).Clamped()
	}
	return colors
}

func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	gray, _ := colorful.MakeColor(color.Gray{Y: 128})
	return gray
}
