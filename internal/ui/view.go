package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/awesomeaudio/internal/engine"
	"github.com/llehouerou/awesomeaudio/internal/keymap"
)

func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	// Border and padding.
	inner := max(width-4, 10)

	title := m.opts.Title
	if title == "" {
		title = "Unknown Track"
	}
	lines := []string{titleStyle.Render(truncate(title, inner))}
	if m.opts.Artist != "" {
		lines = append(lines, artistStyle.Render(truncate(m.opts.Artist, inner)))
	}

	switch m.status {
	case engine.StatusReadyToPlay:
		bar := m.playbackLine(inner)
		lines = append(lines, bar)
	case engine.StatusFailed:
		lines = append(lines, errorStyle.Render("Cannot play this file"))
	default:
		lines = append(lines, infoStyle.Render("Loading…"))
	}

	if m.message != "" {
		lines = append(lines, m.messageStyle().Render(truncate(m.message, inner)))
	}

	view := panelStyle.Width(width - 2).Render(strings.Join(lines, "\n"))

	bindings := keymap.ByContext("playback")
	if m.showHelp {
		bindings = keymap.All
	}
	return view + "\n" + m.help.ShortHelpView(keymap.HelpBindings(bindings))
}

func (m *Model) playbackLine(width int) string {
	if m.opts.Mixer == nil {
		return renderProgressBar(m.position, m.duration, width, m.playing)
	}
	vol := renderVolume(m.opts.Mixer.Volume(), m.opts.Mixer.Muted())
	barWidth := width - lipgloss.Width(vol) - 3
	return renderProgressBar(m.position, m.duration, barWidth, m.playing) + "   " + vol
}

func (m *Model) messageStyle() lipgloss.Style {
	switch m.messageKind {
	case messageError:
		return errorStyle
	case messageWarning:
		return warningStyle
	default:
		return infoStyle
	}
}
