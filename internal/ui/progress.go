package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"

	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// renderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func renderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return status + "  " + timeStyle.Render(posStr+" / "+durStr)
	}

	var ratio float64
	if duration > 0 {
		ratio = min(max(float64(position)/float64(duration), 0), 1)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := gradient(strings.Repeat(filledBlock, filled), colorPrimary, colorSecondary) +
		emptyStyle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + timeStyle.Render(posStr) + "  " + bar + "  " + timeStyle.Render(durStr)
}

// renderVolume renders the volume indicator: "vol  80%" or "mute 80%".
func renderVolume(level float64, muted bool) string {
	label := "vol "
	if muted {
		label = "mute"
	}
	return timeStyle.Render(fmt.Sprintf("%s %3d%%", label, int(level*100+0.5)))
}
