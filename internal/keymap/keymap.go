package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback" or "volume"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionRestart, []string{"0", "home"}, "Restart", "playback"},

	// Volume
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "volume"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "volume"},
	{ActionMute, []string{"m"}, "Mute", "volume"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// HelpBindings converts bindings for the bubbles help view.
func HelpBindings(bindings []Binding) []key.Binding {
	result := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		result = append(result, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(displayKey(b.Keys[0]), b.Description),
		))
	}
	return result
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
