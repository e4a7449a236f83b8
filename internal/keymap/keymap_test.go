//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectMinLength int
	}{
		{"global context", "global", 2},
		{"playback context", "playback", 4},
		{"volume context", "volume", 3},
		{"unknown context returns empty", "unknown", 0},
		{"empty context returns empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectMinLength == 0 && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}
			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d",
					tt.context, len(result), tt.expectMinLength)
			}
			for _, b := range result {
				if b.Context != tt.context {
					t.Errorf("binding %q has context %q", b.Action, b.Context)
				}
			}
		})
	}
}

func TestAll_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		if len(b.Keys) == 0 {
			t.Errorf("action %q has no keys", b.Action)
		}
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestHelpBindings(t *testing.T) {
	help := HelpBindings([]Binding{
		{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
		{ActionMute, []string{"m"}, "Mute", "volume"},
	})

	if len(help) != 2 {
		t.Fatalf("len = %d, want 2", len(help))
	}
	if got := help[0].Help().Key; got != "space" {
		t.Errorf("help key = %q, want space", got)
	}
	if got := help[1].Help().Desc; got != "Mute" {
		t.Errorf("help desc = %q, want Mute", got)
	}
	if keys := help[0].Keys(); len(keys) != 2 || keys[1] != "p" {
		t.Errorf("keys = %v", keys)
	}
}
