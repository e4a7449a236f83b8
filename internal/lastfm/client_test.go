package lastfm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_RequiresSession(t *testing.T) {
	c := New("key", "secret")

	assert.False(t, c.IsAuthenticated())
	assert.ErrorIs(t, c.UpdateNowPlaying(Track{Artist: "a", Title: "t"}), ErrNotAuthenticated)
	assert.ErrorIs(t, c.Scrobble(Track{Artist: "a", Title: "t"}), ErrNotAuthenticated)
}

func TestClient_ScrobbleRequiresTimestamp(t *testing.T) {
	c := New("key", "secret")
	c.SetSessionKey("session")

	assert.True(t, c.IsAuthenticated())
	assert.ErrorIs(t, c.Scrobble(Track{Artist: "a", Title: "t"}), ErrMissingTimestamp)
}

func TestTrack_Params(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  map[string]any
	}{
		{
			name:  "minimal",
			track: Track{Artist: "Artist", Title: "Song"},
			want:  map[string]any{"artist": "Artist", "track": "Song"},
		},
		{
			name:  "with album and duration",
			track: Track{Artist: "A", Title: "S", Album: "LP", Duration: 3*time.Minute + 500*time.Millisecond},
			want:  map[string]any{"artist": "A", "track": "S", "album": "LP", "duration": 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.track.params())
		})
	}
}
