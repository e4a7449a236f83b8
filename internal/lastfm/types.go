package lastfm

import "time"

// Track contains the metadata sent with now-playing updates and scrobbles.
type Track struct {
	Artist    string
	Title     string
	Album     string
	Duration  time.Duration
	Timestamp time.Time // when playback started, required for scrobbles
}

// params builds the shared request parameters.
func (t Track) params() map[string]any {
	p := map[string]any{
		"artist": t.Artist,
		"track":  t.Title,
	}
	if t.Album != "" {
		p["album"] = t.Album
	}
	if t.Duration > 0 {
		p["duration"] = int(t.Duration.Seconds())
	}
	return p
}
