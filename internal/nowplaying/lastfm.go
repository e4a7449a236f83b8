package nowplaying

import (
	"sync"

	"github.com/llehouerou/awesomeaudio/internal/lastfm"
)

// NowPlayingUpdater sends now-playing notifications. *lastfm.Client implements it.
type NowPlayingUpdater interface {
	UpdateNowPlaying(track lastfm.Track) error
}

// Lastfm forwards snapshots to Last.fm as now-playing updates, once per
// artist/title while playing. Requests run off the caller's goroutine.
type Lastfm struct {
	reporter

	client NowPlayingUpdater

	mu   sync.Mutex
	sent string
	wg   sync.WaitGroup
}

// NewLastfm creates a Last.fm surface.
func NewLastfm(client NowPlayingUpdater) *Lastfm {
	return &Lastfm{client: client}
}

// SetNowPlaying sends an update for a newly playing track.
func (l *Lastfm) SetNowPlaying(info Info) {
	if !info.Playing() || info.Title == "" {
		return
	}
	key := info.Artist + "\x00" + info.Title

	l.mu.Lock()
	if key == l.sent {
		l.mu.Unlock()
		return
	}
	l.sent = key
	l.mu.Unlock()

	track := lastfm.Track{
		Artist:   info.Artist,
		Title:    info.Title,
		Duration: info.Duration(),
	}
	l.wg.Go(func() {
		l.report(l.client.UpdateNowPlaying(track))
	})
}

// Wait blocks until in-flight requests finished.
func (l *Lastfm) Wait() {
	l.wg.Wait()
}

var _ Surface = (*Lastfm)(nil)
