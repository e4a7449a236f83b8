// Package nowplaying defines the system now-playing surface the playback
// controller publishes to, and the remote transport commands it accepts.
package nowplaying

import (
	"image"
	"time"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// Metadata used until the host provides its own.
const (
	DefaultArtist = "Artist"
	DefaultTitle  = "Track Name | Title"
)

// Info is a complete now-playing snapshot. Surfaces replace whatever they
// showed before with it.
type Info struct {
	Artist          string
	Title           string
	Artwork         image.Image // optional
	DurationSeconds float64
	ElapsedSeconds  float64
	PlaybackRate    float64
}

// Playing reports whether the snapshot describes running playback.
func (i Info) Playing() bool {
	return i.PlaybackRate > 0
}

// Elapsed returns ElapsedSeconds as a duration.
func (i Info) Elapsed() time.Duration {
	return secondsToDuration(i.ElapsedSeconds)
}

// Duration returns DurationSeconds as a duration.
func (i Info) Duration() time.Duration {
	return secondsToDuration(i.DurationSeconds)
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// Surface displays now-playing snapshots.
type Surface interface {
	SetNowPlaying(info Info)
}

// RemoteCommands delivers transport commands issued from outside the
// application. Targets may be invoked on any goroutine.
type RemoteCommands interface {
	AddPlayTarget(fn func()) engine.Cancel
	AddPauseTarget(fn func()) engine.Cancel
}

// Center is a surface that also accepts remote commands.
type Center interface {
	Surface
	RemoteCommands
}

// Nop discards snapshots and never issues commands.
type Nop struct{}

func (Nop) SetNowPlaying(Info) {}

func (Nop) AddPlayTarget(func()) engine.Cancel { return engine.NopCancel }

func (Nop) AddPauseTarget(func()) engine.Cancel { return engine.NopCancel }

// Tee publishes every snapshot to c and to each extra surface. Remote
// commands come from c alone.
func Tee(c Center, surfaces ...Surface) Center {
	if len(surfaces) == 0 {
		return c
	}
	return &tee{Center: c, surfaces: surfaces}
}

type tee struct {
	Center
	surfaces []Surface
}

func (t *tee) SetNowPlaying(info Info) {
	t.Center.SetNowPlaying(info)
	for _, s := range t.surfaces {
		s.SetNowPlaying(info)
	}
}

// Verify implementations satisfy Center at compile time.
var (
	_ Center = Nop{}
	_ Center = (*tee)(nil)
)
