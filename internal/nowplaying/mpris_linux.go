//go:build linux

package nowplaying

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// MPRIS is a Center exposed on the session bus as
// org.mpris.MediaPlayer2.<name>.
type MPRIS struct {
	board
	reporter

	server *server.Server
	art    *artworkFile
	done   chan struct{}
}

// NewMPRIS creates the center and starts serving it. It fails when no
// session bus is reachable; later failures to claim the bus name go to the
// OnError handler.
func NewMPRIS(name string) (*MPRIS, error) {
	if _, err := dbus.SessionBus(); err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	m := &MPRIS{
		art:  &artworkFile{name: name + "-artwork.png"},
		done: make(chan struct{}),
	}
	m.server = server.NewServer(name, &rootAdapter{}, &playerAdapter{m: m})

	go func() {
		defer close(m.done)
		if err := m.server.Listen(); err != nil {
			m.report(err)
		}
	}()

	return m, nil
}

// SetNowPlaying replaces the served snapshot.
func (m *MPRIS) SetNowPlaying(info Info) {
	if err := m.art.update(info.Artwork); err != nil {
		m.report(fmt.Errorf("export artwork: %w", err))
	}
	m.set(info)
}

// Close releases the bus name. It returns the serve error when serving
// already stopped on its own.
func (m *MPRIS) Close() error {
	select {
	case <-m.done:
		return m.err()
	default:
	}
	if err := m.server.Stop(); err != nil {
		return err
	}
	<-m.done
	return nil
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The host owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "AwesomeAudio", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Only play and
// pause are forwarded; navigation and seeking are not offered.
type playerAdapter struct {
	m *MPRIS
}

func (p *playerAdapter) Next() error {
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	p.m.firePause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.m.fireToggle()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.m.firePause()
	return nil
}

func (p *playerAdapter) Play() error {
	p.m.firePlay()
	return nil
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	info, ok := p.m.snapshot()
	switch {
	case !ok:
		return types.PlaybackStatusStopped, nil
	case info.Playing():
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	info, ok := p.m.snapshot()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(info.Artist, info.Title)),
		Length:  types.Microseconds(info.Duration().Microseconds()),
		Title:   info.Title,
		Artist:  []string{info.Artist},
	}
	if url := p.m.art.url(); url != "" {
		meta.ArtUrl = url
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	info, _ := p.m.snapshot()
	return info.Elapsed().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.m.canPlay(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.m.canPause(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(artist, title string) string {
	h := fnv.New64a()
	h.Write([]byte(artist))
	h.Write([]byte{0})
	h.Write([]byte(title))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

var _ Center = (*MPRIS)(nil)
