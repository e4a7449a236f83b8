//go:build !linux

package nowplaying

// MPRIS keeps snapshots and targets in memory on platforms without D-Bus.
type MPRIS struct {
	board
	reporter
}

// NewMPRIS returns an in-memory center on non-Linux platforms.
func NewMPRIS(_ string) (*MPRIS, error) {
	return &MPRIS{}, nil
}

// SetNowPlaying stores the snapshot.
func (m *MPRIS) SetNowPlaying(info Info) {
	m.set(info)
}

// Close is a no-op on non-Linux platforms.
func (m *MPRIS) Close() error {
	return nil
}

var _ Center = (*MPRIS)(nil)
