package engine

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// SetVolume sets the volume level (0.0 to 1.0). While muted the level is only
// stored.
func (b *Beep) SetVolume(level float64) {
	level = min(max(level, 0), 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.volumeLevel = level
	if b.muted || b.volume == nil {
		return
	}
	speaker.Lock()
	b.volume.Volume = levelToVolume(level)
	speaker.Unlock()
}

// Volume returns the volume level (0.0 to 1.0).
func (b *Beep) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volumeLevel
}

// SetMuted silences or restores output without losing the level.
func (b *Beep) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
	if b.volume == nil {
		return
	}
	speaker.Lock()
	b.volume.Silent = muted
	b.volume.Volume = levelToVolume(b.volumeLevel)
	speaker.Unlock()
}

// Muted returns true if output is silenced.
func (b *Beep) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// levelToVolume maps a linear 0..1 level onto beep's base-2 volume:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (effectively silent).
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
