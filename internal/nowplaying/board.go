package nowplaying

import (
	"sync"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// board holds the last published snapshot and the remote targets. Platform
// centers answer queries from it.
type board struct {
	mu      sync.Mutex
	info    Info
	hasInfo bool

	play  engine.Observers[struct{}]
	pause engine.Observers[struct{}]
}

func (b *board) set(info Info) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.info = info
	b.hasInfo = true
}

func (b *board) snapshot() (Info, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.info, b.hasInfo
}

func (b *board) AddPlayTarget(fn func()) engine.Cancel {
	return b.play.Add(func(struct{}) { fn() })
}

func (b *board) AddPauseTarget(fn func()) engine.Cancel {
	return b.pause.Add(func(struct{}) { fn() })
}

func (b *board) canPlay() bool  { return b.play.Len() > 0 }
func (b *board) canPause() bool { return b.pause.Len() > 0 }

func (b *board) firePlay()  { b.play.Notify(struct{}{}) }
func (b *board) firePause() { b.pause.Notify(struct{}{}) }

// fireToggle pauses running playback and plays otherwise.
func (b *board) fireToggle() {
	if info, _ := b.snapshot(); info.Playing() {
		b.firePause()
		return
	}
	b.firePlay()
}
