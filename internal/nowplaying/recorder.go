package nowplaying

import (
	"sync"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// Recorder is a test double for Center. It records every snapshot and lets
// tests fire the registered remote targets.
type Recorder struct {
	mu        sync.Mutex
	published []Info
	play      engine.Observers[struct{}]
	pause     engine.Observers[struct{}]
	playAdds  int
	pauseAdds int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetNowPlaying(info Info) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, info)
}

func (r *Recorder) AddPlayTarget(fn func()) engine.Cancel {
	r.mu.Lock()
	r.playAdds++
	r.mu.Unlock()
	return r.play.Add(func(struct{}) { fn() })
}

func (r *Recorder) AddPauseTarget(fn func()) engine.Cancel {
	r.mu.Lock()
	r.pauseAdds++
	r.mu.Unlock()
	return r.pause.Add(func(struct{}) { fn() })
}

// Test helpers

// Published returns all recorded snapshots.
func (r *Recorder) Published() []Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Info(nil), r.published...)
}

// Last returns the most recent snapshot.
func (r *Recorder) Last() (Info, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.published) == 0 {
		return Info{}, false
	}
	return r.published[len(r.published)-1], true
}

// Reset forgets recorded snapshots.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = nil
}

// TriggerPlay invokes the registered play targets.
func (r *Recorder) TriggerPlay() { r.play.Notify(struct{}{}) }

// TriggerPause invokes the registered pause targets.
func (r *Recorder) TriggerPause() { r.pause.Notify(struct{}{}) }

// TargetCounts returns how many play and pause targets were ever added.
func (r *Recorder) TargetCounts() (play, pause int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playAdds, r.pauseAdds
}

// LiveTargets returns how many play and pause targets are still registered.
func (r *Recorder) LiveTargets() (play, pause int) {
	return r.play.Len(), r.pause.Len()
}

// Verify Recorder implements Center at compile time.
var _ Center = (*Recorder)(nil)
