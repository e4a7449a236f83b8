package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const resampleQuality = 4

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// initSpeaker initializes the shared speaker on first use. Later items are
// resampled to the first item's rate.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, fault.Wrap(err, fmsg.WithDesc("speaker init", "Cannot open the audio output device."))
	}
	speakerInitialized = true
	speakerSampleRate = rate
	return rate, nil
}

// Beep plays a local audio file through the beep speaker.
type Beep struct {
	uri string

	mu          sync.Mutex
	status      Status
	err         error
	streamer    beep.StreamSeekCloser
	format      beep.Format
	outputRate  beep.SampleRate
	duration    time.Duration
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	item        *item
	volumeLevel float64
	muted       bool
	closed      bool

	statusMu  sync.Mutex // pairs ObserveStatus with resolution
	statusObs Observers[StatusChange]
	endObs    Observers[struct{}]
	stop      chan struct{}
}

// NewBeep creates an engine bound to uri and starts resolving it.
func NewBeep(uri string) *Beep {
	b := &Beep{
		uri:         uri,
		volumeLevel: 1,
		stop:        make(chan struct{}),
	}
	go b.resolve()
	return b
}

// OpenBeep is a Factory producing Beep engines.
func OpenBeep(uri string) Engine {
	return NewBeep(uri)
}

var _ Factory = OpenBeep

func (b *Beep) resolve() {
	streamer, format, outputRate, err := b.load()

	b.statusMu.Lock()
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		b.statusMu.Unlock()
		if streamer != nil {
			streamer.Close()
		}
		return
	}

	if err != nil {
		b.status = StatusFailed
		b.err = err
	} else {
		b.streamer = streamer
		b.format = format
		b.outputRate = outputRate
		b.duration = format.SampleRate.D(streamer.Len())
		b.ctrl = &beep.Ctrl{Streamer: b.playable(), Paused: true}
		b.volume = &effects.Volume{
			Streamer: b.ctrl,
			Base:     2,
			Volume:   levelToVolume(b.volumeLevel),
			Silent:   b.muted,
		}
		b.item = &item{inner: b.volume, ctrl: b.ctrl, onEnd: b.ended}
		b.status = StatusReadyToPlay
	}
	status := b.status
	it := b.item
	b.mu.Unlock()
	fns := b.statusObs.Snapshot()
	b.statusMu.Unlock()

	if it != nil {
		speaker.Play(it)
	}
	change := StatusChange{Old: StatusUnknown, New: status}
	for _, fn := range fns {
		fn(change)
	}
}

func (b *Beep) load() (beep.StreamSeekCloser, beep.Format, beep.SampleRate, error) {
	path, err := PathFromURI(b.uri)
	if err != nil {
		return nil, beep.Format{}, 0, err
	}
	streamer, format, err := openFile(path)
	if err != nil {
		return nil, beep.Format{}, 0, err
	}
	outputRate, err := initSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		return nil, beep.Format{}, 0, err
	}
	return streamer, format, outputRate, nil
}

// playable returns the decoder, resampled when the speaker runs at another
// rate. Called with b.mu held.
func (b *Beep) playable() beep.Streamer {
	if b.format.SampleRate == b.outputRate {
		return b.streamer
	}
	return beep.Resample(resampleQuality, b.format.SampleRate, b.outputRate, b.streamer)
}

// ended runs under the speaker lock; observers are notified off it.
func (b *Beep) ended() {
	go b.endObs.Notify(struct{}{})
}

// Status returns the item status.
func (b *Beep) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Err returns the resolution error.
func (b *Beep) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// HasItem returns true once the item is decoded and attached to the speaker.
func (b *Beep) HasItem() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.item != nil && !b.closed
}

func (b *Beep) setPaused(paused bool) {
	b.mu.Lock()
	ctrl := b.ctrl
	b.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Play resumes playback.
func (b *Beep) Play() { b.setPaused(false) }

// Pause pauses playback.
func (b *Beep) Pause() { b.setPaused(true) }

// Seek moves to an absolute position, clamped to the item bounds.
func (b *Beep) Seek(pos time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil || b.closed {
		return
	}

	target := min(max(b.format.SampleRate.N(pos), 0), b.streamer.Len())

	speaker.Lock()
	defer speaker.Unlock()
	if err := b.streamer.Seek(target); err != nil {
		return
	}
	// A drained resampler does not recover, start a fresh one.
	if b.format.SampleRate != b.outputRate {
		b.ctrl.Streamer = b.playable()
	}
	b.item.rewind()
}

// Rate returns 1 while playing and 0 while paused or unloaded.
func (b *Beep) Rate() float64 {
	b.mu.Lock()
	ctrl := b.ctrl
	b.mu.Unlock()
	if ctrl == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	if ctrl.Paused {
		return 0
	}
	return 1
}

// Position returns the current playback position.
func (b *Beep) Position() time.Duration {
	b.mu.Lock()
	streamer, rate := b.streamer, b.format.SampleRate
	b.mu.Unlock()
	if streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := streamer.Position()
	speaker.Unlock()
	return rate.D(pos)
}

// Duration returns the item duration, 0 until ready.
func (b *Beep) Duration() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.duration
}

// ObserveStatus registers fn for status changes. Observers registered after
// resolution receive the resolved status once.
func (b *Beep) ObserveStatus(fn func(StatusChange)) Cancel {
	b.statusMu.Lock()
	cancel := b.statusObs.Add(fn)
	status := b.Status()
	b.statusMu.Unlock()

	if status.IsResolved() {
		go fn(StatusChange{Old: StatusUnknown, New: status})
	}
	return cancel
}

// AddPeriodicObserver calls fn with the position every interval until
// cancelled or closed. It fires regardless of the play state.
func (b *Beep) AddPeriodicObserver(interval time.Duration, fn func(pos time.Duration)) Cancel {
	if interval <= 0 {
		panic(fmt.Sprintf("engine: non-positive periodic interval %v", interval))
	}
	quit := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-b.stop:
				return
			case <-ticker.C:
				fn(b.Position())
			}
		}
	}()
	return NewCancel(func() { close(quit) })
}

// ObserveEnd registers fn for end-of-item signals.
func (b *Beep) ObserveEnd(fn func()) Cancel {
	return b.endObs.Add(func(struct{}) { fn() })
}

// Close detaches the item from the speaker and releases the decoder.
func (b *Beep) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.stop)
	streamer, it := b.streamer, b.item
	b.streamer = nil
	b.ctrl = nil
	b.volume = nil
	b.item = nil
	b.mu.Unlock()

	b.statusObs.Clear()
	b.endObs.Clear()

	if it != nil {
		speaker.Lock()
		it.closed = true
		speaker.Unlock()
	}
	if streamer != nil {
		return streamer.Close()
	}
	return nil
}

var _ Engine = (*Beep)(nil)
