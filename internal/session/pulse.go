package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/mafik/pulseaudio"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// Pulse is a Session backed by a PulseAudio (or pipewire-pulse) server.
//
// Activation connects to the server. The default sink's mute flag stands in
// for audio focus: muting it from outside begins an interruption, unmuting
// ends it with OptionShouldResume.
type Pulse struct {
	addresses []string

	mu       sync.Mutex
	category Category
	mode     Mode
	client   *pulseaudio.Client
	muted    bool
	stop     chan struct{}

	observers engine.Observers[Interruption]
}

// NewPulse creates an inactive session. Without addresses the library's
// default socket lookup is used.
func NewPulse(addresses ...string) *Pulse {
	return &Pulse{addresses: addresses}
}

// SetCategory records the category. Only playback categories are supported.
func (p *Pulse) SetCategory(c Category, m Mode) error {
	if c != CategoryPlayback && c != CategoryAmbient {
		return fault.Wrap(
			fmt.Errorf("category %d", c),
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("unsupported category", "Unsupported audio session category."),
		)
	}
	p.mu.Lock()
	p.category = c
	p.mode = m
	p.mu.Unlock()
	return nil
}

// SetActive connects to or disconnects from the server.
func (p *Pulse) SetActive(active bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !active {
		p.deactivateLocked()
		return nil
	}
	if p.client != nil {
		return nil
	}

	client, err := pulseaudio.NewClient(p.addresses...)
	if err != nil {
		return fault.Wrap(err,
			fctx.With(context.Background(),
				"error_at", "pulse-connect",
				"category", p.category.String(),
			),
			ftag.With(ftag.Internal),
			fmsg.WithDesc("pulse connect", "Cannot connect to the PulseAudio server."),
		)
	}

	updates, err := client.Updates()
	if err != nil {
		client.Close()
		return fault.Wrap(err,
			fctx.With(context.Background(), "error_at", "pulse-subscribe"),
			ftag.With(ftag.Internal),
			fmsg.WithDesc("pulse subscribe", "Cannot subscribe to PulseAudio events."),
		)
	}

	muted, err := client.Mute()
	if err != nil {
		muted = false
	}

	p.client = client
	p.muted = muted
	p.stop = make(chan struct{})
	go p.watch(client, updates, p.stop)
	return nil
}

func (p *Pulse) deactivateLocked() {
	if p.client == nil {
		return
	}
	close(p.stop)
	p.client.Close()
	p.client = nil
}

// watch turns server change notifications into interruptions.
func (p *Pulse) watch(client *pulseaudio.Client, updates <-chan struct{}, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			muted, err := client.Mute()
			if err != nil {
				continue
			}
			if in, changed := p.transition(muted); changed {
				p.observers.Notify(in)
			}
		}
	}
}

// transition records the new mute state and returns the matching interruption.
func (p *Pulse) transition(muted bool) (Interruption, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if muted == p.muted {
		return Interruption{}, false
	}
	p.muted = muted
	if muted {
		return Interruption{Type: InterruptionBegan}, true
	}
	return Interruption{
		Type:       InterruptionEnded,
		Options:    OptionShouldResume,
		HasOptions: true,
	}, true
}

// ObserveInterruptions registers fn. Signals arrive on the watcher goroutine.
func (p *Pulse) ObserveInterruptions(fn func(Interruption)) engine.Cancel {
	return p.observers.Add(fn)
}

// Active reports whether the session is connected.
func (p *Pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil
}

var _ Session = (*Pulse)(nil)
