// Package player implements the playback controller: it drives a media engine
// for one source, translates the engine and audio session signals into typed
// events, and publishes now-playing metadata to a remote-command center.
package player

import (
	"errors"
	"image"
	"time"

	"github.com/llehouerou/awesomeaudio/internal/dispatch"
	"github.com/llehouerou/awesomeaudio/internal/engine"
	"github.com/llehouerou/awesomeaudio/internal/nowplaying"
	"github.com/llehouerou/awesomeaudio/internal/session"
)

// DefaultProgressInterval is the progress cadence used when Deps leaves it unset.
const DefaultProgressInterval = 500 * time.Millisecond

// Deps are the collaborators of a Controller. Zero fields get defaults, except
// Engine which Setup requires.
type Deps struct {
	Engine           engine.Factory
	Session          session.Session
	Center           nowplaying.Center
	Queue            dispatch.Queue
	ProgressInterval time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Session == nil {
		d.Session = session.Nop{}
	}
	if d.Center == nil {
		d.Center = nowplaying.Nop{}
	}
	if d.Queue == nil {
		d.Queue = dispatch.Inline{}
	}
	if d.ProgressInterval <= 0 {
		d.ProgressInterval = DefaultProgressInterval
	}
	return d
}

// Controller plays a single Source.
//
// All methods must be called on the control thread, the goroutine draining
// Deps.Queue. Collaborator signals are dispatched onto that queue before any
// handler runs, so handlers never run concurrently with each other or with
// commands.
type Controller struct {
	source Source
	deps   Deps

	eng           engine.Engine
	sessionActive bool
	status        engine.Status
	err           error
	observing     bool
	closed        bool

	mediaCenter       bool
	targetsRegistered bool
	artist            string
	title             string
	artwork           image.Image

	handlers [eventKindCount]Handler
	cancels  []engine.Cancel
}

// New creates a controller for source. It performs no I/O.
func New(source Source, deps Deps) *Controller {
	return &Controller{
		source: source,
		deps:   deps.withDefaults(),
	}
}

// Source returns the source the controller was created with.
func (c *Controller) Source() Source {
	return c.source
}

// Setup activates the audio session, creates the engine for the source and
// starts listening for its status. Resolution is reported later through the
// ReadyToPlay, Failure or Unknown events.
func (c *Controller) Setup() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.eng != nil:
		return ErrAlreadySetup
	case c.deps.Engine == nil:
		return ErrNoEngine
	}

	if err := c.deps.Session.SetCategory(session.CategoryPlayback, session.ModeDefault); err != nil {
		return sessionError(err, "session-category", c.source)
	}
	if err := c.deps.Session.SetActive(true); err != nil {
		return sessionError(err, "session-activate", c.source)
	}
	c.sessionActive = true

	c.eng = c.deps.Engine(c.source.URI())
	c.track(c.eng.ObserveStatus(func(change engine.StatusChange) {
		c.dispatch(func() { c.handleStatus(change) })
	}))
	return nil
}

// MustSetup is like Setup but panics on failure.
func (c *Controller) MustSetup() {
	if err := c.Setup(); err != nil {
		panic(err)
	}
}

// Close releases every collaborator subscription, closes the engine and
// deactivates the audio session. No handler fires afterwards, including for
// signals already queued. Close is idempotent.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for i := len(c.cancels) - 1; i >= 0; i-- {
		c.cancels[i]()
	}
	c.cancels = nil

	var errs []error
	if c.eng != nil {
		errs = append(errs, c.eng.Close())
	}
	if c.sessionActive {
		c.sessionActive = false
		errs = append(errs, c.deps.Session.SetActive(false))
	}
	return errors.Join(errs...)
}

// EnableCommandMediaCenter turns on now-playing publication with the given
// metadata and starts accepting remote play/pause commands. Remote targets
// are registered once per controller; later calls only replace the metadata.
// Empty strings fall back to nowplaying.DefaultArtist and DefaultTitle.
func (c *Controller) EnableCommandMediaCenter(artist, title string, artwork image.Image) {
	if artist == "" {
		artist = nowplaying.DefaultArtist
	}
	if title == "" {
		title = nowplaying.DefaultTitle
	}
	c.mediaCenter = true
	c.artist = artist
	c.title = title
	c.artwork = artwork

	if !c.targetsRegistered && !c.closed {
		c.targetsRegistered = true
		c.track(c.deps.Center.AddPlayTarget(func() { c.dispatch(c.Play) }))
		c.track(c.deps.Center.AddPauseTarget(func() { c.dispatch(c.Pause) }))
	}
	c.updateMediaCenter()
}

// Play starts or resumes playback. It does nothing before Setup.
func (c *Controller) Play() {
	if c.eng == nil || c.closed {
		return
	}
	c.eng.Play()
	c.updateMediaCenter()
}

// Pause pauses playback. It does nothing before Setup.
func (c *Controller) Pause() {
	if c.eng == nil || c.closed {
		return
	}
	c.eng.Pause()
	c.updateMediaCenter()
}

// PlayPause toggles between Play and Pause.
func (c *Controller) PlayPause() {
	if c.IsPlaying() {
		c.Pause()
		return
	}
	c.Play()
}

// IsPlaying reports whether the engine rate is positive.
func (c *Controller) IsPlaying() bool {
	return c.eng != nil && c.eng.Rate() > 0
}

// Seek moves to an absolute position without changing the play state.
func (c *Controller) Seek(to time.Duration) {
	if c.eng == nil || c.closed {
		return
	}
	c.eng.Seek(to)
	c.updateMediaCenter()
}

// Position returns the current playback position, or 0 before Setup.
func (c *Controller) Position() time.Duration {
	if c.eng == nil {
		return 0
	}
	return c.eng.Position()
}

// Duration returns the item duration, or 0 while unknown.
func (c *Controller) Duration() time.Duration {
	if c.eng == nil {
		return 0
	}
	return c.eng.Duration()
}

// Status returns the recorded readiness. It never returns to StatusUnknown
// once resolved.
func (c *Controller) Status() engine.Status {
	return c.status
}

// Err returns the resolution error after a failure.
func (c *Controller) Err() error {
	return c.err
}

// On sets the handler for kind, replacing the previous one. A nil handler
// clears the slot.
func (c *Controller) On(kind EventKind, h Handler) {
	if kind < 0 || kind >= eventKindCount {
		return
	}
	c.handlers[kind] = h
}

func (c *Controller) OnStatusReadyToPlay(h Handler) { c.On(EventReadyToPlay, h) }
func (c *Controller) OnStatusFailure(h Handler)     { c.On(EventFailure, h) }
func (c *Controller) OnStatusUnknown(h Handler)     { c.On(EventUnknown, h) }
func (c *Controller) OnProgress(h Handler)          { c.On(EventProgress, h) }
func (c *Controller) OnFinishedPlayback(h Handler)  { c.On(EventFinished, h) }
func (c *Controller) OnInterruptionBegin(h Handler) { c.On(EventInterruptionBegin, h) }

// OnInterruptionEnd sets the handler for interruption ends. Event.ShouldResume
// carries the session's resume hint; the controller never resumes by itself.
func (c *Controller) OnInterruptionEnd(h Handler) { c.On(EventInterruptionEnd, h) }

// dispatch queues fn on the control thread. Queued work is dropped once the
// controller is closed.
func (c *Controller) dispatch(fn func()) {
	c.deps.Queue.Dispatch(func() {
		if c.closed {
			return
		}
		fn()
	})
}

func (c *Controller) track(cancel engine.Cancel) {
	c.cancels = append(c.cancels, cancel)
}

func (c *Controller) fire(kind EventKind, ev Event) {
	h := c.handlers[kind]
	if h == nil {
		return
	}
	ev.Kind = kind
	h(ev)
}

func (c *Controller) handleStatus(change engine.StatusChange) {
	switch change.New {
	case engine.StatusReadyToPlay:
		c.status = engine.StatusReadyToPlay
		c.err = nil
		c.fire(EventReadyToPlay, Event{Status: c.status})
		// The handler may have closed the controller.
		if !c.closed {
			c.observe()
		}
	case engine.StatusFailed:
		c.status = engine.StatusFailed
		c.err = c.eng.Err()
		c.fire(EventFailure, Event{Status: c.status, Err: c.err})
	default:
		c.fire(EventUnknown, Event{Status: change.New})
	}
}

// observe installs the progress, end and interruption subscriptions. They
// are installed once, after the first ReadyToPlay.
func (c *Controller) observe() {
	if c.observing {
		return
	}
	c.observing = true

	c.track(c.eng.AddPeriodicObserver(c.deps.ProgressInterval, func(pos time.Duration) {
		c.dispatch(func() { c.handleProgress(pos) })
	}))
	c.track(c.eng.ObserveEnd(func() {
		c.dispatch(c.handleFinished)
	}))
	c.track(c.deps.Session.ObserveInterruptions(func(in session.Interruption) {
		c.dispatch(func() { c.handleInterruption(in) })
	}))
}

func (c *Controller) handleProgress(pos time.Duration) {
	c.fire(EventProgress, Event{
		Status:   c.status,
		Position: pos,
		Duration: c.eng.Duration(),
		Rate:     c.eng.Rate(),
	})
	if !c.closed {
		c.updateMediaCenter()
	}
}

func (c *Controller) handleFinished() {
	c.eng.Seek(0)
	c.updateMediaCenter()
	c.fire(EventFinished, Event{
		Status:   c.status,
		Position: c.eng.Position(),
		Duration: c.eng.Duration(),
	})
}

func (c *Controller) handleInterruption(in session.Interruption) {
	switch in.Type {
	case session.InterruptionBegan:
		c.fire(EventInterruptionBegin, Event{Status: c.status})
	case session.InterruptionEnded:
		if !in.HasOptions {
			return
		}
		c.fire(EventInterruptionEnd, Event{
			Status:       c.status,
			ShouldResume: in.Options.Contains(session.OptionShouldResume),
		})
	}
}

// updateMediaCenter publishes a full snapshot when publication is enabled
// and the engine has an item loaded.
func (c *Controller) updateMediaCenter() {
	if !c.mediaCenter || c.eng == nil || c.closed || !c.eng.HasItem() {
		return
	}
	c.deps.Center.SetNowPlaying(nowplaying.Info{
		Artist:          c.artist,
		Title:           c.title,
		Artwork:         c.artwork,
		DurationSeconds: c.eng.Duration().Seconds(),
		ElapsedSeconds:  c.eng.Position().Seconds(),
		PlaybackRate:    c.eng.Rate(),
	})
}
