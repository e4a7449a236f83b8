// Package ui is the terminal host: a bubbletea program whose event loop is
// the control thread of the playback controller.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/awesomeaudio/internal/engine"
	"github.com/llehouerou/awesomeaudio/internal/errmsg"
	"github.com/llehouerou/awesomeaudio/internal/keymap"
	"github.com/llehouerou/awesomeaudio/internal/player"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05

	defaultWidth = 60
)

// Mixer controls output volume. *engine.Beep implements it.
type Mixer interface {
	SetVolume(level float64)
	Volume() float64
	SetMuted(muted bool)
	Muted() bool
}

// Options configure the host.
type Options struct {
	Title  string
	Artist string

	// Mixer enables volume keys when set.
	Mixer Mixer

	// ResumeAt is sought to once the item is ready. ResumeSavedAt is shown
	// relative to Now.
	ResumeAt      time.Duration
	ResumeSavedAt time.Time

	// SavePosition receives the position on every progress event while playing.
	SavePosition func(pos time.Duration)
	// Finished runs after the item played to its end.
	Finished func()

	// Lines are shown in the status line, typically captured stderr.
	Lines <-chan string

	Now func() time.Time
}

type messageKind int

const (
	messageInfo messageKind = iota
	messageWarning
	messageError
)

// Model is the bubbletea model driving a player.Controller.
type Model struct {
	ctrl *player.Controller
	opts Options
	keys *keymap.Resolver
	help help.Model

	width    int
	showHelp bool

	status      engine.Status
	position    time.Duration
	duration    time.Duration
	playing     bool
	interrupted bool

	message     string
	messageKind messageKind
}

// New creates the model and installs its handlers on ctrl. It must run on
// the control thread, before the program starts.
func New(ctrl *player.Controller, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := &Model{
		ctrl: ctrl,
		opts: opts,
		keys: keymap.NewResolver(keymap.All),
		help: help.New(),
	}

	ctrl.OnStatusReadyToPlay(m.onReady)
	ctrl.OnStatusFailure(m.onFailure)
	ctrl.OnStatusUnknown(m.onUnknown)
	ctrl.OnProgress(m.onProgress)
	ctrl.OnFinishedPlayback(m.onFinished)
	ctrl.OnInterruptionBegin(m.onInterruptionBegin)
	ctrl.OnInterruptionEnd(m.onInterruptionEnd)
	return m
}

func (m *Model) Init() tea.Cmd {
	return waitForLine(m.opts.Lines)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RunMsg:
		msg.Fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case LineMsg:
		m.setMessage(msg.Line, messageWarning)
		return m, waitForLine(m.opts.Lines)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionPlayPause:
		m.interrupted = false
		m.ctrl.PlayPause()
	case keymap.ActionSeekForward:
		m.seek(m.ctrl.Position() + seekStep)
	case keymap.ActionSeekBack:
		m.seek(m.ctrl.Position() - seekStep)
	case keymap.ActionRestart:
		m.seek(0)
	case keymap.ActionVolumeUp:
		m.changeVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-volumeStep)
	case keymap.ActionMute:
		if m.opts.Mixer != nil {
			m.opts.Mixer.SetMuted(!m.opts.Mixer.Muted())
		}
	}
	m.refresh()
	return nil
}

func (m *Model) seek(to time.Duration) {
	if m.status != engine.StatusReadyToPlay {
		return
	}
	to = max(to, 0)
	if d := m.ctrl.Duration(); d > 0 {
		to = min(to, d)
	}
	m.ctrl.Seek(to)
}

func (m *Model) changeVolume(delta float64) {
	if m.opts.Mixer == nil {
		return
	}
	m.opts.Mixer.SetVolume(m.opts.Mixer.Volume() + delta)
}

// refresh copies the playback state out of the controller.
func (m *Model) refresh() {
	m.playing = m.ctrl.IsPlaying()
	m.position = m.ctrl.Position()
	m.duration = m.ctrl.Duration()
}

func (m *Model) setMessage(text string, kind messageKind) {
	m.message = text
	m.messageKind = kind
}

func (m *Model) onReady(ev player.Event) {
	m.status = ev.Status
	m.setMessage("", messageInfo)

	if at := m.opts.ResumeAt; at > 0 {
		if d := m.ctrl.Duration(); d == 0 || at < d {
			m.ctrl.Seek(at)
			msg := "Resumed at " + formatDuration(at)
			if !m.opts.ResumeSavedAt.IsZero() {
				msg += fmt.Sprintf(" (saved %s)",
					humanize.RelTime(m.opts.ResumeSavedAt, m.opts.Now(), "ago", "from now"))
			}
			m.setMessage(msg, messageInfo)
		}
		m.opts.ResumeAt = 0
	}

	m.ctrl.Play()
	m.refresh()
}

func (m *Model) onFailure(ev player.Event) {
	m.status = ev.Status
	m.setMessage(errmsg.Format(errmsg.OpPlaybackLoad, ev.Err), messageError)
	m.refresh()
}

func (m *Model) onUnknown(player.Event) {
	m.setMessage("Media status unknown", messageWarning)
}

func (m *Model) onProgress(ev player.Event) {
	m.position = ev.Position
	m.duration = ev.Duration
	m.playing = ev.Rate > 0
	if m.playing && m.opts.SavePosition != nil {
		m.opts.SavePosition(ev.Position)
	}
}

func (m *Model) onFinished(player.Event) {
	m.refresh()
	m.setMessage("Finished", messageInfo)
	if m.opts.Finished != nil {
		m.opts.Finished()
	}
}

func (m *Model) onInterruptionBegin(player.Event) {
	if m.ctrl.IsPlaying() {
		m.interrupted = true
		m.ctrl.Pause()
	}
	m.setMessage("Interrupted by another application", messageWarning)
	m.refresh()
}

func (m *Model) onInterruptionEnd(ev player.Event) {
	resume := m.interrupted && ev.ShouldResume
	m.interrupted = false
	if resume {
		m.ctrl.Play()
		m.setMessage("", messageInfo)
	} else {
		m.setMessage("Interruption ended", messageInfo)
	}
	m.refresh()
}

var _ tea.Model = (*Model)(nil)
