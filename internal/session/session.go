// Package session models the audio session / audio focus authority: the
// playback controller activates it before loading media and listens to it for
// interruptions.
package session

import (
	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// Category describes how the application intends to use audio.
type Category int

const (
	CategoryPlayback Category = iota
	CategoryAmbient
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPlayback:
		return "playback"
	case CategoryAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Mode refines a category.
type Mode int

const (
	ModeDefault Mode = iota
	ModeSpokenAudio
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeSpokenAudio:
		return "spoken-audio"
	default:
		return "unknown"
	}
}

// InterruptionType tells whether another party took or released audio focus.
type InterruptionType int

const (
	InterruptionBegan InterruptionType = iota
	InterruptionEnded
)

// String returns the interruption type name.
func (t InterruptionType) String() string {
	switch t {
	case InterruptionBegan:
		return "began"
	case InterruptionEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// InterruptionOptions are flags attached to an ended interruption.
type InterruptionOptions uint

// OptionShouldResume hints that playback may resume.
const OptionShouldResume InterruptionOptions = 1 << 0

// Contains reports whether all flags in o2 are set.
func (o InterruptionOptions) Contains(o2 InterruptionOptions) bool {
	return o&o2 == o2
}

// Interruption is emitted by a Session when audio focus changes hands.
// Ended interruptions normally carry options; HasOptions is false when the
// authority sent none.
type Interruption struct {
	Type       InterruptionType
	Options    InterruptionOptions
	HasOptions bool
}

// Session is the audio session collaborator.
type Session interface {
	SetCategory(c Category, m Mode) error
	SetActive(active bool) error
	ObserveInterruptions(fn func(Interruption)) engine.Cancel
}

// Nop is a Session that always activates and never interrupts.
type Nop struct{}

func (Nop) SetCategory(Category, Mode) error { return nil }

func (Nop) SetActive(bool) error { return nil }

func (Nop) ObserveInterruptions(func(Interruption)) engine.Cancel { return engine.NopCancel }

var _ Session = Nop{}
