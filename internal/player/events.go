package player

import (
	"time"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// EventKind identifies a controller event. Each kind has a single handler slot.
type EventKind int

const (
	EventReadyToPlay EventKind = iota
	EventFailure
	EventUnknown
	EventProgress
	EventFinished
	EventInterruptionBegin
	EventInterruptionEnd

	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventReadyToPlay:       "ready-to-play",
	EventFailure:           "failure",
	EventUnknown:           "unknown",
	EventProgress:          "progress",
	EventFinished:          "finished",
	EventInterruptionBegin: "interruption-begin",
	EventInterruptionEnd:   "interruption-end",
}

func (k EventKind) String() string {
	if k < 0 || k >= eventKindCount {
		return "invalid"
	}
	return eventKindNames[k]
}

// Event is delivered to handlers on the control thread. Only the fields that
// make sense for Kind are set:
//
//	ReadyToPlay, Unknown   Status
//	Failure                Status, Err
//	Progress               Position, Duration, Rate
//	Finished               Position (always 0), Duration
//	InterruptionEnd        ShouldResume
type Event struct {
	Kind         EventKind
	Status       engine.Status
	Position     time.Duration
	Duration     time.Duration
	Rate         float64
	Err          error
	ShouldResume bool
}

// Handler receives controller events.
type Handler func(Event)
