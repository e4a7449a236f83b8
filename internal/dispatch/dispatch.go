// Package dispatch provides the designated control context on which player
// handlers run. Collaborator signals arrive on arbitrary goroutines and are
// handed to a Queue, which runs them one at a time.
package dispatch

import (
	"context"
	"sync"
)

// Queue runs functions on the control context.
type Queue interface {
	Dispatch(fn func())
}

// QueueFunc adapts a plain function to Queue.
type QueueFunc func(fn func())

// Dispatch calls f(fn).
func (f QueueFunc) Dispatch(fn func()) { f(fn) }

// Inline runs every function immediately on the calling goroutine.
// Only safe when all signals already arrive on the control context,
// as with synchronous test doubles.
type Inline struct{}

// Dispatch runs fn.
func (Inline) Dispatch(fn func()) { fn() }

const defaultLoopSize = 64

// Loop is a Queue backed by a single goroutine.
type Loop struct {
	fns  chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop creates a loop with the given buffer size (64 when size <= 0).
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = defaultLoopSize
	}
	return &Loop{
		fns:  make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Dispatch enqueues fn. It blocks while the buffer is full and drops fn
// once the loop is stopped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case <-l.done:
	case l.fns <- fn:
	}
}

// Run executes queued functions until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.fns:
			fn()
		}
	}
}

// Stop ends Run. Pending functions are discarded.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Verify implementations satisfy Queue at compile time.
var (
	_ Queue = Inline{}
	_ Queue = QueueFunc(nil)
	_ Queue = (*Loop)(nil)
)
