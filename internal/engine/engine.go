// Package engine defines the media engine the playback controller drives,
// together with a beep-based implementation and a test double.
package engine

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrUnsupportedScheme is reported for URIs that do not point at a local file.
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	// ErrUnsupportedFormat is reported for files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Engine is a player bound to a single media item.
//
// Signals registered through the Observe methods may be delivered on any
// goroutine. Every registration returns a Cancel that unregisters it.
type Engine interface {
	Status() Status
	Err() error // resolution error, set when Status is StatusFailed
	HasItem() bool

	Play()
	Pause()
	Seek(pos time.Duration)

	Rate() float64
	Position() time.Duration
	Duration() time.Duration

	ObserveStatus(fn func(StatusChange)) Cancel
	AddPeriodicObserver(interval time.Duration, fn func(pos time.Duration)) Cancel
	ObserveEnd(fn func()) Cancel

	Close() error
}

// Factory creates an engine bound to uri. It must not block: resolution
// happens asynchronously and is reported through ObserveStatus.
type Factory func(uri string) Engine

// Cancel unregisters an observer. Calling it more than once is a no-op.
type Cancel func()

// NewCancel wraps fn so that it runs at most once.
func NewCancel(fn func()) Cancel {
	var once sync.Once
	return func() { once.Do(fn) }
}

// NopCancel is a Cancel that does nothing.
func NopCancel() {}

// Observers is a registry of callbacks notified in registration order.
// The zero value is ready to use.
type Observers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (o *Observers[T]) Add(fn func(T)) Cancel {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return NewCancel(func() {
		o.mu.Lock()
		delete(o.fns, id)
		o.mu.Unlock()
	})
}

// Snapshot returns the registered callbacks in registration order.
func (o *Observers[T]) Snapshot() []func(T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fns := make([]func(T), 0, len(o.fns))
	for id := range o.next {
		if fn, ok := o.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (o *Observers[T]) Notify(v T) {
	for _, fn := range o.Snapshot() {
		fn(v)
	}
}

func (o *Observers[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

func (o *Observers[T]) Clear() {
	o.mu.Lock()
	o.fns = nil
	o.mu.Unlock()
}
