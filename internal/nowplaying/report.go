package nowplaying

import "sync"

// reporter forwards surface errors to a handler. A failure that repeats
// with the same message is reported once; a success re-arms it.
type reporter struct {
	mu      sync.Mutex
	fn      func(error)
	last    error
	pending bool
}

// OnError installs fn as the error handler. An error recorded before the
// handler was installed is delivered right away.
func (r *reporter) OnError(fn func(error)) {
	r.mu.Lock()
	r.fn = fn
	err := r.last
	deliver := r.pending && fn != nil
	if deliver {
		r.pending = false
	}
	r.mu.Unlock()
	if deliver {
		fn(err)
	}
}

// report records the outcome of an operation. nil clears the last error.
func (r *reporter) report(err error) {
	r.mu.Lock()
	if err == nil {
		r.last = nil
		r.pending = false
		r.mu.Unlock()
		return
	}
	if r.last != nil && r.last.Error() == err.Error() {
		r.last = err
		r.mu.Unlock()
		return
	}
	r.last = err
	fn := r.fn
	r.pending = fn == nil
	r.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

func (r *reporter) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
