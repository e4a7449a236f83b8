package engine

import "github.com/gopxl/beep/v2"

var _ beep.Streamer = (*item)(nil)

// item is the streamer handed to the speaker mixer. It never drains: when the
// inner streamer runs out it pads with silence, pauses ctrl and reports the
// end once, so a later seek and play restart the same item.
//
// All fields are guarded by the speaker lock.
type item struct {
	inner  beep.Streamer
	ctrl   *beep.Ctrl
	onEnd  func()
	ended  bool
	closed bool
}

// Stream implements beep.Streamer.
func (it *item) Stream(samples [][2]float64) (n int, ok bool) {
	if it.closed {
		return 0, false
	}

	n, ok = it.inner.Stream(samples)
	if ok && n == len(samples) {
		return n, true
	}

	for i := max(n, 0); i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	if it.ctrl != nil {
		it.ctrl.Paused = true
	}
	if !it.ended {
		it.ended = true
		if it.onEnd != nil {
			it.onEnd()
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (it *item) Err() error {
	return it.inner.Err()
}

// rewind clears the end marker after a seek.
func (it *item) rewind() {
	it.ended = false
}
