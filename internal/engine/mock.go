package engine

import (
	"sync"
	"time"
)

// Mock is a synchronous test double for Engine. Signals are delivered on the
// goroutine that calls the Simulate helpers.
type Mock struct {
	mu         sync.Mutex
	status     Status
	err        error
	hasItem    bool
	rate       float64
	position   time.Duration
	duration   time.Duration
	closed     bool
	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration
	intervals  []time.Duration

	statusObs   Observers[StatusChange]
	periodicObs Observers[time.Duration]
	endObs      Observers[struct{}]
}

// NewMock creates a mock engine with no resolved item.
func NewMock() *Mock {
	return &Mock{}
}

// MockFactory returns a Factory that always hands out m and records the URI.
func MockFactory(m *Mock, uris *[]string) Factory {
	return func(uri string) Engine {
		if uris != nil {
			*uris = append(*uris, uri)
		}
		return m
	}
}

func (m *Mock) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Mock) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mock) HasItem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hasItem
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	m.rate = 1
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.rate = 0
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) ObserveStatus(fn func(StatusChange)) Cancel {
	return m.statusObs.Add(fn)
}

func (m *Mock) AddPeriodicObserver(interval time.Duration, fn func(time.Duration)) Cancel {
	m.mu.Lock()
	m.intervals = append(m.intervals, interval)
	m.mu.Unlock()
	return m.periodicObs.Add(fn)
}

func (m *Mock) ObserveEnd(fn func()) Cancel {
	return m.endObs.Add(func(struct{}) { fn() })
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SimulateStatus resolves the item and notifies status observers. A ready
// status also loads the item.
func (m *Mock) SimulateStatus(status Status, err error) {
	m.mu.Lock()
	old := m.status
	m.status = status
	m.err = err
	if status == StatusReadyToPlay {
		m.hasItem = true
	}
	m.mu.Unlock()
	m.statusObs.Notify(StatusChange{Old: old, New: status})
}

// SimulateStatusChange notifies status observers without touching the mock state.
func (m *Mock) SimulateStatusChange(change StatusChange) {
	m.statusObs.Notify(change)
}

// SimulateTick moves the position and fires periodic observers.
func (m *Mock) SimulateTick(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	m.mu.Unlock()
	m.periodicObs.Notify(pos)
}

// SimulateEnd parks the item at its end, pauses it and fires end observers.
func (m *Mock) SimulateEnd() {
	m.mu.Lock()
	m.position = m.duration
	m.rate = 0
	m.mu.Unlock()
	m.endObs.Notify(struct{}{})
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetRate(r float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = r
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Intervals returns the intervals passed to AddPeriodicObserver.
func (m *Mock) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.intervals...)
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// ObserverCounts returns the number of live status, periodic and end observers.
func (m *Mock) ObserverCounts() (status, periodic, end int) {
	return m.statusObs.Len(), m.periodicObs.Len(), m.endObs.Len()
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
