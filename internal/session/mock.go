package session

import (
	"sync"

	"github.com/llehouerou/awesomeaudio/internal/engine"
)

// Mock is a test double for Session.
type Mock struct {
	mu          sync.Mutex
	category    Category
	mode        Mode
	active      bool
	categoryErr error
	activateErr error
	calls       []string
	observers   engine.Observers[Interruption]
}

// NewMock creates an inactive mock session.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SetCategory(c Category, mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "category:"+c.String()+"/"+mode.String())
	if m.categoryErr != nil {
		return m.categoryErr
	}
	m.category = c
	m.mode = mode
	return nil
}

func (m *Mock) SetActive(active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if active {
		m.calls = append(m.calls, "activate")
	} else {
		m.calls = append(m.calls, "deactivate")
	}
	if active && m.activateErr != nil {
		return m.activateErr
	}
	m.active = active
	return nil
}

func (m *Mock) ObserveInterruptions(fn func(Interruption)) engine.Cancel {
	return m.observers.Add(fn)
}

// Test helpers

func (m *Mock) SetCategoryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryErr = err
}

func (m *Mock) SetActivateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activateErr = err
}

func (m *Mock) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Mock) Category() (Category, Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.category, m.mode
}

// Calls returns the recorded SetCategory/SetActive calls in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ObserverCount returns the number of live interruption observers.
func (m *Mock) ObserverCount() int {
	return m.observers.Len()
}

// SimulateInterruption delivers in to every observer.
func (m *Mock) SimulateInterruption(in Interruption) {
	m.observers.Notify(in)
}

// Verify Mock implements Session at compile time.
var _ Session = (*Mock)(nil)
