package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCancel_RunsOnce(t *testing.T) {
	calls := 0
	cancel := NewCancel(func() { calls++ })

	cancel()
	cancel()

	assert.Equal(t, 1, calls)
}

func TestObservers_NotifyInRegistrationOrder(t *testing.T) {
	var o Observers[int]
	var got []string

	o.Add(func(v int) { got = append(got, "a") })
	o.Add(func(v int) { got = append(got, "b") })
	o.Add(func(v int) { got = append(got, "c") })

	o.Notify(1)

	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestObservers_CancelRemoves(t *testing.T) {
	var o Observers[int]
	var got []int

	cancel := o.Add(func(v int) { got = append(got, v) })
	o.Notify(1)
	cancel()
	o.Notify(2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, o.Len())
}

func TestObservers_Clear(t *testing.T) {
	var o Observers[int]
	o.Add(func(int) {})
	o.Add(func(int) {})

	o.Clear()

	assert.Equal(t, 0, o.Len())
	assert.Empty(t, o.Snapshot())
}

func TestObservers_CancelDuringNotify(t *testing.T) {
	var o Observers[int]
	calls := 0
	var cancel Cancel
	cancel = o.Add(func(int) {
		calls++
		cancel()
	})

	o.Notify(1)
	o.Notify(2)

	assert.Equal(t, 1, calls)
}
