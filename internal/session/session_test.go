package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterruptionOptions_Contains(t *testing.T) {
	assert.True(t, OptionShouldResume.Contains(OptionShouldResume))
	assert.False(t, InterruptionOptions(0).Contains(OptionShouldResume))
	assert.True(t, InterruptionOptions(0b11).Contains(OptionShouldResume))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "playback", CategoryPlayback.String())
	assert.Equal(t, "ambient", CategoryAmbient.String())
	assert.Equal(t, "unknown", Category(9).String())
	assert.Equal(t, "default", ModeDefault.String())
	assert.Equal(t, "spoken-audio", ModeSpokenAudio.String())
	assert.Equal(t, "began", InterruptionBegan.String())
	assert.Equal(t, "ended", InterruptionEnded.String())
}

func TestNop(t *testing.T) {
	var s Session = Nop{}
	assert.NoError(t, s.SetCategory(CategoryPlayback, ModeDefault))
	assert.NoError(t, s.SetActive(true))
	cancel := s.ObserveInterruptions(func(Interruption) { t.Error("Nop interrupted") })
	cancel()
}

func TestMock_RecordsCallsAndFailsActivation(t *testing.T) {
	m := NewMock()
	m.SetActivateError(errors.New("busy"))

	assert.NoError(t, m.SetCategory(CategoryPlayback, ModeDefault))
	assert.Error(t, m.SetActive(true))
	assert.False(t, m.Active())
	assert.Equal(t, []string{"category:playback/default", "activate"}, m.Calls())
}

func TestMock_SimulateInterruption(t *testing.T) {
	m := NewMock()
	var got []Interruption
	cancel := m.ObserveInterruptions(func(in Interruption) { got = append(got, in) })

	m.SimulateInterruption(Interruption{Type: InterruptionBegan})
	cancel()
	m.SimulateInterruption(Interruption{Type: InterruptionEnded})

	assert.Len(t, got, 1)
	assert.Equal(t, InterruptionBegan, got[0].Type)
	assert.Equal(t, 0, m.ObserverCount())
}

func TestPulse_Transition(t *testing.T) {
	p := NewPulse()

	_, changed := p.transition(false)
	assert.False(t, changed, "unchanged mute state is not an interruption")

	in, changed := p.transition(true)
	assert.True(t, changed)
	assert.Equal(t, InterruptionBegan, in.Type)

	_, changed = p.transition(true)
	assert.False(t, changed)

	in, changed = p.transition(false)
	assert.True(t, changed)
	assert.Equal(t, InterruptionEnded, in.Type)
	assert.True(t, in.HasOptions)
	assert.True(t, in.Options.Contains(OptionShouldResume))
}

func TestPulse_SetCategory(t *testing.T) {
	p := NewPulse()
	assert.NoError(t, p.SetCategory(CategoryPlayback, ModeDefault))
	assert.Error(t, p.SetCategory(Category(7), ModeDefault))
}

func TestPulse_DeactivateWhenInactive(t *testing.T) {
	p := NewPulse()
	assert.NoError(t, p.SetActive(false))
	assert.False(t, p.Active())
}
