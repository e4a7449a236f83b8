package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/awesomeaudio/internal/dispatch"
	"github.com/llehouerou/awesomeaudio/internal/engine"
	"github.com/llehouerou/awesomeaudio/internal/player"
	"github.com/llehouerou/awesomeaudio/internal/session"
)

type fakeMixer struct {
	level float64
	muted bool
}

func (f *fakeMixer) SetVolume(level float64) { f.level = min(max(level, 0), 1) }
func (f *fakeMixer) Volume() float64         { return f.level }
func (f *fakeMixer) SetMuted(muted bool)     { f.muted = muted }
func (f *fakeMixer) Muted() bool             { return f.muted }

type fixture struct {
	eng  *engine.Mock
	sess *session.Mock
	ctrl *player.Controller
	m    *Model
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{eng: engine.NewMock(), sess: session.NewMock()}
	f.ctrl = player.New(player.NewSource("file:///music/song.mp3"), player.Deps{
		Engine:  engine.MockFactory(f.eng, nil),
		Session: f.sess,
		Queue:   dispatch.Inline{},
	})
	f.m = New(f.ctrl, opts)
	if err := f.ctrl.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	return f
}

func (f *fixture) ready() {
	f.eng.SetDuration(3 * time.Minute)
	f.eng.SimulateStatus(engine.StatusReadyToPlay, nil)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (f *fixture) press(t *testing.T, s string) tea.Cmd {
	t.Helper()
	_, cmd := f.m.Update(key(s))
	return cmd
}

func TestModel_AutoplayOnReady(t *testing.T) {
	f := newFixture(t, Options{Title: "Song"})

	f.ready()

	if !f.ctrl.IsPlaying() {
		t.Error("not playing after ready")
	}
	view := ansi.Strip(f.m.View())
	if !strings.Contains(view, playSymbol) || !strings.Contains(view, "3:00") {
		t.Errorf("view missing progress line:\n%s", view)
	}
}

func TestModel_LoadingThenFailure(t *testing.T) {
	f := newFixture(t, Options{Title: "Song"})
	if !strings.Contains(ansi.Strip(f.m.View()), "Loading") {
		t.Error("view does not show loading state")
	}

	f.eng.SimulateStatus(engine.StatusFailed, errors.New("unsupported format"))

	view := ansi.Strip(f.m.View())
	if !strings.Contains(view, "Failed to load media: unsupported format") {
		t.Errorf("view missing failure message:\n%s", view)
	}
}

func TestModel_Resume(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, Options{
		Title:         "Song",
		ResumeAt:      83 * time.Second,
		ResumeSavedAt: now.Add(-2 * time.Hour),
		Now:           func() time.Time { return now },
	})

	f.ready()

	if got := f.eng.SeekCalls(); len(got) != 1 || got[0] != 83*time.Second {
		t.Errorf("seek calls = %v, want [1m23s]", got)
	}
	view := ansi.Strip(f.m.View())
	if !strings.Contains(view, "Resumed at 1:23 (saved 2 hours ago)") {
		t.Errorf("view missing resume message:\n%s", view)
	}
}

func TestModel_ResumeBeyondEndIgnored(t *testing.T) {
	f := newFixture(t, Options{ResumeAt: 10 * time.Minute})

	f.ready()

	if got := f.eng.SeekCalls(); len(got) != 0 {
		t.Errorf("seek calls = %v, want none", got)
	}
}

func TestModel_Keys(t *testing.T) {
	mixer := &fakeMixer{level: 0.5}
	f := newFixture(t, Options{Mixer: mixer})
	f.ready()
	f.eng.SetPosition(time.Minute)

	f.press(t, "p")
	if f.ctrl.IsPlaying() {
		t.Error("p did not pause")
	}
	f.press(t, "l")
	if pos := f.ctrl.Position(); pos != time.Minute+seekStep {
		t.Errorf("position after seek forward = %v", pos)
	}
	f.press(t, "h")
	f.press(t, "h")
	if pos := f.ctrl.Position(); pos != time.Minute-seekStep {
		t.Errorf("position after seek back = %v", pos)
	}
	f.press(t, "0")
	if pos := f.ctrl.Position(); pos != 0 {
		t.Errorf("position after restart = %v", pos)
	}
	f.press(t, "+")
	if mixer.level < 0.54 || mixer.level > 0.56 {
		t.Errorf("volume = %v, want 0.55", mixer.level)
	}
	f.press(t, "m")
	if !mixer.muted {
		t.Error("m did not mute")
	}
	if !strings.Contains(ansi.Strip(f.m.View()), "mute") {
		t.Error("view does not show muted volume")
	}
}

func TestModel_SeekClampsToDuration(t *testing.T) {
	f := newFixture(t, Options{})
	f.ready()
	f.eng.SetPosition(3*time.Minute - time.Second)

	f.press(t, "l")

	if pos := f.ctrl.Position(); pos != 3*time.Minute {
		t.Errorf("position = %v, want 3m", pos)
	}
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, Options{})

	cmd := f.press(t, "q")

	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModel_ProgressSavesPositionWhilePlaying(t *testing.T) {
	var saved []time.Duration
	f := newFixture(t, Options{SavePosition: func(pos time.Duration) { saved = append(saved, pos) }})
	f.ready()

	f.eng.SimulateTick(10 * time.Second)
	f.ctrl.Pause()
	f.eng.SimulateTick(11 * time.Second)

	if len(saved) != 1 || saved[0] != 10*time.Second {
		t.Errorf("saved = %v, want [10s]", saved)
	}
	if !strings.Contains(ansi.Strip(f.m.View()), "0:11") {
		t.Error("view does not show latest position")
	}
}

func TestModel_Finished(t *testing.T) {
	finished := 0
	f := newFixture(t, Options{Finished: func() { finished++ }})
	f.ready()

	f.eng.SimulateEnd()

	if finished != 1 {
		t.Errorf("finished callback calls = %d, want 1", finished)
	}
	view := ansi.Strip(f.m.View())
	if !strings.Contains(view, "Finished") || !strings.Contains(view, pauseSymbol+"  0:00") {
		t.Errorf("view after finish:\n%s", view)
	}
}

func TestModel_InterruptionPausesAndResumes(t *testing.T) {
	tests := []struct {
		name         string
		shouldResume bool
		wantPlaying  bool
	}{
		{"resume hint", true, true},
		{"no resume hint", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			f.ready()

			f.sess.SimulateInterruption(session.Interruption{Type: session.InterruptionBegan})
			if f.ctrl.IsPlaying() {
				t.Fatal("still playing during interruption")
			}

			opts := session.InterruptionOptions(0)
			if tt.shouldResume {
				opts = session.OptionShouldResume
			}
			f.sess.SimulateInterruption(session.Interruption{
				Type: session.InterruptionEnded, Options: opts, HasOptions: true,
			})

			if f.ctrl.IsPlaying() != tt.wantPlaying {
				t.Errorf("IsPlaying() = %v, want %v", f.ctrl.IsPlaying(), tt.wantPlaying)
			}
		})
	}
}

func TestModel_NoResumeWhenPausedByUser(t *testing.T) {
	f := newFixture(t, Options{})
	f.ready()
	f.ctrl.Pause()

	f.sess.SimulateInterruption(session.Interruption{Type: session.InterruptionBegan})
	f.sess.SimulateInterruption(session.Interruption{
		Type: session.InterruptionEnded, Options: session.OptionShouldResume, HasOptions: true,
	})

	if f.ctrl.IsPlaying() {
		t.Error("resumed playback the user had paused")
	}
}

func TestModel_RunMsgRunsOnUpdate(t *testing.T) {
	f := newFixture(t, Options{})
	ran := false

	f.m.Update(RunMsg{Fn: func() { ran = true }})

	if !ran {
		t.Error("RunMsg function did not run")
	}
}

func TestModel_Lines(t *testing.T) {
	lines := make(chan string, 1)
	f := newFixture(t, Options{Lines: lines})
	lines <- "ALSA lib pcm.c: underrun occurred"

	msg := f.m.Init()()
	_, next := f.m.Update(msg)

	if next == nil {
		t.Error("no follow-up wait command")
	}
	if !strings.Contains(ansi.Strip(f.m.View()), "underrun occurred") {
		t.Error("captured line not shown")
	}
}

func TestQueue_SendsRunMsg(t *testing.T) {
	var sent []tea.Msg
	q := Queue(func(msg tea.Msg) { sent = append(sent, msg) })

	q.Dispatch(func() {})

	if len(sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sent))
	}
	if _, ok := sent[0].(RunMsg); !ok {
		t.Errorf("sent %T, want RunMsg", sent[0])
	}
}

func TestModel_HelpToggle(t *testing.T) {
	f := newFixture(t, Options{})
	before := ansi.Strip(f.m.View())
	if strings.Contains(before, "quit") {
		t.Errorf("short help shows global bindings:\n%s", before)
	}

	f.press(t, "?")

	if after := ansi.Strip(f.m.View()); !strings.Contains(after, "Quit") {
		t.Errorf("full help missing quit binding:\n%s", after)
	}
}
