package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/awesomeaudio/internal/dispatch"
)

// RunMsg carries work dispatched onto the program's event loop.
type RunMsg struct {
	Fn func()
}

// LineMsg carries a line captured from a C library's stderr.
type LineMsg struct {
	Line string
}

// Queue returns a dispatch queue that runs functions inside Update. send is
// usually (*tea.Program).Send; it must not be called from Update itself.
func Queue(send func(tea.Msg)) dispatch.Queue {
	return dispatch.QueueFunc(func(fn func()) {
		send(RunMsg{Fn: fn})
	})
}

// waitForLine waits for the next captured stderr line.
func waitForLine(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return LineMsg{Line: line}
	}
}
