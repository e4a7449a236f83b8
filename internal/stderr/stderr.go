//go:build !windows

package stderr

import (
	"os"
	"syscall"
)

// Capture redirects file descriptor 2 into a pipe while it is running.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	lines chan string
	done  chan struct{}
}

// Start begins capturing stderr output. It must run before the audio device
// is opened. On error the program can continue without capture.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  orig,
		read:  r,
		write: w,
		lines: make(chan string, bufferSize),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		forward(r, c.lines)
	}()
	return c, nil
}

// Lines receives captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the original stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.write.Close()
	<-c.done
	c.read.Close()
}
