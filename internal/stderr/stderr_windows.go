//go:build windows

package stderr

import "os"

// Capture is a no-op on Windows: its audio backends do not write to fd 2.
type Capture struct {
	lines chan string
}

// Start returns an inert capture.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines never receives anything until Stop closes it.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop closes Lines.
func (c *Capture) Stop() {
	close(c.lines)
}
