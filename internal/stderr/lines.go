// Package stderr captures stderr output from C audio libraries that write
// directly to file descriptor 2, so it does not corrupt the terminal UI.
package stderr

import (
	"bufio"
	"io"
	"strings"
)

const bufferSize = 100

// forward sends the non-empty lines of r to out and closes out at EOF.
// Lines are dropped while out is full.
func forward(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case out <- line:
		default:
		}
	}
}
