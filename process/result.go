package process

import (
	"slices"
	"strings"
	"time"
)

// Result is what a finished run left behind.
type Result struct {
	Stdout []byte
	// Stderr holds at most Command.MaxStderr trailing bytes.
	Stderr []byte
	// ExitCode is -1 when the process was killed or never started.
	ExitCode int
	Duration time.Duration
}

// StderrTail returns the last n non-blank stderr lines, trimmed, for error
// messages and logs.
func (r *Result) StderrTail(n int) string {
	if r == nil || n <= 0 {
		return ""
	}
	var tail []string
	for _, line := range slices.Backward(strings.Split(string(r.Stderr), "\n")) {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		tail = append(tail, line)
		if len(tail) == n {
			break
		}
	}
	slices.Reverse(tail)
	return strings.Join(tail, "\n")
}
