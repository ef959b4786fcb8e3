package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// ErrNotFound is returned when Command.Binary cannot be resolved.
var ErrNotFound = errors.New("process: binary not found")

// Run executes cmd and waits for it. When ctx is done the whole process
// group gets SIGTERM, then SIGKILL after the grace period.
//
// A non-nil Result is returned whenever the binary was resolved, even on
// failure, so callers can read stderr.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}
	path, err := exec.LookPath(cmd.Binary)
	if err != nil {
		return &Result{ExitCode: -1}, fmt.Errorf("%w: %s", ErrNotFound, cmd.Binary)
	}

	c := exec.CommandContext(ctx, path, cmd.Args...) //nolint:gosec // running configured tools is the point
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stdin = cmd.Stdin

	var stdout bytes.Buffer
	stderr := &tailBuffer{max: cmd.maxStderr()}
	c.Stdout = &stdout
	c.Stderr = stderr

	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.gracePeriod()

	start := time.Now()
	err = c.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("process: %s killed by context: %w", cmd.Binary, ctx.Err())
		}
		return result, fmt.Errorf("process: %s exit code %d: %w", cmd.Binary, result.ExitCode, err)
	}
	return result, nil
}

// mergeEnv returns nil (inherit) when there is nothing to add.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	buf       []byte
	max       int
	truncated bool
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) >= t.max {
		t.buf = append(t.buf[:0], p[len(p)-t.max:]...)
		t.truncated = true
		return n, nil
	}
	if over := len(t.buf) + len(p) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
		t.truncated = true
	}
	t.buf = append(t.buf, p...)
	return n, nil
}

// Bytes returns the kept tail. A cut first line is dropped so the result
// starts at a line boundary.
func (t *tailBuffer) Bytes() []byte {
	if !t.truncated {
		return t.buf
	}
	if i := bytes.IndexByte(t.buf, '\n'); i >= 0 {
		return t.buf[i+1:]
	}
	return t.buf
}
