package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/scribe/process"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		cmd        process.Command
		wantErr    string
		wantExit   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "stdout",
			cmd:        process.Command{Binary: "echo", Args: []string{"hello", "world"}},
			wantStdout: "hello world",
		},
		{
			name:       "stdin",
			cmd:        process.Command{Binary: "cat", Stdin: strings.NewReader("from stdin")},
			wantStdout: "from stdin",
		},
		{
			name:       "env added to parent",
			cmd:        process.Command{Binary: "sh", Args: []string{"-c", "echo $SCRIBE_TEST_VAR"}, Env: []string{"SCRIBE_TEST_VAR=hello123"}},
			wantStdout: "hello123",
		},
		{
			name:       "stderr on success",
			cmd:        process.Command{Binary: "sh", Args: []string{"-c", "echo oops >&2"}},
			wantStderr: "oops",
		},
		{
			name:       "non-zero exit names the binary",
			cmd:        process.Command{Binary: "sh", Args: []string{"-c", "echo bad input >&2; exit 42"}},
			wantErr:    "sh exit code 42",
			wantExit:   42,
			wantStderr: "bad input",
		},
		{
			name:       "stderr keeps whole trailing lines",
			cmd:        process.Command{Binary: "sh", Args: []string{"-c", "for i in 1 2 3 4 5 6 7 8 9; do echo line$i >&2; done"}, MaxStderr: 20},
			wantStderr: "line7\nline8\nline9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := process.Run(context.Background(), tt.cmd)
			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
			if res.ExitCode != tt.wantExit {
				t.Errorf("exit code = %d, want %d", res.ExitCode, tt.wantExit)
			}
			if got := strings.TrimSpace(string(res.Stdout)); got != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", got, tt.wantStdout)
			}
			if got := strings.TrimSpace(string(res.Stderr)); got != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", got, tt.wantStderr)
			}
		})
	}
}

func TestRun_BinaryProblems(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); err == nil {
		t.Error("expected error for empty binary")
	}

	res, err := process.Run(context.Background(), process.Command{Binary: "definitely-not-a-real-binary-xyz"})
	if !errors.Is(err, process.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if res == nil || res.ExitCode != -1 {
		t.Fatalf("expected result with exit code -1, got %+v", res)
	}
}

func TestRun_ContextKillsProcessGroup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// The child sleep shares the process group and must die with its parent.
	res, err := process.Run(ctx, process.Command{
		Binary:      "sh",
		Args:        []string{"-c", "sleep 10 & wait"},
		GracePeriod: 500 * time.Millisecond,
	})
	if err == nil || !strings.Contains(err.Error(), "killed by context") {
		t.Fatalf("expected context kill, got %v", err)
	}
	if res.Duration > 5*time.Second {
		t.Fatalf("kill took %v", res.Duration)
	}
}

func TestRun_MeasuresDuration(t *testing.T) {
	res, err := process.Run(context.Background(), process.Command{Binary: "sleep", Args: []string{"0.1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Duration < 50*time.Millisecond {
		t.Fatalf("duration = %v", res.Duration)
	}
}

func TestStderrTail(t *testing.T) {
	r := &process.Result{Stderr: []byte("one\n\ntwo\n  three  \nfour\n\n")}
	tests := []struct {
		n    int
		want string
	}{
		{2, "three\nfour"},
		{3, "two\nthree\nfour"},
		{10, "one\ntwo\nthree\nfour"},
		{0, ""},
	}
	for _, tt := range tests {
		if got := r.StderrTail(tt.n); got != tt.want {
			t.Errorf("StderrTail(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	var nilResult *process.Result
	if nilResult.StderrTail(3) != "" {
		t.Error("expected empty tail for nil result")
	}
}

func TestTool(t *testing.T) {
	sh := process.NewTool("sh", "sh")
	res, err := sh.Run(context.Background(), process.Command{Args: []string{"-c", "echo ok"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(res.Stdout)) != "ok" {
		t.Fatalf("stdout = %q", res.Stdout)
	}
	if sh.Name() != "sh" || !sh.IsAvailable(context.Background()) {
		t.Fatalf("expected available tool named sh")
	}

	for _, tool := range []*process.Tool{
		process.NewTool("ghost", "definitely-not-a-real-binary-xyz"),
		process.NewTool("unset", ""),
	} {
		if tool.IsAvailable(context.Background()) {
			t.Errorf("%s should be unavailable", tool.Name())
		}
	}
}

func TestTool_Timeout(t *testing.T) {
	slow := process.NewTool("sleep", "sleep",
		process.WithTimeout(100*time.Millisecond),
		process.WithGracePeriod(200*time.Millisecond),
	)
	_, err := slow.Run(context.Background(), process.Command{Args: []string{"10"}})
	if err == nil || !strings.Contains(err.Error(), "killed by context") {
		t.Fatalf("expected context kill, got %v", err)
	}
}

func TestRunnerFunc(t *testing.T) {
	var got string
	var r process.Runner = process.RunnerFunc(func(_ context.Context, cmd process.Command) (*process.Result, error) {
		got = cmd.Binary
		return &process.Result{}, nil
	})
	if _, err := r.Run(context.Background(), process.Command{Binary: "ffprobe"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ffprobe" {
		t.Fatalf("binary = %q", got)
	}
}
