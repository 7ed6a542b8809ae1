package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
)

func newTestExecutor(timeout time.Duration) *ShellExecutor {
	return NewShellExecutor(ShellConfig{
		Timeout: timeout,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestShellExecutor_Success(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("here"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := domain.NewProject("web", dir)

	result, err := newTestExecutor(0).Run(context.Background(), p, "cat marker.txt && echo ' done'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Output != "here done\n" {
		t.Errorf("expected stdout from project dir, got %q", result.Output)
	}
	if result.Outcome != domain.OutcomeExecuted {
		t.Errorf("expected EXECUTED, got %s", result.Outcome)
	}
}

func TestShellExecutor_Classification(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		wantOutcome domain.Outcome
		wantErr     error
		wantCode    int
	}{
		{
			name:        "skip exit code",
			command:     "echo ignored; exit 254",
			wantOutcome: domain.OutcomeSkipped,
		},
		{
			name:        "command not found on stdout",
			command:     "echo 'tsc: command not found'; exit 3",
			wantOutcome: domain.OutcomeNotFound,
		},
		{
			name:        "command not found on stderr",
			command:     "echo 'eslint: command not found' >&2; exit 127",
			wantOutcome: domain.OutcomeNotFound,
		},
		{
			name:     "failure",
			command:  "echo boom; echo bad >&2; exit 1",
			wantErr:  ErrCommandFailed,
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.NewProject("web", t.TempDir())
			result, err := newTestExecutor(0).Run(context.Background(), p, tt.command)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				var cmdErr *CommandError
				if !errors.As(err, &cmdErr) {
					t.Fatalf("expected CommandError, got %T", err)
				}
				if cmdErr.ExitCode != tt.wantCode {
					t.Errorf("expected exit code %d, got %d", tt.wantCode, cmdErr.ExitCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Outcome != tt.wantOutcome {
				t.Errorf("expected %s, got %s", tt.wantOutcome, result.Outcome)
			}
			if result.Output != "" {
				t.Errorf("expected empty output, got %q", result.Output)
			}
		})
	}
}

func TestShellExecutor_FailureMessage(t *testing.T) {
	p := domain.NewProject("api", t.TempDir())

	_, err := newTestExecutor(0).Run(context.Background(), p, "echo compiling; exit 1")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, want := range []string{"project api", "echo compiling; exit 1", "exit code 1", "compiling"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q should contain %q", msg, want)
		}
	}
}

func TestShellExecutor_SpawnFailure(t *testing.T) {
	p := domain.NewProject("ghost", filepath.Join(t.TempDir(), "missing"))

	_, err := newTestExecutor(0).Run(context.Background(), p, "true")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode != -1 {
		t.Errorf("expected exit code -1 for spawn failure, got %d", cmdErr.ExitCode)
	}
}

func TestShellExecutor_Timeout(t *testing.T) {
	p := domain.NewProject("slow", t.TempDir())

	_, err := newTestExecutor(50*time.Millisecond).Run(context.Background(), p, "sleep 5")
	if !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("expected ErrCommandTimeout, got %v", err)
	}
}

func TestShellExecutor_Cancelled(t *testing.T) {
	p := domain.NewProject("slow", t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExecutor(0).Run(ctx, p, "sleep 5")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
