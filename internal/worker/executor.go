package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
)

// SkipExitCode — код выхода, которым проект сообщает "неприменимо".
// Считается успехом с пустым результатом.
const SkipExitCode = 254

// NotFoundMarker — признак отсутствующего инструмента в выводе команды.
const NotFoundMarker = "command not found"

// waitDelay — сколько ждать закрытия stdout/stderr после отмены команды.
const waitDelay = 2 * time.Second

// Executor — выполнение команды в директории проекта.
type Executor interface {
	Run(ctx context.Context, project *domain.Project, command string) (*ExecutionResult, error)
}

// ExecutionResult — результат выполнения команды.
type ExecutionResult struct {
	// Output — stdout при успехе, пустая строка для skip/not found.
	Output string

	// Outcome — OutcomeExecuted, OutcomeSkipped или OutcomeNotFound.
	Outcome domain.Outcome

	// Duration — время выполнения процесса.
	Duration time.Duration
}

// ShellConfig — конфигурация ShellExecutor.
type ShellConfig struct {
	// Shell — интерпретатор (default: "sh").
	Shell string

	// Timeout — таймаут одной команды (0 — без ограничения).
	Timeout time.Duration

	// Logger
	Logger *slog.Logger
}

// ShellExecutor запускает команду через `sh -c` в project.Path.
//
// Повторов нет: неожиданный код выхода фатален для всего run.
type ShellExecutor struct {
	shell   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewShellExecutor создаёт ShellExecutor.
func NewShellExecutor(cfg ShellConfig) *ShellExecutor {
	shell := cfg.Shell
	if shell == "" {
		shell = "sh"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ShellExecutor{
		shell:   shell,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Run выполняет команду и классифицирует результат:
//   - код 0 → успех, Output = stdout
//   - SkipExitCode → успех с пустым Output
//   - NotFoundMarker в выводе → успех с пустым Output и предупреждением
//   - иначе → *CommandError
func (e *ShellExecutor) Run(ctx context.Context, project *domain.Project, command string) (*ExecutionResult, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Dir = project.Path
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Дочерние процессы shell могут держать pipe после kill
	cmd.WaitDelay = waitDelay

	started := time.Now()
	runErr := cmd.Run()
	duration := time.Since(started)

	if runErr == nil {
		return &ExecutionResult{
			Output:   stdout.String(),
			Outcome:  domain.OutcomeExecuted,
			Duration: duration,
		}, nil
	}

	cmdErr := &CommandError{
		Project:  project.Name,
		Dir:      project.Path,
		Command:  command,
		ExitCode: -1,
		Output:   stdout.String(),
		Stderr:   stderr.String(),
		Kind:     ErrCommandFailed,
		Err:      runErr,
	}

	// Таймаут или отмена важнее кода выхода убитого процесса
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			cmdErr.Kind = ErrCommandTimeout
		}
		cmdErr.Err = ctxErr
		return nil, cmdErr
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// Процесс не запустился
		return nil, cmdErr
	}
	cmdErr.ExitCode = exitErr.ExitCode()

	if cmdErr.ExitCode == SkipExitCode {
		e.logger.Debug("command skipped", "project", project.Name, "command", command)
		return &ExecutionResult{Outcome: domain.OutcomeSkipped, Duration: duration}, nil
	}

	if strings.Contains(cmdErr.Output, NotFoundMarker) || strings.Contains(cmdErr.Stderr, NotFoundMarker) {
		e.logger.Warn("command not found, treating as no-op",
			"project", project.Name,
			"command", command,
		)
		return &ExecutionResult{Outcome: domain.OutcomeNotFound, Duration: duration}, nil
	}

	return nil, cmdErr
}
