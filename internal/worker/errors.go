package worker

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки выполнения команд.
var (
	// ErrCommandFailed — команда завершилась неожиданным кодом или не запустилась.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout — выполнение команды превысило таймаут.
	ErrCommandTimeout = errors.New("command timeout")
)

// CommandError — фатальная ошибка команды с контекстом.
type CommandError struct {
	Project  string // имя проекта
	Dir      string // рабочая директория
	Command  string // текст команды
	ExitCode int    // код выхода (-1, если процесс не запустился)
	Output   string // stdout
	Stderr   string // stderr
	Kind     error  // ErrCommandFailed или ErrCommandTimeout
	Err      error  // исходная ошибка exec
}

// Error реализует интерфейс error.
func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "project %s: %v: %s", e.Project, e.Kind, e.Command)
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " (exit code %d)", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		b.WriteString("\n")
		b.WriteString(out)
	}
	if errOut := strings.TrimSpace(e.Stderr); errOut != "" {
		b.WriteString("\n")
		b.WriteString(errOut)
	}
	return b.String()
}

// Unwrap возвращает вид ошибки и исходную ошибку exec.
func (e *CommandError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
