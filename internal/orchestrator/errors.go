package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrEmptyCommand — не указана команда.
	ErrEmptyCommand = errors.New("command is empty")

	// ErrInvalidWorkspace — граф проектов не прошёл валидацию.
	ErrInvalidWorkspace = errors.New("invalid workspace")

	// ErrDeadlock — в workspace остались проекты, но ни один не готов.
	ErrDeadlock = errors.New("no runnable projects left, dependency graph is stuck")
)
