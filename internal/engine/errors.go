package engine

import "errors"

// Ошибки валидации workspace.
var (
	// ErrEmptyWorkspace — в workspace нет проектов.
	ErrEmptyWorkspace = errors.New("workspace has no projects")

	// ErrEmptyProjectName — проект без имени.
	ErrEmptyProjectName = errors.New("project has empty name")

	// ErrDuplicateProject — несколько проектов с одинаковым именем.
	ErrDuplicateProject = errors.New("duplicate project name")

	// ErrMissingDependency — проект зависит от проекта вне workspace.
	ErrMissingDependency = errors.New("project depends on unknown project")

	// ErrCyclicDependency — обнаружен цикл в зависимостях.
	ErrCyclicDependency = errors.New("cyclic dependency detected")

	// ErrSelfDependency — проект зависит от самого себя.
	ErrSelfDependency = errors.New("project depends on itself")
)

// Ошибки разбора манифестов.
var (
	// ErrManifestParse — package.json не удалось разобрать.
	ErrManifestParse = errors.New("manifest parse failed")

	// ErrManifestNoName — в package.json нет поля name.
	ErrManifestNoName = errors.New("manifest has no name")
)

// ValidationError — ошибка валидации с контекстом.
type ValidationError struct {
	Project string // имя проекта, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.Project != "" {
		return "project " + e.Project + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(project, field, message string, err error) *ValidationError {
	return &ValidationError{
		Project: project,
		Field:   field,
		Message: message,
		Err:     err,
	}
}
