// Package worker выполняет команду в директории проекта.
//
// # Executor
//
// Интерфейс выполнения:
//
//	type Executor interface {
//	    Run(ctx context.Context, project *domain.Project, command string) (*ExecutionResult, error)
//	}
//
// Реализация по умолчанию — ShellExecutor: `sh -c <command>` с рабочей
// директорией project.Path, stdout захватывается как результат.
//
// # Классификация результата
//
//   - код 0 — успех, результат = stdout
//   - код 254 (SkipExitCode) — проект "неприменим", успех с пустым результатом
//   - "command not found" в выводе — отсутствует инструмент, успех с пустым
//     результатом и предупреждением
//   - любой другой код, ошибка запуска, таймаут — *CommandError
//
// # Ошибки
//
// CommandError фатален для всего run: планировщик прекращает раунды,
// частичные результаты не считаются достоверными. Повторов нет.
// errors.Is различает ErrCommandFailed и ErrCommandTimeout.
package worker
