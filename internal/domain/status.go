package domain

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED
//	          (или) → CANCELLED (Ctrl-C)
type RunStatus string

const (
	// RunStatusPending — run создан, но ещё не начал выполняться.
	RunStatusPending RunStatus = "PENDING"

	// RunStatusRunning — идут раунды.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — все проекты обработаны.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — фатальная ошибка (команда упала, deadlock).
	RunStatusFailed RunStatus = "FAILED"

	// RunStatusCancelled — run прерван сигналом.
	RunStatusCancelled RunStatus = "CANCELLED"
)

// IsTerminal возвращает true, если статус финальный (run завершён).
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// Outcome — как завершилась единица работы над проектом.
type Outcome string

const (
	// OutcomeExecuted — команда выполнена, результат записан в кэш.
	OutcomeExecuted Outcome = "EXECUTED"

	// OutcomeCached — результат взят из кэша, команда не запускалась.
	OutcomeCached Outcome = "CACHED"

	// OutcomeSkipped — команда вернула skip-код, результат пустой.
	OutcomeSkipped Outcome = "SKIPPED"

	// OutcomeNotFound — в выводе найден маркер "command not found".
	OutcomeNotFound Outcome = "NOT_FOUND"
)

// String возвращает строковое представление Outcome.
func (o Outcome) String() string {
	return string(o)
}
