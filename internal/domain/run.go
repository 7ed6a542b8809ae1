package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run — один запуск команды по всему workspace.
//
// Run живёт ровно один вызов процесса: создаётся при старте
// `zenith run`, завершается вместе с последним раундом.
type Run struct {
	// ID — уникальный идентификатор run (для логов и событий).
	ID uuid.UUID `json:"id"`

	// Command — shell-команда, выполняемая в каждом проекте.
	Command string `json:"command"`

	// CacheType — выбранный вариант кэша ("local" или "remote").
	CacheType string `json:"cache_type"`

	// Root — корень monorepo.
	Root string `json:"root"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Rounds — количество выполненных раундов.
	Rounds int `json:"rounds"`

	// StartedAt — время начала выполнения (когда статус стал RUNNING).
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения (успешного или с ошибкой).
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Error — текст ошибки, если run завершился с FAILED.
	Error string `json:"error,omitempty"`

	// CreatedAt — время создания run.
	CreatedAt time.Time `json:"created_at"`
}

// NewRun создаёт run в статусе PENDING.
func NewRun(command, cacheType, root string) *Run {
	return &Run{
		ID:        uuid.New(),
		Command:   command,
		CacheType: cacheType,
		Root:      root,
		Status:    RunStatusPending,
		CreatedAt: time.Now(),
	}
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// IsFinished возвращает true, если run завершён (в любом статусе).
func (r *Run) IsFinished() bool {
	return r.Status.IsTerminal()
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkSucceeded переводит run в статус SUCCEEDED.
func (r *Run) MarkSucceeded() {
	now := time.Now()
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
}

// MarkFailed переводит run в статус FAILED с ошибкой.
func (r *Run) MarkFailed(err string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	r.Error = err
}

// MarkCancelled переводит run в статус CANCELLED.
func (r *Run) MarkCancelled() {
	now := time.Now()
	r.Status = RunStatusCancelled
	r.FinishedAt = &now
}
