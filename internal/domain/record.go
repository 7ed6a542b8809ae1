package domain

import "time"

// ExecutionRecord — результат одной единицы работы над проектом.
//
// Записи добавляются в порядке завершения, а не в порядке проектов.
type ExecutionRecord struct {
	// Project — имя проекта.
	Project string `json:"project"`

	// Command — исходная команда.
	Command string `json:"command"`

	// Result — вывод команды или значение из кэша.
	Result string `json:"result"`

	// Fingerprint — ключ кэша проекта.
	Fingerprint Fingerprint `json:"fingerprint"`

	// Outcome — как получен результат.
	Outcome Outcome `json:"outcome"`

	// Round — номер раунда (с 1).
	Round int `json:"round"`

	// FetchDuration — время обращения к кэшу на чтение.
	FetchDuration time.Duration `json:"fetch_duration"`

	// RunDuration — время выполнения команды (0 при попадании в кэш).
	RunDuration time.Duration `json:"run_duration"`

	// CacheDuration — время записи в кэш (0 при попадании в кэш).
	CacheDuration time.Duration `json:"cache_duration"`

	// FinishedAt — момент завершения единицы работы.
	FinishedAt time.Time `json:"finished_at"`
}

// CacheHit возвращает true, если результат взят из кэша.
func (r ExecutionRecord) CacheHit() bool {
	return r.Outcome == OutcomeCached
}

// Total возвращает суммарное время единицы работы.
func (r ExecutionRecord) Total() time.Duration {
	return r.FetchDuration + r.RunDuration + r.CacheDuration
}
