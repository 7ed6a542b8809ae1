package domain

import (
	"fmt"
	"sync"
)

// Fingerprint — детерминированный отпечаток
// "содержимое проекта + команда + fingerprints зависимостей".
// Равные fingerprints означают эквивалентный результат.
type Fingerprint string

// String возвращает строковое представление Fingerprint.
func (f Fingerprint) String() string {
	return string(f)
}

// UpstreamTable — fingerprints проектов, завершённых в текущем run.
//
// Чтение — через Snapshot в начале раунда, запись — ровно один раз
// на проект после завершения его единицы работы. Блокировка держится
// только на время копирования/записи, не на время хэширования.
type UpstreamTable struct {
	mu      sync.RWMutex
	entries map[string]Fingerprint
}

// NewUpstreamTable создаёт пустую таблицу.
func NewUpstreamTable() *UpstreamTable {
	return &UpstreamTable{entries: make(map[string]Fingerprint)}
}

// Snapshot возвращает копию таблицы на текущий момент.
func (t *UpstreamTable) Snapshot() map[string]Fingerprint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make(map[string]Fingerprint, len(t.entries))
	for name, fp := range t.entries {
		snapshot[name] = fp
	}
	return snapshot
}

// Record записывает fingerprint проекта. Повторная запись — ошибка.
func (t *UpstreamTable) Record(name string, fp Fingerprint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrFingerprintRecorded, name)
	}
	t.entries[name] = fp
	return nil
}

// Len возвращает количество записей.
func (t *UpstreamTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.entries)
}
