package domain

import (
	"strings"
	"time"
)

// CacheKey — ключ записи кэша: (проект, нормализованная команда, fingerprint).
// Путь проекта в ключ не входит: перенесённый проект с тем же содержимым
// попадает в кэш.
type CacheKey struct {
	Project     string      `json:"project"`
	Command     string      `json:"command"`
	Fingerprint Fingerprint `json:"fingerprint"`
}

// NewCacheKey строит ключ, нормализуя команду.
func NewCacheKey(project, command string, fp Fingerprint) CacheKey {
	return CacheKey{
		Project:     project,
		Command:     NormalizeCommand(command),
		Fingerprint: fp,
	}
}

// String возвращает ключ в виде project/command/fingerprint.
func (k CacheKey) String() string {
	return k.Project + "/" + k.Command + "/" + string(k.Fingerprint)
}

// NormalizeCommand заменяет пробелы на "-".
//
// Команды, отличающиеся только расстановкой пробелов и дефисов,
// получают одинаковый ключ. Это принятое упрощение.
func NormalizeCommand(command string) string {
	return strings.ReplaceAll(command, " ", "-")
}

// CacheEntry — сохранённый результат команды.
type CacheEntry struct {
	CacheKey

	// Result — stdout команды (или пустая строка для skip/not found).
	Result string `json:"result"`

	// CreatedAt — время записи.
	CreatedAt time.Time `json:"created_at"`
}
