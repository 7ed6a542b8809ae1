package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/hasher"
)

// Local — кэш в директории <root>/.zenith_cache.
//
// Каждая запись — JSON-файл domain.CacheEntry по пути
// <project>/<command>/<fingerprint>. Сегменты экранируются,
// поэтому "/" в имени пакета (@scope/pkg) или в base64 не создаёт
// лишних уровней и разные ключи не пересекаются.
type Local struct {
	root   string
	logger *slog.Logger
}

// NewLocal создаёт локальный кэш с корнем root.
func NewLocal(root string, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{root: root, logger: logger}
}

// Kind реализует Store.
func (l *Local) Kind() Kind {
	return KindLocal
}

// Dir возвращает директорию кэша для корня root.
func Dir(root string) string {
	return filepath.Join(root, hasher.CacheDirName)
}

// Get реализует Store. Записи всегда читаются из корня, заданного при
// создании (там же, куда пишет Put); аргумент root не используется.
func (l *Local) Get(_ context.Context, project *domain.Project, command string, fp domain.Fingerprint, _ string) (string, bool) {
	key := domain.NewCacheKey(project.Name, command, fp)
	path := entryPath(l.root, key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("local cache read failed", "key", key.String(), "error", err)
		}
		return "", false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		l.logger.Warn("local cache entry is corrupted", "path", path, "error", err)
		return "", false
	}
	if entry.CacheKey != key {
		l.logger.Warn("local cache entry key mismatch", "path", path, "key", key.String())
		return "", false
	}

	return entry.Result, true
}

// Put реализует Store.
func (l *Local) Put(_ context.Context, project *domain.Project, command string, fp domain.Fingerprint, result string) {
	entry := &domain.CacheEntry{
		CacheKey:  domain.NewCacheKey(project.Name, command, fp),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := l.write(entry); err != nil {
		l.logger.Warn("local cache write failed", "key", entry.CacheKey.String(), "error", err)
	}
}

// write атомарно записывает запись: временный файл + rename.
func (l *Local) write(entry *domain.CacheEntry) error {
	path := entryPath(l.root, entry.CacheKey)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename entry: %w", err)
	}

	return nil
}

// entryPath возвращает путь файла записи для ключа.
func entryPath(root string, key domain.CacheKey) string {
	return filepath.Join(Dir(root),
		escapeSegment(key.Project),
		escapeSegment(key.Command),
		escapeSegment(string(key.Fingerprint)),
	)
}

// escapeSegment превращает произвольную строку в одно безопасное имя файла.
func escapeSegment(s string) string {
	switch s {
	case "":
		return "%00"
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(s)
}
