// Package hasher вычисляет fingerprint проекта — ключ кэша.
//
// Fingerprint = SHA-256 от:
//  1. имени проекта
//  2. fingerprints зависимостей (в порядке имён), уже записанных в таблицу
//  3. текста команды
//  4. содержимого всех обычных файлов директории проекта (рекурсивно,
//     в порядке os.ReadDir), кроме IgnoredEntries
//
// Результат кодируется в base64. Ошибки чтения файлов и директорий
// пропускаются: неполный хэш даёт лишь промах кэша.
package hasher

import (
	"crypto/sha256"
	"encoding/base64"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/shaiso/Zenith/internal/domain"
)

// CacheDirName — директория локального кэша в корне monorepo.
const CacheDirName = ".zenith_cache"

// IgnoredEntries — имена файлов и директорий, не участвующих в хэше.
var IgnoredEntries = map[string]bool{
	".git":         true,
	"node_modules": true,
	CacheDirName:   true,
}

// Hasher вычисляет fingerprints.
type Hasher struct {
	ignored map[string]bool
}

// New создаёт Hasher. Дополнительные имена добавляются к IgnoredEntries.
func New(extraIgnored ...string) *Hasher {
	ignored := make(map[string]bool, len(IgnoredEntries)+len(extraIgnored))
	for name := range IgnoredEntries {
		ignored[name] = true
	}
	for _, name := range extraIgnored {
		ignored[name] = true
	}
	return &Hasher{ignored: ignored}
}

// Hash вычисляет fingerprint проекта для команды.
//
// upstream — снимок UpstreamTable на начало раунда. Зависимости,
// которых нет в upstream, ничего не добавляют: планировщик гарантирует,
// что к моменту готовности проекта все его зависимости уже записаны.
func (h *Hasher) Hash(project *domain.Project, command string, upstream map[string]domain.Fingerprint) domain.Fingerprint {
	digest := sha256.New()
	digest.Write([]byte(project.Name))

	for _, dep := range project.DependencyNames() {
		if fp, ok := upstream[dep]; ok {
			digest.Write([]byte(fp))
		}
	}

	digest.Write([]byte(command))

	h.hashDir(project.Path, digest)

	return domain.Fingerprint(base64.StdEncoding.EncodeToString(digest.Sum(nil)))
}

// hashDir рекурсивно добавляет в digest содержимое файлов директории.
func (h *Hasher) hashDir(dir string, digest hash.Hash) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if h.ignored[entry.Name()] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.Type().IsRegular():
			hashFile(path, digest)
		case entry.IsDir():
			h.hashDir(path, digest)
		}
		// Симлинки, сокеты и прочее пропускаем
	}
}

// hashFile добавляет в digest байты файла. Ошибки игнорируются.
func hashFile(path string, digest hash.Hash) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = io.Copy(digest, f)
}
