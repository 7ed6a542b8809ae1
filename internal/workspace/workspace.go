// Package workspace находит проекты monorepo по package.json.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/engine"
)

// ManifestFile — имя манифеста проекта.
const ManifestFile = "package.json"

// Ошибки discovery.
var (
	// ErrRootManifest — корневой package.json не найден или не разобран.
	ErrRootManifest = errors.New("read root manifest")

	// ErrMemberManifest — package.json участника не найден или не разобран.
	ErrMemberManifest = errors.New("read member manifest")

	// ErrBadPattern — некорректный glob в поле workspaces.
	ErrBadPattern = errors.New("bad workspace pattern")
)

// Discover читает <root>/package.json, раскрывает каждый glob из
// workspaces относительно root и собирает проекты-участники.
//
// Зависимостями считаются записи dependencies и devDependencies с версией
// "workspace:*". Проекты возвращаются отсортированными по имени.
func Discover(root string) ([]*domain.Project, error) {
	rootManifest, err := readManifest(filepath.Join(root, ManifestFile), engine.ParseManifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootManifest, err)
	}

	seen := make(map[string]bool)
	projects := make([]*domain.Project, 0)

	for _, pattern := range rootManifest.Workspaces {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPattern, pattern, err)
		}

		for _, dir := range matches {
			if seen[dir] {
				continue
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			seen[dir] = true

			m, err := readManifest(filepath.Join(dir, ManifestFile), engine.ParseMemberManifest)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrMemberManifest, dir, err)
			}

			projects = append(projects, domain.NewProject(m.Name, dir, m.WorkspaceDependencies()...))
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})

	return projects, nil
}

func readManifest(path string, parse func([]byte) (*engine.Manifest, error)) (*engine.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}
