package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

// WorkspaceProtocol — версия, которой помечаются зависимости внутри monorepo.
const WorkspaceProtocol = "workspace:*"

// Manifest — интересующая нас часть package.json.
type Manifest struct {
	Name            string            `json:"name"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`

	// Workspaces — glob-шаблоны участников (только в корневом package.json).
	Workspaces []string `json:"workspaces,omitempty"`
}

// ParseManifest разбирает содержимое package.json.
//
// Имя обязательно только для участников workspace,
// поэтому здесь не проверяется (см. ParseMemberManifest).
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestParse, err)
	}
	return &m, nil
}

// ParseMemberManifest разбирает package.json участника workspace.
func ParseMemberManifest(data []byte) (*Manifest, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, ErrManifestNoName
	}
	return m, nil
}

// WorkspaceDependencies возвращает отсортированные имена зависимостей
// (dependencies и devDependencies) с версией "workspace:*",
// исключая собственное имя пакета.
func (m *Manifest) WorkspaceDependencies() []string {
	seen := make(map[string]bool)
	collect := func(deps map[string]string) {
		for name, version := range deps {
			if version == WorkspaceProtocol && name != m.Name {
				seen[name] = true
			}
		}
	}
	collect(m.Dependencies)
	collect(m.DevDependencies)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
