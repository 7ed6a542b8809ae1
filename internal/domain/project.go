package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Project — участник workspace.
//
// Project неизменяем за исключением флагов Dependencies,
// которые за время run переходят только false → true.
type Project struct {
	// Name — уникальное имя проекта (name из package.json).
	Name string `json:"name"`

	// Path — директория проекта: рабочая директория команды
	// и корень для хэширования содержимого.
	Path string `json:"path"`

	// Dependencies — зависимости внутри workspace (имя → "уже обработана").
	// Никогда не содержит собственное имя проекта.
	Dependencies map[string]bool `json:"dependencies"`
}

// NewProject создаёт проект с неудовлетворёнными зависимостями.
// Собственное имя и дубликаты в deps игнорируются.
func NewProject(name, path string, deps ...string) *Project {
	p := &Project{
		Name:         name,
		Path:         path,
		Dependencies: make(map[string]bool, len(deps)),
	}
	for _, dep := range deps {
		if dep == "" || dep == name {
			continue
		}
		p.Dependencies[dep] = false
	}
	return p
}

// Clone возвращает глубокую копию проекта.
func (p *Project) Clone() *Project {
	deps := make(map[string]bool, len(p.Dependencies))
	for name, done := range p.Dependencies {
		deps[name] = done
	}
	return &Project{
		Name:         p.Name,
		Path:         p.Path,
		Dependencies: deps,
	}
}

// IsReady возвращает true, если все зависимости удовлетворены.
// Проект без зависимостей готов сразу.
func (p *Project) IsReady() bool {
	for _, done := range p.Dependencies {
		if !done {
			return false
		}
	}
	return true
}

// MarkSatisfied помечает зависимость dep как обработанную.
// Если такой зависимости нет, ничего не делает.
func (p *Project) MarkSatisfied(dep string) {
	if _, ok := p.Dependencies[dep]; ok {
		p.Dependencies[dep] = true
	}
}

// DependencyNames возвращает имена зависимостей в отсортированном порядке.
func (p *Project) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PendingDependencies возвращает отсортированные имена ещё не обработанных зависимостей.
func (p *Project) PendingDependencies() []string {
	pending := make([]string, 0)
	for _, name := range p.DependencyNames() {
		if !p.Dependencies[name] {
			pending = append(pending, name)
		}
	}
	return pending
}

// String реализует fmt.Stringer.
func (p *Project) String() string {
	parts := make([]string, 0, len(p.Dependencies))
	for _, name := range p.DependencyNames() {
		parts = append(parts, fmt.Sprintf("%s:%t", name, p.Dependencies[name]))
	}
	return fmt.Sprintf("%s -> {%s}", p.Name, strings.Join(parts, ", "))
}
