package engine

import (
	"fmt"

	"github.com/shaiso/Zenith/internal/domain"
)

// Validate выполняет полную валидацию проектов workspace.
//
// Проверяет:
// - Наличие проектов
// - Непустые и уникальные имена
// - Отсутствие зависимости на самого себя
// - Что каждая зависимость разрешается в проект workspace
// - Отсутствие циклов (делегируется DAG)
func Validate(projects []*domain.Project) error {
	if len(projects) == 0 {
		return ErrEmptyWorkspace
	}

	names := make(map[string]bool, len(projects))
	for _, p := range projects {
		if err := ValidateProject(p, names); err != nil {
			return err
		}
	}

	if err := validateDependencies(projects, names); err != nil {
		return err
	}

	if _, err := BuildDAG(projects); err != nil {
		return err
	}

	return nil
}

// ValidateProject валидирует один проект.
// names — уже встреченные имена (для проверки уникальности).
func ValidateProject(p *domain.Project, names map[string]bool) error {
	if p == nil || p.Name == "" {
		return NewValidationError("", "name", "project has empty name", ErrEmptyProjectName)
	}

	if names[p.Name] {
		return NewValidationError(p.Name, "name",
			fmt.Sprintf("duplicate project name: %s", p.Name), ErrDuplicateProject)
	}
	names[p.Name] = true

	if _, ok := p.Dependencies[p.Name]; ok {
		return NewValidationError(p.Name, "dependencies",
			"project depends on itself", ErrSelfDependency)
	}

	return nil
}

// validateDependencies проверяет, что все зависимости ссылаются на существующие проекты.
func validateDependencies(projects []*domain.Project, names map[string]bool) error {
	for _, p := range projects {
		for _, dep := range p.DependencyNames() {
			if !names[dep] {
				return NewValidationError(p.Name, "dependencies",
					fmt.Sprintf("depends on unknown project: %s", dep), ErrMissingDependency)
			}
		}
	}
	return nil
}
