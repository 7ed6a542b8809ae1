package domain

import "sort"

// Workspace — изменяемый граф проектов, ещё ожидающих выполнения.
//
// Строится один раз из результата discovery и дальше принадлежит
// только планировщику. Workspace не потокобезопасен: мутации
// (Complete) выполняются только между раундами.
type Workspace struct {
	projects []*Project
	index    map[string]*Project
}

// NewWorkspace создаёт Workspace из списка проектов.
// Проекты копируются, исходный список не изменяется.
func NewWorkspace(projects []*Project) *Workspace {
	w := &Workspace{
		projects: make([]*Project, 0, len(projects)),
		index:    make(map[string]*Project, len(projects)),
	}
	for _, p := range projects {
		clone := p.Clone()
		w.projects = append(w.projects, clone)
		w.index[clone.Name] = clone
	}
	return w
}

// Len возвращает количество оставшихся проектов.
func (w *Workspace) Len() int {
	return len(w.projects)
}

// IsEmpty возвращает true, если все проекты обработаны.
func (w *Workspace) IsEmpty() bool {
	return len(w.projects) == 0
}

// Get возвращает проект по имени или nil.
func (w *Workspace) Get(name string) *Project {
	return w.index[name]
}

// Projects возвращает оставшиеся проекты (копии).
func (w *Workspace) Projects() []*Project {
	out := make([]*Project, len(w.projects))
	for i, p := range w.projects {
		out[i] = p.Clone()
	}
	return out
}

// Names возвращает отсортированные имена оставшихся проектов.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.projects))
	for _, p := range w.projects {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Ready возвращает копии проектов, все зависимости которых удовлетворены.
// Порядок совпадает с порядком проектов в workspace.
func (w *Workspace) Ready() []*Project {
	ready := make([]*Project, 0)
	for _, p := range w.projects {
		if p.IsReady() {
			ready = append(ready, p.Clone())
		}
	}
	return ready
}

// Complete удаляет проект из workspace и помечает его
// как удовлетворённую зависимость во всех оставшихся проектах.
func (w *Workspace) Complete(name string) error {
	if _, ok := w.index[name]; !ok {
		return ErrProjectNotFound
	}

	remaining := w.projects[:0]
	for _, p := range w.projects {
		if p.Name == name {
			continue
		}
		p.MarkSatisfied(name)
		remaining = append(remaining, p)
	}
	// Обнуляем хвост, чтобы не держать ссылку на удалённый проект
	for i := len(remaining); i < len(w.projects); i++ {
		w.projects[i] = nil
	}
	w.projects = remaining
	delete(w.index, name)

	return nil
}

// Clone возвращает независимую копию workspace.
func (w *Workspace) Clone() *Workspace {
	return NewWorkspace(w.projects)
}
