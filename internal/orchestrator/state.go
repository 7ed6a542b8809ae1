package orchestrator

import (
	"fmt"
	"strings"

	"github.com/shaiso/Zenith/internal/domain"
)

// RunState — состояние одного run в памяти.
//
// Workspace изменяется только из горутины Run между раундами,
// Upstream пишется параллельно из единиц работы текущего раунда.
type RunState struct {
	// Run — метаданные run (ID, статус, количество раундов).
	Run *domain.Run

	// Workspace — проекты, ещё ожидающие выполнения.
	Workspace *domain.Workspace

	// Upstream — fingerprints завершённых проектов.
	Upstream *domain.UpstreamTable

	// history — история runs; nil, если не ведётся.
	history RunStore
}

// NewRunState создаёт RunState.
func NewRunState(run *domain.Run, ws *domain.Workspace) *RunState {
	return &RunState{
		Run:       run,
		Workspace: ws,
		Upstream:  domain.NewUpstreamTable(),
	}
}

// NextRound возвращает проекты следующего раунда.
//
// Пустой workspace даёт пустой раунд без ошибки. Если проекты остались,
// но ни один не готов, возвращается ErrDeadlock с именами застрявших проектов.
func (s *RunState) NextRound() ([]*domain.Project, error) {
	if s.Workspace.IsEmpty() {
		return nil, nil
	}

	ready := s.Workspace.Ready()
	if len(ready) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeadlock, describeStuck(s.Workspace))
	}

	s.Run.Rounds++
	return ready, nil
}

// CompleteRound удаляет проекты раунда из workspace.
// Вызывается только после барьера.
func (s *RunState) CompleteRound(projects []*domain.Project) error {
	for _, p := range projects {
		if err := s.Workspace.Complete(p.Name); err != nil {
			return fmt.Errorf("complete %s: %w", p.Name, err)
		}
	}
	return nil
}

// describeStuck перечисляет застрявшие проекты и их незавершённые зависимости.
func describeStuck(ws *domain.Workspace) string {
	parts := make([]string, 0, ws.Len())
	for _, name := range ws.Names() {
		p := ws.Get(name)
		parts = append(parts, fmt.Sprintf("%s (waiting on %s)", name, strings.Join(p.PendingDependencies(), ", ")))
	}
	return strings.Join(parts, "; ")
}
