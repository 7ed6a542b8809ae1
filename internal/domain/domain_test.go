package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestNewProject_DropsSelfAndEmpty(t *testing.T) {
	p := NewProject("web", "/r/web", "web", "", "ui", "ui")

	if len(p.Dependencies) != 1 {
		t.Fatalf("expected only ui, got %v", p.DependencyNames())
	}
	if p.Dependencies["ui"] {
		t.Error("dependency should start unsatisfied")
	}
	if p.IsReady() {
		t.Error("project with pending dependency should not be ready")
	}

	p.MarkSatisfied("ui")
	p.MarkSatisfied("unknown")
	if !p.IsReady() {
		t.Error("project should be ready after its dependency is satisfied")
	}
	if _, ok := p.Dependencies["unknown"]; ok {
		t.Error("MarkSatisfied should not add new dependencies")
	}
}

func TestWorkspace_ReadyAndComplete(t *testing.T) {
	input := []*Project{
		NewProject("app", "", "ui", "api"),
		NewProject("ui", "", "core"),
		NewProject("api", "", "core"),
		NewProject("core", ""),
	}
	ws := NewWorkspace(input)

	ready := ws.Ready()
	if len(ready) != 1 || ready[0].Name != "core" {
		t.Fatalf("expected only core to be ready, got %v", ready)
	}

	if err := ws.Complete("core"); err != nil {
		t.Fatalf("complete core: %v", err)
	}
	ready = ws.Ready()
	if len(ready) != 2 || ready[0].Name != "ui" || ready[1].Name != "api" {
		t.Fatalf("expected ui and api in workspace order, got %v", ready)
	}

	// Ready возвращает копии
	ready[0].Dependencies["core"] = false
	if !ws.Get("ui").IsReady() {
		t.Error("mutating Ready result should not affect workspace")
	}

	for _, name := range []string{"ui", "api", "app"} {
		if err := ws.Complete(name); err != nil {
			t.Fatalf("complete %s: %v", name, err)
		}
	}
	if !ws.IsEmpty() {
		t.Errorf("workspace should be empty, left %v", ws.Names())
	}

	if input[0].IsReady() {
		t.Error("NewWorkspace should not mutate input projects")
	}
}

func TestWorkspace_CompleteUnknown(t *testing.T) {
	ws := NewWorkspace([]*Project{NewProject("a", "")})

	if err := ws.Complete("b"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
	if ws.Len() != 1 {
		t.Error("workspace should be unchanged")
	}
}

func TestUpstreamTable_WriteOnce(t *testing.T) {
	table := NewUpstreamTable()

	if err := table.Record("a", "fp-a"); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := table.Record("a", "fp-other"); !errors.Is(err, ErrFingerprintRecorded) {
		t.Errorf("expected ErrFingerprintRecorded, got %v", err)
	}

	fp, ok := table.Snapshot()["a"]
	if !ok || fp != "fp-a" {
		t.Errorf("first value should win, got %q", fp)
	}
}

func TestUpstreamTable_SnapshotIsolated(t *testing.T) {
	table := NewUpstreamTable()
	table.Record("a", "fp-a")

	snapshot := table.Snapshot()
	table.Record("b", "fp-b")
	snapshot["c"] = "fp-c"

	if len(snapshot) != 2 {
		t.Errorf("snapshot should not see later writes, got %v", snapshot)
	}
	if _, ok := table.Snapshot()["c"]; ok {
		t.Error("writes to snapshot should not reach the table")
	}
}

func TestUpstreamTable_ConcurrentRecord(t *testing.T) {
	table := NewUpstreamTable()

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Record(name, Fingerprint("fp-"+name))
			table.Snapshot()
		}()
	}
	wg.Wait()

	if table.Len() != 6 {
		t.Errorf("expected 6 entries, got %d", table.Len())
	}
}

func TestNormalizeCommand(t *testing.T) {
	key := NewCacheKey("web", "npm run build", "fp")

	if key.Command != "npm-run-build" {
		t.Errorf("unexpected normalized command: %q", key.Command)
	}
	if key.String() != "web/npm-run-build/fp" {
		t.Errorf("unexpected key: %s", key)
	}
}

func TestRun_Lifecycle(t *testing.T) {
	run := NewRun("npm test", "local", "/repo")
	if run.Status != RunStatusPending || run.IsFinished() {
		t.Fatalf("new run should be pending, got %s", run.Status)
	}

	run.MarkRunning()
	if run.StartedAt == nil || run.Status != RunStatusRunning {
		t.Error("run should be running with start time")
	}

	run.MarkFailed("boom")
	if !run.IsFinished() || run.Error != "boom" || run.FinishedAt == nil {
		t.Errorf("unexpected failed run: %+v", run)
	}
	if run.Duration() < 0 {
		t.Error("duration should not be negative")
	}
}

func TestExecutionRecord(t *testing.T) {
	rec := ExecutionRecord{Outcome: OutcomeCached, FetchDuration: 2, RunDuration: 3, CacheDuration: 5}
	if !rec.CacheHit() {
		t.Error("cached outcome should be a hit")
	}
	if rec.Total() != 10 {
		t.Errorf("expected total 10, got %d", rec.Total())
	}

	rec.Outcome = OutcomeSkipped
	if rec.CacheHit() {
		t.Error("skipped outcome is not a hit")
	}
}

func TestExecutionRecord_MapValue(t *testing.T) {
	records := map[string]ExecutionRecord{
		"a": {Outcome: OutcomeCached, FetchDuration: 4},
	}

	if !records["a"].CacheHit() {
		t.Error("cached outcome should be a hit")
	}
	if records["a"].Total() != 4 {
		t.Errorf("expected total 4, got %d", records["a"].Total())
	}
}

func TestWorkspace_Clone(t *testing.T) {
	ws := NewWorkspace([]*Project{NewProject("a", ""), NewProject("b", "", "a")})
	clone := ws.Clone()

	if err := ws.Complete("a"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if clone.Len() != 2 || clone.Get("b").IsReady() {
		t.Error("clone should not observe changes to the original")
	}
}
