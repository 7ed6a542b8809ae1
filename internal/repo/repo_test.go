package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shaiso/Zenith/internal/domain"
)

// fakeRow — pgx.Row, отдающий заранее заданные значения.
type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

// fakeDB запоминает запросы и аргументы.
type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	execErr  error
	affected string
	row      *fakeRow
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execSQL = append(db.execSQL, sql)
	db.execArgs = append(db.execArgs, args)
	if db.execErr != nil {
		return pgconn.CommandTag{}, db.execErr
	}
	tag := db.affected
	if tag == "" {
		tag = "INSERT 0 1"
	}
	return pgconn.NewCommandTag(tag), nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return db.row
}

func TestCacheRepo_Get(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	db := &fakeDB{row: &fakeRow{values: []any{"web", "npm-run-build", "fp", "ok", created}}}
	r := NewCacheRepo(db)

	entry, err := r.Get(context.Background(), domain.NewCacheKey("web", "npm run build", "fp"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Result != "ok" {
		t.Errorf("expected result ok, got %q", entry.Result)
	}
	if entry.Fingerprint != "fp" {
		t.Errorf("expected fingerprint fp, got %q", entry.Fingerprint)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, entry.CreatedAt)
	}
}

func TestCacheRepo_GetNotFound(t *testing.T) {
	db := &fakeDB{row: &fakeRow{err: pgx.ErrNoRows}}
	r := NewCacheRepo(db)

	_, err := r.Get(context.Background(), domain.NewCacheKey("web", "build", "fp"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheRepo_Put(t *testing.T) {
	db := &fakeDB{}
	r := NewCacheRepo(db)

	entry := &domain.CacheEntry{
		CacheKey: domain.NewCacheKey("web", "npm run build", "fp"),
		Result:   "done",
	}
	if err := r.Put(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "ON CONFLICT") {
		t.Fatalf("expected a single upsert, got %v", db.execSQL)
	}
	args := db.execArgs[0]
	if args[0] != "web" || args[1] != "npm-run-build" || args[2] != "fp" || args[3] != "done" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestCacheRepo_PutError(t *testing.T) {
	db := &fakeDB{execErr: errors.New("connection refused")}
	r := NewCacheRepo(db)

	err := r.Put(context.Background(), &domain.CacheEntry{CacheKey: domain.NewCacheKey("a", "b", "c")})
	if err == nil || !strings.Contains(err.Error(), "insert cache entry") {
		t.Errorf("expected wrapped insert error, got %v", err)
	}
}

func TestRunRepo_UpdateNotFound(t *testing.T) {
	db := &fakeDB{affected: "UPDATE 0"}
	r := NewRunRepo(db)

	run := domain.NewRun("build", "remote", "/repo")
	if err := r.Update(context.Background(), run); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRunRepo_AddExecution(t *testing.T) {
	db := &fakeDB{}
	r := NewRunRepo(db)
	runID := uuid.New()

	rec := &domain.ExecutionRecord{
		Project:       "web",
		Command:       "build",
		Fingerprint:   "fp",
		Outcome:       domain.OutcomeExecuted,
		Round:         2,
		FetchDuration: 3 * time.Millisecond,
		RunDuration:   1500 * time.Millisecond,
		CacheDuration: 7 * time.Millisecond,
	}
	if err := r.AddExecution(context.Background(), runID, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := db.execArgs[0]
	if args[0] != runID {
		t.Errorf("expected run id %s, got %v", runID, args[0])
	}
	if args[4] != "EXECUTED" {
		t.Errorf("expected outcome EXECUTED, got %v", args[4])
	}
	if args[7] != int64(1500) {
		t.Errorf("expected run_ms 1500, got %v", args[7])
	}
}

func TestEnsureSchema(t *testing.T) {
	db := &fakeDB{}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.execSQL[0], "cache_entries") {
		t.Error("schema should create cache_entries")
	}
}

func TestNullString(t *testing.T) {
	if nullString("") != nil {
		t.Error("empty string should map to NULL")
	}
	if s := nullString("x"); s == nil || *s != "x" {
		t.Error("non-empty string should be kept")
	}
}
