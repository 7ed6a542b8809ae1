package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shaiso/Zenith/internal/domain"
)

// CacheRepo — удалённый кэш результатов в таблице cache_entries.
type CacheRepo struct {
	db DB
}

// NewCacheRepo создаёт новый CacheRepo.
func NewCacheRepo(db DB) *CacheRepo {
	return &CacheRepo{db: db}
}

// Get возвращает запись по ключу. ErrNotFound, если записи нет.
func (r *CacheRepo) Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, error) {
	query := `
		SELECT project, command, fingerprint, result, created_at
		FROM cache_entries
		WHERE project = $1 AND command = $2 AND fingerprint = $3
	`
	var entry domain.CacheEntry
	var fingerprint string

	err := r.db.QueryRow(ctx, query, key.Project, key.Command, string(key.Fingerprint)).Scan(
		&entry.Project,
		&entry.Command,
		&fingerprint,
		&entry.Result,
		&entry.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan cache entry: %w", err)
	}
	entry.Fingerprint = domain.Fingerprint(fingerprint)

	return &entry, nil
}

// Put сохраняет запись. Существующая запись с тем же ключом не перезаписывается:
// равные fingerprints означают эквивалентный результат.
func (r *CacheRepo) Put(ctx context.Context, entry *domain.CacheEntry) error {
	query := `
		INSERT INTO cache_entries (project, command, fingerprint, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project, command, fingerprint) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		entry.Project,
		entry.Command,
		string(entry.Fingerprint),
		entry.Result,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}
	return nil
}
