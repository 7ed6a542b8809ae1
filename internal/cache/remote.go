package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/repo"
)

const defaultRemoteTimeout = 5 * time.Second

// RemoteBackend — сетевое хранилище записей.
//
// Реализация: repo.CacheRepo. Get возвращает repo.ErrNotFound при промахе.
type RemoteBackend interface {
	Get(ctx context.Context, key domain.CacheKey) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}

// Remote — кэш поверх RemoteBackend.
type Remote struct {
	backend RemoteBackend
	timeout time.Duration
	logger  *slog.Logger
}

// NewRemote создаёт удалённый кэш.
func NewRemote(backend RemoteBackend, timeout time.Duration, logger *slog.Logger) *Remote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Remote{backend: backend, timeout: timeout, logger: logger}
}

// Kind реализует Store.
func (r *Remote) Kind() Kind {
	return KindRemote
}

// Get реализует Store. Любая ошибка транспорта — промах.
func (r *Remote) Get(ctx context.Context, project *domain.Project, command string, fp domain.Fingerprint, _ string) (string, bool) {
	key := domain.NewCacheKey(project.Name, command, fp)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	entry, err := r.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			r.logger.Warn("remote cache lookup failed", "key", key.String(), "error", err)
		}
		return "", false
	}
	if entry == nil {
		return "", false
	}

	return entry.Result, true
}

// Put реализует Store.
func (r *Remote) Put(ctx context.Context, project *domain.Project, command string, fp domain.Fingerprint, result string) {
	entry := &domain.CacheEntry{
		CacheKey:  domain.NewCacheKey(project.Name, command, fp),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.backend.Put(ctx, entry); err != nil {
		r.logger.Warn("remote cache write failed", "key", entry.CacheKey.String(), "error", err)
	}
}

// missBackend — хранилище, которое ничего не хранит.
type missBackend struct{}

func (missBackend) Get(context.Context, domain.CacheKey) (*domain.CacheEntry, error) {
	return nil, repo.ErrNotFound
}

func (missBackend) Put(context.Context, *domain.CacheEntry) error {
	return nil
}
