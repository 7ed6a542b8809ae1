package cli

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Zenith/internal/cache"
	"github.com/shaiso/Zenith/internal/config"
	"github.com/shaiso/Zenith/internal/mq"
	"github.com/shaiso/Zenith/internal/orchestrator"
	"github.com/shaiso/Zenith/internal/repo"
)

// backends — внешние сервисы, подключённые на время run.
//
// Каждый сервис необязателен: если подключиться не удалось,
// run продолжается без него.
type backends struct {
	pool      *pgxpool.Pool
	mqConn    *mq.Connection
	remote    cache.RemoteBackend
	history   orchestrator.RunStore
	publisher orchestrator.EventPublisher
}

// openBackends подключает PostgreSQL (remote кэш, история runs) и RabbitMQ (события).
func openBackends(ctx context.Context, cfg *config.Config, kind cache.Kind, logger *slog.Logger) *backends {
	b := &backends{}

	if kind == cache.KindRemote || cfg.DBURL != "" {
		pool, err := repo.NewPool(ctx, cfg.DBURL)
		if err != nil {
			logger.Warn("database not available", "error", err)
		} else if err := repo.EnsureSchema(ctx, pool); err != nil {
			logger.Warn("failed to prepare database schema", "error", err)
			pool.Close()
		} else {
			logger.Debug("database connected")
			b.pool = pool
			b.remote = repo.NewCacheRepo(pool)
			if cfg.DBURL != "" {
				b.history = repo.NewRunRepo(pool)
			}
		}
	}

	if cfg.RabbitMQURL != "" {
		conn, err := mq.Dial(ctx, cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ not available, events disabled", "error", err)
		} else if err := mq.SetupTopology(ctx, conn); err != nil {
			logger.Warn("failed to setup topology, events disabled", "error", err)
			conn.Close()
		} else {
			logger.Debug("RabbitMQ connected")
			b.mqConn = conn
			b.publisher = mq.NewPublisher(conn, logger)
		}
	}

	return b
}

// Close закрывает открытые соединения.
func (b *backends) Close(logger *slog.Logger) {
	if b.mqConn != nil {
		if err := b.mqConn.Close(); err != nil {
			logger.Warn("failed to close RabbitMQ connection", "error", err)
		}
	}
	if b.pool != nil {
		b.pool.Close()
	}
}
