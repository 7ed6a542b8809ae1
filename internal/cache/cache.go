package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
)

// Kind — вариант кэша.
type Kind string

const (
	// KindLocal — кэш на локальном диске.
	KindLocal Kind = "local"

	// KindRemote — кэш в сетевом хранилище.
	KindRemote Kind = "remote"
)

// ParseKind выбирает вариант кэша по строке конфигурации.
// Только "remote" выбирает Remote, всё остальное — Local.
func ParseKind(s string) Kind {
	if s == string(KindRemote) {
		return KindRemote
	}
	return KindLocal
}

// Store — хранилище результатов.
type Store interface {
	// Get возвращает сохранённый результат и true при попадании.
	// root — корень monorepo; Local привязан к корню из Config.Root и аргумент не читает.
	Get(ctx context.Context, project *domain.Project, command string, fp domain.Fingerprint, root string) (string, bool)

	// Put сохраняет результат. Ошибки записи не возвращаются.
	Put(ctx context.Context, project *domain.Project, command string, fp domain.Fingerprint, result string)

	// Kind возвращает вариант хранилища.
	Kind() Kind
}

// Config — конфигурация кэша.
type Config struct {
	// Type — строка конфигурации ("remote" или любое другое).
	Type string

	// Root — корень monorepo, под которым лежит локальный кэш.
	Root string

	// Remote — сетевое хранилище для варианта Remote.
	// Если nil, Remote всегда промахивается.
	Remote RemoteBackend

	// Timeout — таймаут одной операции Remote (default: 5s).
	Timeout time.Duration

	// Logger
	Logger *slog.Logger
}

// New создаёт хранилище выбранного варианта.
func New(cfg Config) Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch ParseKind(cfg.Type) {
	case KindRemote:
		backend := cfg.Remote
		if backend == nil {
			logger.Warn("remote cache backend not available, every lookup will miss")
			backend = missBackend{}
		}
		return NewRemote(backend, cfg.Timeout, logger)
	default:
		return NewLocal(cfg.Root, logger)
	}
}
