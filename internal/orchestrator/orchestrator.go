package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shaiso/Zenith/internal/cache"
	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/engine"
	"github.com/shaiso/Zenith/internal/hasher"
	"github.com/shaiso/Zenith/internal/mq"
	"github.com/shaiso/Zenith/internal/report"
	"github.com/shaiso/Zenith/internal/telemetry"
	"github.com/shaiso/Zenith/internal/worker"
)

// Fingerprinter вычисляет ключ кэша проекта.
type Fingerprinter interface {
	Hash(project *domain.Project, command string, upstream map[string]domain.Fingerprint) domain.Fingerprint
}

// EventPublisher публикует события run. Реализуется mq.Publisher.
type EventPublisher interface {
	PublishProjectCompleted(ctx context.Context, payload mq.ProjectCompletedPayload) error
	PublishRunCompleted(ctx context.Context, payload mq.RunCompletedPayload) error
}

// RunStore сохраняет историю runs. Реализуется repo.RunRepo.
type RunStore interface {
	Create(ctx context.Context, run *domain.Run) error
	Update(ctx context.Context, run *domain.Run) error
	AddExecution(ctx context.Context, runID uuid.UUID, rec *domain.ExecutionRecord) error
}

// Orchestrator выполняет команду по раундам графа зависимостей.
//
// Orchestrator — центральный компонент Zenith:
//   - Выбирает проекты, все зависимости которых завершены
//   - Запускает раунд параллельно (не больше concurrency единиц одновременно)
//   - Для каждого проекта считает fingerprint и проверяет кэш
//   - При промахе запускает команду и сохраняет результат
//   - Ждёт весь раунд и только потом обновляет workspace
type Orchestrator struct {
	cache       cache.Store
	executor    worker.Executor
	hasher      Fingerprinter
	metrics     *telemetry.Metrics
	publisher   EventPublisher
	runStore    RunStore
	concurrency int
	logger      *slog.Logger
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Cache — хранилище результатов (обязательно).
	Cache cache.Store

	// Executor — запуск команд (обязательно).
	Executor worker.Executor

	// Hasher — вычисление fingerprint (default: hasher.New()).
	Hasher Fingerprinter

	// Metrics — счётчики Prometheus (опционально).
	Metrics *telemetry.Metrics

	// Publisher — события в RabbitMQ (опционально).
	Publisher EventPublisher

	// RunStore — история runs в PostgreSQL (опционально).
	RunStore RunStore

	// Concurrency — максимум одновременных единиц в раунде (default: runtime.NumCPU()).
	Concurrency int

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) *Orchestrator {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	h := cfg.Hasher
	if h == nil {
		h = hasher.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		cache:       cfg.Cache,
		executor:    cfg.Executor,
		hasher:      h,
		metrics:     cfg.Metrics,
		publisher:   cfg.Publisher,
		runStore:    cfg.RunStore,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Concurrency возвращает лимит параллельных единиц работы.
func (o *Orchestrator) Concurrency() int {
	return o.concurrency
}

// Run выполняет command во всех проектах ws.
//
// root — корень monorepo, в нём живёт локальный кэш. Раунды разбирают
// копию ws, сам ws не меняется. Первая фатальная ошибка отменяет
// текущий раунд и возвращается без частичного результата.
func (o *Orchestrator) Run(ctx context.Context, command string, ws *domain.Workspace, root string) (*report.Reporter, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}

	reporter := report.New()
	if ws == nil || ws.IsEmpty() {
		return reporter, nil
	}

	if err := engine.Validate(ws.Projects()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkspace, err)
	}
	dag, err := engine.BuildDAG(ws.Projects())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkspace, err)
	}

	run := domain.NewRun(command, string(o.cache.Kind()), root)
	state := NewRunState(run, ws.Clone())
	logger := telemetry.WithRunID(o.logger, run.ID.String())
	logger.Debug("planned rounds", "projects", dag.Size(), "rounds", dag.Levels())

	state.history = o.startRun(ctx, run, logger)
	logger.Info("run started",
		"command", command,
		"projects", ws.Len(),
		"cache", o.cache.Kind(),
		"concurrency", o.concurrency,
	)

	err = o.runRounds(ctx, state, reporter, logger)
	o.finishRun(ctx, state, reporter, err, logger)
	if err != nil {
		return nil, err
	}

	return reporter, nil
}

// runRounds крутит раунды, пока workspace не опустеет.
func (o *Orchestrator) runRounds(ctx context.Context, state *RunState, reporter *report.Reporter, logger *slog.Logger) error {
	for {
		projects, err := state.NextRound()
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}

		round := state.Run.Rounds
		o.metrics.ObserveRound(len(projects))
		telemetry.WithRound(logger, round).Debug("round started", "projects", projectNames(projects))

		// Снимок берётся один раз: проекты раунда не зависят друг от друга
		upstream := state.Upstream.Snapshot()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.concurrency)
		for _, p := range projects {
			g.Go(func() error {
				return o.processProject(gctx, unit{
					state:    state,
					project:  p,
					command:  state.Run.Command,
					root:     state.Run.Root,
					upstream: upstream,
					round:    round,
					reporter: reporter,
					logger:   telemetry.WithProject(telemetry.WithRound(logger, round), p.Name),
				})
			})
		}

		// Барьер: workspace меняется только после завершения всего раунда
		if err := g.Wait(); err != nil {
			return err
		}

		if err := state.CompleteRound(projects); err != nil {
			return err
		}
	}
}

// startRun переводит run в RUNNING и сохраняет его в историю.
// Возвращает nil, если история не ведётся для этого run.
func (o *Orchestrator) startRun(ctx context.Context, run *domain.Run, logger *slog.Logger) RunStore {
	run.MarkRunning()
	if o.runStore == nil {
		return nil
	}
	if err := o.runStore.Create(ctx, run); err != nil {
		logger.Warn("failed to record run, history disabled for this run", "error", err)
		return nil
	}
	return o.runStore
}

// finishRun фиксирует итоговый статус run, обновляет историю и публикует событие.
// Выполняется и после отмены ctx.
func (o *Orchestrator) finishRun(ctx context.Context, state *RunState, reporter *report.Reporter, runErr error, logger *slog.Logger) {
	run := state.Run
	switch {
	case runErr == nil:
		run.MarkSucceeded()
	case errors.Is(runErr, context.Canceled):
		run.MarkCancelled()
	default:
		run.MarkFailed(runErr.Error())
	}

	ctx = context.WithoutCancel(ctx)

	if state.history != nil {
		if err := state.history.Update(ctx, run); err != nil {
			logger.Warn("failed to update run history", "error", err)
		}
	}

	summary := reporter.Summary()
	if o.publisher != nil {
		err := o.publisher.PublishRunCompleted(ctx, mq.RunCompletedPayload{
			RunID:    run.ID,
			Command:  run.Command,
			Status:   string(run.Status),
			Rounds:   run.Rounds,
			Projects: summary.Projects,
			Hits:     summary.Hits,
			Error:    run.Error,
		})
		if err != nil {
			logger.Warn("failed to publish run.completed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run failed", "status", run.Status, "rounds", run.Rounds, "error", runErr)
		return
	}

	logger.Info("run finished",
		"rounds", run.Rounds,
		"projects", summary.Projects,
		"hits", summary.Hits,
		"misses", summary.Misses,
		"duration", run.Duration(),
	)
}

func projectNames(projects []*domain.Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}
