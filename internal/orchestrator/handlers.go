package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/mq"
	"github.com/shaiso/Zenith/internal/report"
)

// unit — одна единица работы: проект в конкретном раунде.
type unit struct {
	state    *RunState
	project  *domain.Project
	command  string
	root     string
	upstream map[string]domain.Fingerprint
	round    int
	reporter *report.Reporter
	logger   *slog.Logger
}

// processProject: fingerprint → кэш → (промах) команда → запись в кэш → учёт.
func (o *Orchestrator) processProject(ctx context.Context, u unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fp := o.hasher.Hash(u.project, u.command, u.upstream)
	rec := domain.ExecutionRecord{
		Project:     u.project.Name,
		Command:     u.command,
		Fingerprint: fp,
		Round:       u.round,
	}

	fetchStarted := time.Now()
	result, hit := o.cache.Get(ctx, u.project, u.command, fp, u.root)
	rec.FetchDuration = time.Since(fetchStarted)
	o.metrics.ObserveCacheLookup(string(o.cache.Kind()), hit)

	if hit {
		rec.Result = result
		rec.Outcome = domain.OutcomeCached
		u.logger.Debug("cache hit", "fingerprint", fp)
	} else {
		u.logger.Debug("cache miss, executing", "fingerprint", fp)

		res, err := o.executor.Run(ctx, u.project, u.command)
		if err != nil {
			return err
		}
		rec.Result = res.Output
		rec.Outcome = res.Outcome
		rec.RunDuration = res.Duration

		cacheStarted := time.Now()
		o.cache.Put(ctx, u.project, u.command, fp, res.Output)
		rec.CacheDuration = time.Since(cacheStarted)
	}
	rec.FinishedAt = time.Now()

	if err := u.state.Upstream.Record(u.project.Name, fp); err != nil {
		return fmt.Errorf("record fingerprint: %w", err)
	}

	u.reporter.Add(rec)
	o.metrics.ObserveRecord(&rec)
	o.recordExecution(ctx, u, &rec)

	u.logger.Info("project completed",
		"outcome", rec.Outcome,
		"run_duration", rec.RunDuration,
	)

	return nil
}

// recordExecution сохраняет запись в историю и публикует project.completed.
// Ошибки только логируются.
func (o *Orchestrator) recordExecution(ctx context.Context, u unit, rec *domain.ExecutionRecord) {
	runID := u.state.Run.ID

	if u.state.history != nil {
		if err := u.state.history.AddExecution(ctx, runID, rec); err != nil {
			u.logger.Warn("failed to record execution", "error", err)
		}
	}

	if o.publisher != nil {
		err := o.publisher.PublishProjectCompleted(ctx, mq.ProjectCompletedPayload{
			RunID:       runID,
			Project:     rec.Project,
			Command:     rec.Command,
			Fingerprint: rec.Fingerprint.String(),
			Outcome:     rec.Outcome.String(),
			Round:       rec.Round,
			FetchMs:     rec.FetchDuration.Milliseconds(),
			RunMs:       rec.RunDuration.Milliseconds(),
			CacheMs:     rec.CacheDuration.Milliseconds(),
		})
		if err != nil {
			u.logger.Warn("failed to publish project.completed", "error", err)
		}
	}
}
