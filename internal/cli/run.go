package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/Zenith/internal/cache"
	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/orchestrator"
	"github.com/shaiso/Zenith/internal/telemetry"
	"github.com/shaiso/Zenith/internal/worker"
)

// NewRunCmd создаёт команду run.
func NewRunCmd(sessionFn func(*cobra.Command) (*Session, error)) *cobra.Command {
	var command string
	var cacheType string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a command in every project, restoring results from cache when possible",
		Long: `Run executes the command in every workspace project in dependency order.
Projects whose inputs did not change since the last successful run are restored
from cache. A failing command aborts the whole run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFn(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("cache-type") {
				s.Config.CacheType = cacheType
			}
			return runCommand(cmd, s, command)
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "Shell command to run in each project")
	cmd.Flags().StringVar(&cacheType, "cache-type", "local", `Cache variant: "remote" or "local"`)
	cmd.MarkFlagRequired("command")

	return cmd
}

func runCommand(cmd *cobra.Command, s *Session, command string) error {
	ctx := cmd.Context()
	logger := s.Logger
	kind := cache.ParseKind(s.Config.CacheType)

	b := openBackends(ctx, s.Config, kind, logger)
	defer b.Close(logger)

	metrics := telemetry.NewMetrics()

	orch := orchestrator.New(orchestrator.Config{
		Cache: cache.New(cache.Config{
			Type:   s.Config.CacheType,
			Root:   s.Root,
			Remote: b.remote,
			Logger: logger,
		}),
		Executor: worker.NewShellExecutor(worker.ShellConfig{
			Timeout: s.Config.CommandTimeout,
			Logger:  logger,
		}),
		Metrics:     metrics,
		Publisher:   b.publisher,
		RunStore:    b.history,
		Concurrency: s.Config.Concurrency,
		Logger:      logger,
	})

	rep, runErr := orch.Run(ctx, command, domain.NewWorkspace(s.Projects), s.Root)

	if path := s.Config.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn("failed to write metrics", "path", path, "error", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run %q: %w", command, runErr)
	}

	for _, rec := range rep.Records() {
		if rec.Outcome == domain.OutcomeNotFound {
			s.Output.Warn(fmt.Sprintf("%s: command not found, nothing was run", rec.Project))
		}
	}

	if s.Output.JSONMode() {
		return s.Output.JSON(rep.Summary())
	}
	return rep.Render(s.Output.Writer())
}
