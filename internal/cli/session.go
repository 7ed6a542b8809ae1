package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/shaiso/Zenith/internal/config"
	"github.com/shaiso/Zenith/internal/domain"
	"github.com/shaiso/Zenith/internal/telemetry"
	"github.com/shaiso/Zenith/internal/workspace"
)

// Options — глобальные флаги CLI.
type Options struct {
	// ConfigPath — путь к файлу конфигурации (--config).
	ConfigPath string

	// ConfigExplicit — флаг --config задан явно; тогда файл обязателен.
	ConfigExplicit bool

	// Debug — подробный лог и вывод workspace (--debug).
	Debug bool

	// Monorepo — корень monorepo (--monorepo).
	Monorepo string

	// JSON — вывод в JSON (--json).
	JSON bool
}

// Session — всё, что нужно команде после разбора флагов.
type Session struct {
	Root     string
	Config   *config.Config
	Logger   *slog.Logger
	Projects []*domain.Project
	Output   *Output
}

// OpenSession настраивает логгер, читает конфигурацию и находит проекты.
//
// Без явного --config файл zenith.json ищется в корне monorepo.
func OpenSession(opts Options, stdout, stderr io.Writer) (*Session, error) {
	logger := telemetry.SetupLogger(telemetry.LoggerOptions{
		Output: stderr,
		Debug:  opts.Debug,
	})

	root, err := filepath.Abs(opts.Monorepo)
	if err != nil {
		return nil, fmt.Errorf("resolve monorepo path: %w", err)
	}

	configPath := opts.ConfigPath
	if !opts.ConfigExplicit {
		configPath = filepath.Join(root, config.DefaultFile)
	}

	cfg, err := config.Load(configPath, opts.ConfigExplicit)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "path", configPath, "cache_type", cfg.CacheType, "concurrency", cfg.Concurrency)

	projects, err := workspace.Discover(root)
	if err != nil {
		return nil, fmt.Errorf("discover workspace: %w", err)
	}

	if opts.Debug {
		for _, p := range projects {
			logger.Debug("workspace project", "project", p.String(), "path", p.Path)
		}
	}

	return &Session{
		Root:     root,
		Config:   cfg,
		Logger:   logger,
		Projects: projects,
		Output:   NewOutput(opts.JSON, stdout, stderr),
	}, nil
}
