// Package config загружает настройки Zenith.
//
// Порядок приоритета (последний побеждает):
//
//	значения по умолчанию → файл конфигурации → переменные окружения → флаги CLI
//
// Файл читается через yaml.v3, поэтому zenith.json может быть как JSON, так и YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile — имя файла конфигурации по умолчанию.
const DefaultFile = "zenith.json"

// Переменные окружения.
const (
	EnvCacheType   = "ZENITH_CACHE_TYPE"
	EnvConcurrency = "ZENITH_CONCURRENCY"
	EnvDBURL       = "DB_URL"
	EnvRabbitMQURL = "RABBITMQ_URL"
)

// Ошибки конфигурации.
var (
	ErrConfigRead    = errors.New("read config file")
	ErrConfigParse   = errors.New("parse config file")
	ErrInvalidConfig = errors.New("invalid config")
)

// Config — настройки run.
type Config struct {
	// CacheType — "remote" выбирает PostgreSQL, всё остальное — локальный диск.
	CacheType string `yaml:"cache_type"`

	// Concurrency — лимит одновременных проектов в раунде (0 — по числу CPU).
	Concurrency int `yaml:"concurrency"`

	// CommandTimeout — таймаут одной команды (0 — без ограничения).
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// DBURL — PostgreSQL для remote кэша и истории runs.
	DBURL string `yaml:"db_url"`

	// RabbitMQURL — брокер для событий run. Пусто — события не публикуются.
	RabbitMQURL string `yaml:"rabbitmq_url"`

	// MetricsFile — куда записать метрики Prometheus после run.
	MetricsFile string `yaml:"metrics_file"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		CacheType: "local",
	}
}

// Load собирает конфигурацию из файла и окружения.
//
// Если required=false, отсутствие файла не ошибка.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path, required); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w %s: %w", ErrConfigParse, path, err)
	}
	return nil
}

// ApplyEnv перекрывает значения переменными окружения.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvCacheType); v != "" {
		c.CacheType = v
	}
	if v := getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvConcurrency, v)
		}
		c.Concurrency = n
	}
	if v := getenv(EnvDBURL); v != "" {
		c.DBURL = v
	}
	if v := getenv(EnvRabbitMQURL); v != "" {
		c.RabbitMQURL = v
	}
	return nil
}

// Validate проверяет значения.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("%w: command_timeout must not be negative, got %s", ErrInvalidConfig, c.CommandTimeout)
	}
	return nil
}
