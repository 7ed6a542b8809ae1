package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaiso/Zenith/internal/domain"
)

// Metrics — Prometheus метрики одного процесса.
//
// Используется собственный Registry, а не глобальный: CLI живёт
// один run и выгружает метрики в файл через WriteTextfile.
type Metrics struct {
	registry *prometheus.Registry

	projects   *prometheus.CounterVec
	cacheOps   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	rounds     prometheus.Counter
	roundWidth prometheus.Histogram
}

// NewMetrics создаёт и регистрирует метрики.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		projects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zenith_projects_total",
			Help: "Projects processed, by outcome",
		}, []string{"outcome"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zenith_cache_lookups_total",
			Help: "Cache lookups, by cache kind and result (hit/miss)",
		}, []string{"kind", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zenith_phase_duration_seconds",
			Help:    "Duration of unit-of-work phases (fetch, run, cache)",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"phase"}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zenith_rounds_total",
			Help: "Scheduler rounds executed",
		}),
		roundWidth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "zenith_round_projects",
			Help:    "Projects dispatched per round",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}),
	}

	m.registry.MustRegister(m.projects, m.cacheOps, m.durations, m.rounds, m.roundWidth)
	return m
}

// Registry возвращает registry с метриками (для тестов и HTTP-экспорта).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRound учитывает запуск раунда из n проектов.
func (m *Metrics) ObserveRound(n int) {
	if m == nil {
		return
	}
	m.rounds.Inc()
	m.roundWidth.Observe(float64(n))
}

// ObserveCacheLookup учитывает обращение к кэшу.
func (m *Metrics) ObserveCacheLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOps.WithLabelValues(kind, result).Inc()
}

// ObserveRecord учитывает завершённую единицу работы.
func (m *Metrics) ObserveRecord(rec *domain.ExecutionRecord) {
	if m == nil {
		return
	}
	m.projects.WithLabelValues(string(rec.Outcome)).Inc()
	m.durations.WithLabelValues("fetch").Observe(rec.FetchDuration.Seconds())
	if !rec.CacheHit() {
		m.durations.WithLabelValues("run").Observe(rec.RunDuration.Seconds())
		m.durations.WithLabelValues("cache").Observe(rec.CacheDuration.Seconds())
	}
}

// WriteTextfile сохраняет метрики в формате Prometheus text exposition.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
