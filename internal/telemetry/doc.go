// Package telemetry обеспечивает наблюдаемость run.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики (кэш, длительности, раунды)
//
// CLI пишет логи в stderr, чтобы итоговая сводка в stdout оставалась
// чистой. Метрики сохраняются в textfile для node_exporter.
package telemetry
