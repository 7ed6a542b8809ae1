// Package cli реализует инструмент командной строки Zenith.
//
// # Команды
//
//	zenith --monorepo PATH run -c "npm test" [--cache-type remote]
//	zenith --monorepo PATH affected [-p web,api] [--dependents]
//
// Глобальные флаги: --config (default: zenith.json в корне monorepo),
// --debug, --json.
//
// # Ключевые компоненты
//
// ## Session
//
// Создаётся после разбора флагов: настраивает slog, читает конфигурацию
// (internal/config) и находит проекты (internal/workspace).
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//
// Данные выводятся в stdout, логи и предупреждения — в stderr.
// Это позволяет использовать pipe: zenith --monorepo . affected --json | jq .
package cli
