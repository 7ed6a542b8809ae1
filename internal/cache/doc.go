// Package cache хранит результаты команд по ключу
// (проект, нормализованная команда, fingerprint).
//
// Варианты:
//   - Local  — файлы в <root>/.zenith_cache/<project>/<command>/<fingerprint>
//   - Remote — таблица cache_entries в PostgreSQL (repo.CacheRepo)
//
// Вариант выбирается строкой конфигурации: "remote" → Remote,
// любое другое значение (включая неизвестные) → Local.
//
// Ошибки кэша никогда не фатальны: чтение деградирует до промаха,
// неудачная запись только логируется.
package cache
