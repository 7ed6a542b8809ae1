// Package orchestrator выполняет команду по всем проектам workspace.
//
// Orchestrator отвечает за:
//   - Валидацию графа зависимостей перед первым раундом
//   - Выбор готовых проектов (все зависимости завершены)
//   - Параллельный запуск раунда с ограничением concurrency
//   - Проверку кэша по fingerprint и запуск команды при промахе
//   - Барьер между раундами и обновление workspace
//
// Зависимость всегда завершается в более раннем раунде, чем зависящий от неё проект.
package orchestrator
