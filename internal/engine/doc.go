// Package engine содержит структурный анализ workspace.
//
// Включает:
//   - parser.go   — разбор package.json (имя, workspace-зависимости, globs)
//   - validate.go — проверка проектов: имена, self/missing зависимости
//   - dag.go      — построение DAG проектов, поиск циклов, уровни (раунды)
//
// Engine не выполняет команды: он отвечает за то, что граф корректен
// и планировщик гарантированно дойдёт до пустого workspace.
package engine
