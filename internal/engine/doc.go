// Package engine загружает и валидирует описания pipeline.
//
// Engine отвечает за:
//   - Парсинг PipelineSpec из JSON
//   - Валидацию spec: уникальность имён, обязательные селекторы нод,
//     непустые stages и actions, корректность env-биндингов
//
// Построенный spec неизменяем и передаётся по ссылке в Orchestrator.
// Зависимостей между stages нет: внутри track они строго последовательны,
// поэтому граф зависимостей engine не строит.
package engine
