// Package orchestrator выполняет pipeline runs.
//
// Orchestrator отвечает за:
//   - Запуск всех tracks параллельно (fork) и ожидание их завершения (join)
//   - Для каждого track: получение worker-ноды, применение env-overlay
//     и строго последовательное выполнение stages
//   - Прерывание track на первом упавшем stage (остальные — SKIPPED)
//   - Агрегацию результата: SUCCEEDED только если все tracks SUCCEEDED
//
// Tracks не разделяют никакого изменяемого состояния: у каждого свой
// ExecutionContext (нода + стек overlays). Единственная точка
// синхронизации между tracks — финальный join. Падение одного track
// не отменяет и не затрагивает соседние; отмена контекста оркестратора
// прерывает все tracks сразу.
//
// Retry на этом уровне нет нигде: упавший action прерывает stage,
// упавший stage — track, упавший track даёт общий результат FAILED.
package orchestrator
