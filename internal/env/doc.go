// Package env реализует scoped overlay переменных окружения.
//
// Overlay — временный набор биндингов, расширяющий или затеняющий
// окружение процесса на время вложенного блока работы. Overlays образуют
// стек: действующее окружение для action — это ambient-окружение,
// объединённое со всеми overlays в области видимости, причём ближний
// overlay имеет приоритет над дальним для одного и того же ключа.
//
// Пакет никогда не вызывает os.Setenv: действующее окружение вычисляется
// и передаётся каждому action явно, поэтому overlay одного track
// не виден соседним tracks.
package env
