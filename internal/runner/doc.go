// Package runner выполняет отдельные actions — вызовы внешних команд.
//
// Action непрозрачен: runner запускает программу с аргументами в заданном
// окружении и интерпретирует только exit status. Ненулевой exit status —
// это ActionError; retry на этом уровне нет, падение action немедленно
// прерывает вмещающий stage.
//
// Таймауты, если нужны, задаются через ctx вызывающей стороной.
package runner
