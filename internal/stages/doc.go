// Package stages содержит конструкторы стандартных stages CI-pipeline
// (checkout, prepare, test, build) и встроенное описание pipeline
// текущего развёртывания: два track — нативная Linux-сборка и
// кросс-компиляция под Windows.
//
// Конструкторы возвращают готовые StageDef с фиксированной
// последовательностью actions; сами команды (git, rustup, cargo)
// для оркестратора непрозрачны.
package stages
