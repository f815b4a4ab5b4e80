// Package cli содержит команды conveyor: run, validate, serve.
//
// Команды собирают orchestrator со всеми зависимостями. PostgreSQL и
// RabbitMQ опциональны: при недоступности pipeline выполняется без
// истории и событий.
package cli
