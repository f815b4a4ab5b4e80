// Package scheduler запускает pipeline по расписанию.
//
// Scheduler работает в режиме serve: по cron-выражению вычисляет
// следующее время запуска, ждёт его и выполняет pipeline через
// Orchestrator. Ошибки одного запуска не останавливают цикл.
package scheduler
