// Package mq публикует события жизненного цикла pipeline в RabbitMQ.
//
// Conveyor — batch-процесс: он ничего не потребляет из очередей, только
// отдаёт события (run.started, track.completed, run.completed) внешним
// системам — дашбордам, нотификациям, агрегаторам истории сборок.
//
// Publisher опционален: без RabbitMQ pipeline выполняется как обычно,
// события просто не публикуются.
package mq
