package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeRuns Exchange = "conveyor.runs"
)

// Queues — имена очередей.
const (
	QueueRunsCompleted   Queue = "runs.completed"
	QueueTracksCompleted Queue = "tracks.completed"
)

// Routing keys.
const (
	RoutingKeyRunStarted     RoutingKey = "run.started"
	RoutingKeyRunCompleted   RoutingKey = "run.completed"
	RoutingKeyTrackCompleted RoutingKey = "track.completed"
)

// SetupTopology создаёт обменники, очереди и привязки.
//
// Очереди объявляются durable: потребители (дашборды, нотификации)
// могут подключаться позже pipeline-процесса.
func SetupTopology(conn *Connection) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeRuns), // name
			"topic",              // type
			true,                 // durable
			false,                // auto-deleted
			false,                // internal
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeRuns, err)
		}

		queues := []struct {
			name       Queue
			routingKey RoutingKey
		}{
			// runs.completed получает и run.started, и run.completed
			{QueueRunsCompleted, "run.*"},
			{QueueTracksCompleted, RoutingKeyTrackCompleted},
		}

		for _, q := range queues {
			_, err := ch.QueueDeclare(
				string(q.name), // name
				true,           // durable
				false,          // delete when unused
				false,          // exclusive
				false,          // no-wait
				nil,            // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", q.name, err)
			}

			err = ch.QueueBind(
				string(q.name),       // queue name
				string(q.routingKey), // routing key
				string(ExchangeRuns), // exchange
				false,                // no-wait
				nil,                  // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s: %w", q.name, err)
			}
		}

		return nil
	})
}
