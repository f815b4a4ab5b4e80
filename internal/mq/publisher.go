package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Conveyor/internal/domain"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeRunStarted     MessageType = "run.started"
	MessageTypeRunCompleted   MessageType = "run.completed"
	MessageTypeTrackCompleted MessageType = "track.completed"
)

// Publisher публикует события pipeline в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// RunStartedPayload — payload события о начале run.
type RunStartedPayload struct {
	RunID    uuid.UUID `json:"run_id"`
	Pipeline string    `json:"pipeline"`
	Revision string    `json:"revision"`
	Tracks   []string  `json:"tracks"`
}

// TrackCompletedPayload — payload события о завершённом track.
type TrackCompletedPayload struct {
	RunID       uuid.UUID          `json:"run_id"`
	TrackID     uuid.UUID          `json:"track_id"`
	Track       string             `json:"track"`
	Node        string             `json:"node,omitempty"`
	Status      domain.TrackStatus `json:"status"`
	FailedStage string             `json:"failed_stage,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// RunCompletedPayload — payload события о завершённом run.
type RunCompletedPayload struct {
	RunID    uuid.UUID        `json:"run_id"`
	Pipeline string           `json:"pipeline"`
	Revision string           `json:"revision"`
	Status   domain.RunStatus `json:"status"`
	Error    string           `json:"error,omitempty"`
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishRunStarted публикует событие о начале выполнения run.
func (p *Publisher) PublishRunStarted(ctx context.Context, run *domain.Run) error {
	tracks := make([]string, len(run.Tracks))
	for i := range run.Tracks {
		tracks[i] = run.Tracks[i].Name
	}

	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeRunStarted,
		Payload: RunStartedPayload{
			RunID:    run.ID,
			Pipeline: run.Pipeline,
			Revision: run.Revision,
			Tracks:   tracks,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeRuns, RoutingKeyRunStarted, msg)
}

// PublishTrackCompleted публикует событие о завершённом track.
func (p *Publisher) PublishTrackCompleted(ctx context.Context, track *domain.TrackResult) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeTrackCompleted,
		Payload: TrackCompletedPayload{
			RunID:       track.RunID,
			TrackID:     track.ID,
			Track:       track.Name,
			Node:        track.Node,
			Status:      track.Status,
			FailedStage: track.FailedStage(),
			Error:       track.Error,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeRuns, RoutingKeyTrackCompleted, msg)
}

// PublishRunCompleted публикует событие о завершённом run.
func (p *Publisher) PublishRunCompleted(ctx context.Context, run *domain.Run) error {
	msg := &Message{
		ID:   uuid.New().String(),
		Type: MessageTypeRunCompleted,
		Payload: RunCompletedPayload{
			RunID:    run.ID,
			Pipeline: run.Pipeline,
			Revision: run.Revision,
			Status:   run.Status,
			Error:    run.Error,
		},
		Timestamp: time.Now(),
	}

	return p.Publish(ctx, ExchangeRuns, RoutingKeyRunCompleted, msg)
}
