package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения.
type MessageType string

// Типы сообщений.
const (
	MessageTypeProjectCompleted MessageType = "project.completed"
	MessageTypeRunCompleted     MessageType = "run.completed"
)

// Message — конверт события.
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

// ProjectCompletedPayload — проект обработан.
type ProjectCompletedPayload struct {
	RunID       uuid.UUID `json:"run_id"`
	Project     string    `json:"project"`
	Command     string    `json:"command"`
	Fingerprint string    `json:"fingerprint"`
	Outcome     string    `json:"outcome"`
	Round       int       `json:"round"`
	FetchMs     int64     `json:"fetch_ms"`
	RunMs       int64     `json:"run_ms"`
	CacheMs     int64     `json:"cache_ms"`
}

// RunCompletedPayload — run завершён.
type RunCompletedPayload struct {
	RunID    uuid.UUID `json:"run_id"`
	Command  string    `json:"command"`
	Status   string    `json:"status"` // SUCCEEDED, FAILED или CANCELLED
	Rounds   int       `json:"rounds"`
	Projects int       `json:"projects"`
	Hits     int       `json:"hits"`
	Error    string    `json:"error,omitempty"`
}

// Publisher публикует события в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// NewMessage создаёт конверт с новым ID.
func NewMessage(msgType MessageType, payload any) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Publish публикует сообщение с routing key в ExchangeEvents.
func (p *Publisher) Publish(ctx context.Context, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         string(msg.Type),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, routingKey, err)
		}

		p.logger.Debug("published message",
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)

		return nil
	})
}

// PublishProjectCompleted публикует событие об обработанном проекте.
func (p *Publisher) PublishProjectCompleted(ctx context.Context, payload ProjectCompletedPayload) error {
	return p.Publish(ctx, RoutingKeyProjectCompleted, NewMessage(MessageTypeProjectCompleted, payload))
}

// PublishRunCompleted публикует событие о завершении run.
func (p *Publisher) PublishRunCompleted(ctx context.Context, payload RunCompletedPayload) error {
	return p.Publish(ctx, RoutingKeyRunCompleted, NewMessage(MessageTypeRunCompleted, payload))
}
