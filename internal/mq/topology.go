package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// ExchangeEvents — обменник событий run.
const ExchangeEvents Exchange = "zenith.events"

// Queues — имена очередей.
const (
	QueueProjectsCompleted Queue = "zenith.projects.completed"
	QueueRunsCompleted     Queue = "zenith.runs.completed"
)

// Routing keys.
const (
	RoutingKeyProjectCompleted RoutingKey = "project.completed"
	RoutingKeyRunCompleted     RoutingKey = "run.completed"
)

// binding — привязка очереди к exchange.
type binding struct {
	queue      Queue
	routingKey RoutingKey
}

var bindings = []binding{
	{QueueProjectsCompleted, RoutingKeyProjectCompleted},
	{QueueRunsCompleted, RoutingKeyRunCompleted},
}

// SetupTopology объявляет exchange, очереди и привязки. Операции идемпотентны.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			"topic",                // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}

		for _, b := range bindings {
			if _, err := ch.QueueDeclare(string(b.queue), true, false, false, false, nil); err != nil {
				return fmt.Errorf("declare queue %s: %w", b.queue, err)
			}
			if err := ch.QueueBind(string(b.queue), string(b.routingKey), string(ExchangeEvents), false, nil); err != nil {
				return fmt.Errorf("bind queue %s to %s: %w", b.queue, ExchangeEvents, err)
			}
		}

		return nil
	})
}
