package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"movie-favorites/pkg/utils"
)

// Publisher owns the AMQP connection and channel. A nil *Publisher is
// valid and drops every event, so callers never need to branch on
// whether messaging is configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     *zap.Logger
}

// NewPublisher connects to RabbitMQ and declares the event queue. An
// empty URL disables publishing and returns a nil publisher without
// error.
func NewPublisher(config utils.RabbitMQConfig, log *zap.Logger) (*Publisher, error) {
	if config.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Idempotent: creates the queue if absent, no-op otherwise
	q, err := channel.QueueDeclare(
		config.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", config.Queue, err)
	}

	log.Info("RabbitMQ publisher ready", zap.String("queue", q.Name))

	return &Publisher{
		conn:    conn,
		channel: channel,
		queue:   q,
		log:     log.With(zap.String("component", "queue_publisher")),
	}, nil
}

// Publish sends one event. Errors are logged and returned so callers
// can ignore them without losing visibility.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)

	if err != nil {
		p.log.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.log.Debug("Event published", zap.String("type", event.Type), zap.String("event_id", event.ID))
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Warn("Error closing RabbitMQ channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.log.Warn("Error closing RabbitMQ connection", zap.Error(err))
		}
	}
}
