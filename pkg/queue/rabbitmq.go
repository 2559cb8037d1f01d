package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lick-scroll-monetization/pkg/config"
	"lick-scroll-monetization/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MonetizationExchange  = "monetization"
	NotificationQueueName = "notification_monetization_queue"
)

// Client publishes monetization events for the notification service.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		MonetizationExchange, // name
		"topic",              // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// purchase.*, subscription.*, tip.*, payout.*
	err = channel.QueueBind(NotificationQueueName, "#", MonetizationExchange, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Publish sends one persistent JSON message routed by event name.
func (c *Client) Publish(ctx context.Context, event string, payload map[string]interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"type":        event,
		"payload":     payload,
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(ctx,
		MonetizationExchange, // exchange
		event,                // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published %s to exchange=%s", event, MonetizationExchange)
	return nil
}
