// Package amqp publishes ledger events to a RabbitMQ exchange.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends transaction.recorded messages. It implements budget.Publisher.
type Publisher struct {
	conn       *amqp091.Connection
	channel    channel
	exchange   string
	routingKey string
	timeout    time.Duration
	logger     *slog.Logger
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange, routingKey string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, routingKey: routingKey, timeout: 5 * time.Second, logger: logger}, nil
}

// PublishTransaction announces a recorded transaction.
func (p *Publisher) PublishTransaction(ctx context.Context, userID uuid.UUID, txn ledger.Transaction) error {
	body, err := NewTransactionRecorded(userID, txn).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    txn.ID.String(),
			Type:         EventTransactionRecorded,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	p.logger.DebugContext(ctx, "published transaction", "txn_id", txn.ID.String(), "exchange", p.exchange, "routing_key", p.routingKey)
	return nil
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NotifyClose returns a channel that receives the connection's close error.
func (p *Publisher) NotifyClose() <-chan *amqp091.Error {
	return p.conn.NotifyClose(make(chan *amqp091.Error, 1))
}
