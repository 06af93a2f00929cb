// Package mq consumes payment-workflow events. The only event this service
// cares about is transaction approval: the upstream payment system decides,
// we stamp approved_at.
package mq

import (
	"context"
	"encoding/json"

	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// approvalEvent is the payload on the transactions.approved queue.
type approvalEvent struct {
	Reference string `json:"reference"`
}

type Consumer struct {
	url          string
	queue        string
	transactions repository.TransactionRepository

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg *config.Config, transactions repository.TransactionRepository) *Consumer {
	return &Consumer{
		url:          cfg.AMQP.URL,
		queue:        cfg.AMQP.Queue,
		transactions: transactions,
	}
}

// Start connects and consumes until the channel closes. A blank URL
// disables the consumer entirely.
func (c *Consumer) Start(ctx context.Context) error {
	if c.url == "" {
		log.Warn().Msg("AMQP_URL is not set. Transaction approval consumer is disabled.")
		return nil
	}

	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	c.ch = ch

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	log.Info().Str("queue", c.queue).Msg("Transaction approval consumer started")
	go c.run(ctx, deliveries)
	return nil
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Warn().Msg("Approval delivery channel closed")
				return
			}
			c.handle(d)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	var event approvalEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.Reference == "" {
		log.Warn().Err(err).Msg("Discarding malformed approval event")
		d.Nack(false, false)
		return
	}

	if err := c.transactions.Approve(event.Reference); err != nil {
		if repository.IsNotFound(err) {
			log.Warn().Str("reference", event.Reference).Msg("Approval event for unknown transaction")
			d.Nack(false, false)
			return
		}
		log.Error().Err(err).Str("reference", event.Reference).Msg("Failed to approve transaction")
		d.Nack(false, true)
		return
	}

	log.Info().Str("reference", event.Reference).Msg("Transaction approved")
	d.Ack(false)
}

func (c *Consumer) Close() {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
