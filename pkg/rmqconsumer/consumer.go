// Package rmqconsumer reads the person event stream and writes each event to
// the audit log.
package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"person-manager-api/config"
	"person-manager-api/internal/infrastructure/mq"
)

const (
	preFetchCount = 16
	consumerTag   = "person-audit"
)

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger) *Consumer {
	return &Consumer{
		cfg: cfg,
		log: logger.Named("audit"),
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

// Init declares the shared topology and starts consuming with manual acks.
func (c *Consumer) Init() error {
	if err := mq.DeclareTopology(c.chConsume, c.cfg); err != nil {
		return err
	}
	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(c.cfg.QueueName, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")
	defer c.log.Info("delivery worker gracefully stopped")

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			c.handle(msg)
		case <-ctx.Done():
			_ = c.chConsume.Cancel(consumerTag, false)
			_ = c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// handle acks logged events. Undecodable messages are rejected without
// requeue so a poison message cannot loop.
func (c *Consumer) handle(msg amqp091.Delivery) {
	if err := c.delivery(msg); err != nil {
		c.log.Error("mq read message error", zap.Error(err))
		if err = msg.Nack(false, false); err != nil {
			c.log.Error("nack", zap.Error(err), zap.String("message_id", msg.MessageId))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.log.Error("ack", zap.Error(err), zap.String("message_id", msg.MessageId))
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var e mq.Event
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode event %q: %w", msg.MessageId, err)
	}

	fields := []zap.Field{
		zap.String("action", mq.Action(msg.RoutingKey)),
		zap.String("event_id", e.Id.String()),
		zap.Uint64("person_id", e.PersonID),
		zap.Time("ts", e.TS),
	}
	if username, ok := e.Payload["username"].(string); ok {
		fields = append(fields, zap.String("username", username))
	}
	if msg.Redelivered {
		fields = append(fields, zap.Bool("redelivered", true))
	}
	c.log.Info("person event", append(fields, zap.Any("payload", e.Payload))...)

	return nil
}
