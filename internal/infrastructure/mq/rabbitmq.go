package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"person-manager-api/config"
)

const (
	bufferSize   = 128
	flushTimeout = 3 * time.Second
)

// RabbitMQ publishes person events. Publish only enqueues; PublisherWorker
// owns the channel and does the network I/O.
type RabbitMQ struct {
	cfg   config.MQ
	log   *zap.Logger
	conn  *amqp091.Connection
	pubCh *amqp091.Channel
	in    chan Event
	send  func(ctx context.Context, e Event) error
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	r := &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
	r.send = r.publish
	return r
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	conn, err := amqp091.DialConfig(dsn, amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": r.cfg.ConnectionName,
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully", zap.String("exchange", r.cfg.Exchange))

	return nil
}

func (r *RabbitMQ) Init() error {
	if err := DeclareTopology(r.pubCh, r.cfg); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	return nil
}

// Publish queues the event for the publisher worker. A full buffer drops the
// event instead of stalling the request that produced it.
func (r *RabbitMQ) Publish(e Event) {
	select {
	case r.in <- e:
	default:
		r.log.Warn("mq buffer full, event dropped",
			zap.String("event_id", e.Id.String()),
			zap.String("method", e.Method),
			zap.Uint64("person_id", e.PersonID),
		)
	}
}

// PublisherWorker sends queued events until ctx is done, then flushes what
// is still buffered within flushTimeout.
func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")
	defer r.log.Info("publisher worker gracefully stopped")

	for {
		select {
		case e := <-r.in:
			r.sendLogged(ctx, e)
		case <-ctx.Done():
			r.flush()
			if r.pubCh != nil {
				_ = r.pubCh.Close()
			}
			return
		}
	}
}

func (r *RabbitMQ) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.in:
			r.sendLogged(ctx, e)
		default:
			return
		}
	}
}

func (r *RabbitMQ) sendLogged(ctx context.Context, e Event) {
	if err := r.send(ctx, e); err != nil {
		r.log.Error("mq publish error",
			zap.Error(err),
			zap.String("event_id", e.Id.String()),
			zap.Uint64("person_id", e.PersonID),
		)
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	return r.pubCh.PublishWithContext(ctx, r.cfg.Exchange, e.Method, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         Action(e.Method),
		AppId:        r.cfg.ConnectionName,
		Headers:      e.headers(),
		Body:         body,
	})
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }

// Discard is the publisher used when RabbitMQ is disabled.
type Discard struct{}

func (Discard) Publish(Event) {}
