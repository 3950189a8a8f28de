package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/menuq/internal/logger"
)

// Publisher sends TableEvents to a durable queue on the default exchange.
// It dials per publish: events are rare (a handful per sitting) and a
// fresh connection each time needs no reconnect bookkeeping.
type Publisher struct {
	url   string
	queue string
	log   *slog.Logger
}

// defaultDialTimeout bounds connection setup when the publish context has
// no deadline of its own.
const defaultDialTimeout = 3 * time.Second

// NewPublisher returns a publisher for the given broker URL and queue.
func NewPublisher(url, queue string, l *slog.Logger) *Publisher {
	return &Publisher{url: url, queue: queue, log: logger.Component(l, "event-publisher")}
}

// Publish sends ev as a persistent JSON message.  Errors are logged and
// returned so the caller can choose to ignore them.
func (p *Publisher) Publish(ctx context.Context, ev TableEvent) error {
	timeout, err := dialTimeout(ctx)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	// amqp.Dial ignores ctx, so the socket and handshake deadline come from it instead.
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.log.Warn("dial failed", "error", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("channel open failed", "error", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Warn("queue declare failed", "queue", p.queue, "error", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Type),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Warn("publish failed", "type", ev.Type, "table", ev.TableID, "error", err)
		return fmt.Errorf("publish: %w", err)
	}
	p.log.Debug("published", "type", ev.Type, "table", ev.TableID)
	return nil
}

// dialTimeout is the time left before ctx's deadline, or
// defaultDialTimeout without one.  A done ctx yields its error.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDialTimeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}
