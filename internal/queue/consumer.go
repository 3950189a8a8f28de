package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/menuq/internal/logger"
)

// AuditFile is the name of the file the consumer appends to.
const AuditFile = "tables.log"

// Consumer reads TableEvents and appends one line per event to
// <logDir>/tables.log.
type Consumer struct {
	url    string
	queue  string
	logDir string
	log    *slog.Logger
}

// NewConsumer returns a consumer; call Run to start it.
func NewConsumer(url, queue, logDir string, l *slog.Logger) *Consumer {
	return &Consumer{url: url, queue: queue, logDir: logDir, log: logger.Component(l, "event-consumer")}
}

// Run connects, declares the durable queue and consumes until ctx is
// cancelled.  Dial failures and dropped connections are retried with an
// exponential backoff capped at 30s.  Run returns ctx.Err() on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("dial failed, retrying", "error", err, "backoff", backoff.String())
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("consume loop ended, reconnecting", "error", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("set QoS failed", "error", err)
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.log.Error("handle message failed", "error", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev TableEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.TableID == "" {
		return errors.New("event without type or table")
	}
	if err := os.MkdirAll(c.logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.logDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.logDir, AuditFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// formatLine renders one event as a single human-friendly line.
func formatLine(ev TableEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s | table=%s", ev.OccurredAt, ev.Type, ev.TableID)
	if ev.OrderID != "" {
		fmt.Fprintf(&b, " | order=%s", ev.OrderID)
	}
	if ev.BillID != "" {
		fmt.Fprintf(&b, " | bill=%s", ev.BillID)
	}
	if ev.Items > 0 {
		fmt.Fprintf(&b, " | items=%d", ev.Items)
	}
	if ev.TotalCents > 0 {
		fmt.Fprintf(&b, " | total=%d cents", ev.TotalCents)
	}
	if ev.Partial {
		b.WriteString(" | partial")
	}
	b.WriteByte('\n')
	return b.String()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
