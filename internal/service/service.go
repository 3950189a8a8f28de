// Package service implements the table, order and bill operations shared
// by the staff and customer consoles.  Both consoles are thin callers:
// every rule of the reconciliation protocol (the order gate, done-signal
// idempotence, bill aggregation, table cleanup) is enforced here, on top
// of a store that has no logic of its own.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/queue"
	"github.com/iliyamo/menuq/internal/repository"
	"github.com/iliyamo/menuq/internal/store"
	"github.com/iliyamo/menuq/internal/utils"
)

// Publisher receives table lifecycle events after successful writes.
// *queue.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, ev queue.TableEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, queue.TableEvent) error { return nil }

// Options configures a Service.  Zero values pick working defaults.
type Options struct {
	QR        *utils.QRSigner
	Publisher Publisher
	Logger    *slog.Logger
	// AddTableAttempts bounds the retries of AddTable when a concurrent
	// add takes the same id.
	AddTableAttempts int
	// PublishTimeout bounds each event publish.
	PublishTimeout time.Duration
	// NewID generates order, bill and menu item ids.  Defaults to UUIDv7,
	// which sorts by creation time.
	NewID func() (string, error)
}

// Service is safe for concurrent use; it holds no mutable state of its own.
type Service struct {
	tables *repository.TableRepo
	ids    *repository.TableIDRepo
	menu   *repository.MenuRepo
	orders *repository.OrderRepo
	bills  *repository.BillRepo
	done   *repository.DoneSignalRepo

	qr             *utils.QRSigner
	pub            Publisher
	log            *slog.Logger
	addAttempts    int
	publishTimeout time.Duration
	newID          func() (string, error)
}

// New builds a Service over s.
func New(s store.Store, opts Options) *Service {
	svc := &Service{
		tables:         repository.NewTableRepo(s),
		ids:            repository.NewTableIDRepo(s),
		menu:           repository.NewMenuRepo(s),
		orders:         repository.NewOrderRepo(s),
		bills:          repository.NewBillRepo(s),
		done:           repository.NewDoneSignalRepo(s),
		qr:             opts.QR,
		pub:            opts.Publisher,
		log:            logger.Component(opts.Logger, "service"),
		addAttempts:    opts.AddTableAttempts,
		publishTimeout: opts.PublishTimeout,
		newID:          opts.NewID,
	}
	if svc.qr == nil {
		svc.qr = utils.NewQRSigner("dev-qr-secret", "http://localhost:3000")
	}
	if svc.pub == nil {
		svc.pub = nopPublisher{}
	}
	if svc.addAttempts <= 0 {
		svc.addAttempts = 5
	}
	if svc.publishTimeout <= 0 {
		svc.publishTimeout = 3 * time.Second
	}
	if svc.newID == nil {
		svc.newID = newUUIDv7
	}
	return svc
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// publish sends ev with its own timeout, detached from the request
// context so a client disconnect does not drop the audit record.  Failures
// are logged only.
func (s *Service) publish(ev queue.TableEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
	defer cancel()
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Warn("event not published", "type", ev.Type, "table", ev.TableID, "error", err)
	}
}
