// Command console runs a staff or customer console against the configured
// store and logs every view refresh.  It is the headless counterpart of the
// two front ends and is handy for watching the reconciliation loop.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/menuq/internal/config"
	"github.com/iliyamo/menuq/internal/database"
	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/reconcile"
	"github.com/iliyamo/menuq/internal/service"
	"github.com/iliyamo/menuq/internal/utils"
)

func main() {
	mode := flag.String("mode", "staff", "staff or customer")
	table := flag.String("table", "", "table id (customer mode)")
	flag.Parse()

	cfg, err := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Environment: cfg.Env})
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := database.OpenStore(ctx, cfg)
	if err != nil {
		log.Error("store unavailable", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	svc := service.New(st, service.Options{
		QR:     utils.NewQRSigner(cfg.QRSecret, cfg.QRBaseURL),
		Logger: log,
	})

	switch *mode {
	case "staff":
		runStaff(ctx, svc, cfg, log)
	case "customer":
		id, err := model.ParseTableID(*table)
		if err != nil {
			log.Error("customer mode needs -table", "error", err)
			os.Exit(2)
		}
		runCustomer(ctx, svc, id, cfg, log)
	default:
		log.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
}

func runStaff(ctx context.Context, svc *service.Service, cfg config.Config, log *slog.Logger) {
	var c *reconcile.StaffConsole
	c = reconcile.NewStaffConsole(svc, reconcile.Options{
		Unit:   cfg.TickUnit,
		Logger: log,
		OnUpdate: func(u reconcile.Update) {
			board := c.Board()
			booked, ready := 0, 0
			for _, t := range board {
				if t.IsBooked() {
					booked++
				}
				if t.IsReadyForBill() {
					ready++
				}
			}
			log.Info("staff view", "update", u, "tables", len(board), "booked", booked,
				"ready_for_bill", ready, "orders", len(c.Orders()))
		},
	})
	c.Start(ctx)
	<-ctx.Done()
	c.Stop()
}

func runCustomer(ctx context.Context, svc *service.Service, id model.TableID, cfg config.Config, log *slog.Logger) {
	var c *reconcile.CustomerConsole
	c = reconcile.NewCustomerConsole(svc, id, reconcile.Options{
		Unit:   cfg.TickUnit,
		Logger: log,
		OnUpdate: func(u reconcile.Update) {
			attrs := []any{"update", u, "table", id}
			for _, o := range c.Orders() {
				attrs = append(attrs, "order_"+o.ID, o.Message)
			}
			if b, ok := c.Bill(); ok {
				attrs = append(attrs, "bill_total", b.TotalCents)
			}
			log.Info("customer view", attrs...)
		},
	})
	c.Start(ctx)
	<-ctx.Done()
	c.Stop()
}
