package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/menuq/internal/config"
	"github.com/iliyamo/menuq/internal/database"
	"github.com/iliyamo/menuq/internal/handler"
	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/queue"
	"github.com/iliyamo/menuq/internal/router"
	"github.com/iliyamo/menuq/internal/service"
	"github.com/iliyamo/menuq/internal/utils"
)

func main() {
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

	opts := service.Options{
		QR:     utils.NewQRSigner(cfg.QRSecret, cfg.QRBaseURL),
		Logger: log,
	}
	if cfg.Events.Enabled {
		opts.Publisher = queue.NewPublisher(cfg.Events.URL, cfg.Events.Queue, log)
		if cfg.Events.Consumer {
			c := queue.NewConsumer(cfg.Events.URL, cfg.Events.Queue, cfg.Events.LogDir, log)
			go func() {
				if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("event consumer stopped", "error", err)
				}
			}()
		}
	}
	svc := service.New(st, opts)

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logger.RequestLogger(log))
	router.RegisterRoutes(e, handler.New(svc, log), router.Deps{
		Redis:     rdb,
		Cache:     cfg.Cache,
		RateLimit: cfg.RateLimit,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
	log.Info("stopped")
}
