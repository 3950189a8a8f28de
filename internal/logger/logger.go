// Package logger builds the structured slog loggers used by every
// component.  Each component gets its own child logger carrying a
// "component" attribute, so a single stream can be filtered per subsystem.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config selects the handler and level.
type Config struct {
	Level       string    // debug, info, warn, error
	Format      string    // json or text
	Environment string    // attached to every record when set
	Output      io.Writer // defaults to stdout
}

// New returns a logger writing to cfg.Output.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}
	l := slog.New(h)
	if cfg.Environment != "" {
		l = l.With("environment", cfg.Environment)
	}
	return l
}

// Nop returns a logger that drops everything.  Tests and optional
// components use it in place of a nil check.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Component returns a child logger tagged with the component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Nop()
	}
	return l.With("component", name)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RequestLogger is an echo middleware that writes one access record per
// request.  Server errors log at error level, client errors at warn.
func RequestLogger(l *slog.Logger) echo.MiddlewareFunc {
	l = Component(l, "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Round(time.Microsecond).Seconds() * 1000,
				"remote_ip", v.RemoteIP,
			}
			if v.RequestID != "" {
				attrs = append(attrs, "request_id", v.RequestID)
			}
			switch {
			case v.Status >= 500:
				if v.Error != nil {
					attrs = append(attrs, "error", v.Error.Error())
				}
				l.Error("request", attrs...)
			case v.Status >= 400:
				l.Warn("request", attrs...)
			default:
				l.Info("request", attrs...)
			}
			return nil
		},
	})
}
