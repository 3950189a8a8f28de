// Package handler exposes the staff and customer operations over HTTP.
// Handlers only parse input, call the service and translate its sentinel
// errors into status codes; no protocol rule lives here.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/service"
)

// Handler bundles the service used by every endpoint.
type Handler struct {
	svc *service.Service
	log *slog.Logger
}

// New constructs a Handler and panics if svc is nil.
func New(svc *service.Service, l *slog.Logger) *Handler {
	if svc == nil {
		panic("nil service passed to handler.New")
	}
	return &Handler{svc: svc, log: logger.Component(l, "handler")}
}

// statusOf maps the service error taxonomy onto HTTP.
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrPreconditionFailed),
		errors.Is(err, model.ErrItemUnavailable),
		errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrNoOrdersForTable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes {"error": ...}.  Internal errors are logged and their text
// is not leaked to the client.
func (h *Handler) fail(c echo.Context, err error) error {
	code := statusOf(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "status", code, "error", err)
		if code == http.StatusServiceUnavailable {
			msg = "store unavailable"
		} else {
			msg = "internal error"
		}
	}
	return c.JSON(code, echo.Map{"error": msg})
}

// tableParam parses the :id path parameter as a table id.
func tableParam(c echo.Context) (model.TableID, error) {
	return model.ParseTableID(c.Param("id"))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
