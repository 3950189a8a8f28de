package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/service"
)

// submitOrderRequest is the body of POST /v1/tables/:id/orders.
type submitOrderRequest struct {
	Items []service.LineRequest `json:"items"`
}

// SubmitOrder places an order for the table in the path.
// POST /v1/tables/:id/orders
func (h *Handler) SubmitOrder(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req submitOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	order, err := h.svc.SubmitOrder(c.Request().Context(), id, req.Items)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListTableOrders returns the orders of the table in the path.
// GET /v1/tables/:id/orders
func (h *Handler) ListTableOrders(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	return h.listOrders(c, id)
}

// ListOrders returns all orders, or one table's with ?tableId=.
// GET /v1/orders
func (h *Handler) ListOrders(c echo.Context) error {
	var id model.TableID
	if raw := strings.TrimSpace(c.QueryParam("tableId")); raw != "" {
		parsed, err := model.ParseTableID(raw)
		if err != nil {
			return h.fail(c, err)
		}
		id = parsed
	}
	return h.listOrders(c, id)
}

func (h *Handler) listOrders(c echo.Context, id model.TableID) error {
	orders, err := h.svc.ListOrders(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": orders})
}

// AdvanceOrderStatus moves an order along its ring; 409 while any item is
// still being prepared.
// POST /v1/orders/:id/advance
func (h *Handler) AdvanceOrderStatus(c echo.Context) error {
	order, err := h.svc.AdvanceOrderStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// AdvanceItemStatus moves one line of an order along its ring.
// POST /v1/orders/:id/items/:itemId/advance
func (h *Handler) AdvanceItemStatus(c echo.Context) error {
	order, err := h.svc.AdvanceItemStatus(c.Request().Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
