package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListTables returns every table with its derived occupancy.
// GET /v1/tables
func (h *Handler) ListTables(c echo.Context) error {
	board, err := h.svc.Board(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": board})
}

// AddTable creates the next table.
// POST /v1/tables
func (h *Handler) AddTable(c echo.Context) error {
	t, err := h.svc.AddTable(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// RemoveTable deletes a table record.
// DELETE /v1/tables/:id
func (h *Handler) RemoveTable(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.svc.RemoveTable(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTable returns one table with its occupancy.
// GET /v1/tables/:id
func (h *Handler) GetTable(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	st, err := h.svc.GetOccupancy(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// FreeTable clears the sitting.  The response is 200 even when some step
// failed; "partial" tells the console to retry.
// POST /v1/tables/:id/free
func (h *Handler) FreeTable(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	res := h.svc.FreeTable(c.Request().Context(), id)
	return c.JSON(http.StatusOK, echo.Map{"result": res, "partial": res.Partial()})
}

// SignalDone marks the table ready for its bill: 201 the first time,
// 200 when it was already signalled.
// POST /v1/tables/:id/done
func (h *Handler) SignalDone(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	created, err := h.svc.SignalDone(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, echo.Map{"tableId": id, "created": created})
}

// ListDoneSignals returns the tables waiting for their bill.
// GET /v1/done-signals
func (h *Handler) ListDoneSignals(c echo.Context) error {
	signals, err := h.svc.ListDoneSignals(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": signals})
}

// GenerateBill (re)builds the bill of a table.
// POST /v1/tables/:id/bill
func (h *Handler) GenerateBill(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	bill, err := h.svc.GenerateBill(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, bill)
}

// GetBill returns the current bill, 404 while none exists.
// GET /v1/tables/:id/bill
func (h *Handler) GetBill(c echo.Context) error {
	id, err := tableParam(c)
	if err != nil {
		return h.fail(c, err)
	}
	bill, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, bill)
}

// ResolveQR turns a scanned QR token into its table.
// GET /v1/qr/:token
func (h *Handler) ResolveQR(c echo.Context) error {
	t, err := h.svc.ResolveQR(c.Request().Context(), c.Param("token"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}
