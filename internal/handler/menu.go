package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/service"
)

// ListMenu returns the menu filtered by ?search=, ?category=, ?type= and
// ?available=true.
// GET /v1/menu
func (h *Handler) ListMenu(c echo.Context) error {
	f := service.MenuFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		DietType: c.QueryParam("type"),
	}
	if raw := c.QueryParam("available"); raw != "" {
		only, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "available must be true or false")
		}
		f.AvailableOnly = only
	}
	items, err := h.svc.ListMenu(c.Request().Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddMenuItem creates a menu item.  price is an integer in minor units
// (cents); a fractional value is rejected as invalid JSON for the field.
// POST /v1/menu
func (h *Handler) AddMenuItem(c echo.Context) error {
	var m model.MenuItem
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	created, err := h.svc.AddMenuItem(c.Request().Context(), m)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateMenuItem replaces every field of a menu item.
// PUT /v1/menu/:id
func (h *Handler) UpdateMenuItem(c echo.Context) error {
	var m model.MenuItem
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	m.ID = c.Param("id") // the path wins over any id in the body
	updated, err := h.svc.UpdateMenuItem(c.Request().Context(), m)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// RemoveMenuItem deletes a menu item.
// DELETE /v1/menu/:id
func (h *Handler) RemoveMenuItem(c echo.Context) error {
	if err := h.svc.RemoveMenuItem(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleItemAvailability flips a menu item between available and not.
// POST /v1/menu/:id/toggle
func (h *Handler) ToggleItemAvailability(c echo.Context) error {
	m, err := h.svc.ToggleItemAvailability(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
