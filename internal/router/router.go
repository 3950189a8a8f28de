package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/menuq/internal/config"
	"github.com/iliyamo/menuq/internal/handler"
	"github.com/iliyamo/menuq/internal/middleware"
)

// Deps are the optional infrastructure pieces the routes use.  A nil
// Redis client turns caching and rate limiting into no-ops.
type Deps struct {
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// RegisterRoutes mounts the health check and the /v1 API.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, d Deps) {
	e.GET("/healthz", handler.Health)

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis)
	v1 := e.Group("/v1")
	registerTables(v1, h, limit)
	registerOrders(v1, h, limit)
	registerMenu(v1, h, d, limit)
	v1.GET("/qr/:token", h.ResolveQR)
}

// registerTables mounts the table lifecycle: staff add, free, bill and
// remove tables; customers signal done and read their bill.
func registerTables(g *echo.Group, h *handler.Handler, limit echo.MiddlewareFunc) {
	g.GET("/tables", h.ListTables)
	g.POST("/tables", h.AddTable, limit)
	g.GET("/tables/:id", h.GetTable)
	g.DELETE("/tables/:id", h.RemoveTable, limit)
	g.POST("/tables/:id/free", h.FreeTable, limit)
	g.POST("/tables/:id/bill", h.GenerateBill, limit)
	g.GET("/tables/:id/bill", h.GetBill)
	g.GET("/tables/:id/orders", h.ListTableOrders)
	g.POST("/tables/:id/orders", h.SubmitOrder, limit)
	g.POST("/tables/:id/done", h.SignalDone, limit)
	g.GET("/done-signals", h.ListDoneSignals)
}

// registerOrders mounts the kitchen-side status transitions.
func registerOrders(g *echo.Group, h *handler.Handler, limit echo.MiddlewareFunc) {
	g.GET("/orders", h.ListOrders)
	g.POST("/orders/:id/advance", h.AdvanceOrderStatus, limit)
	g.POST("/orders/:id/items/:itemId/advance", h.AdvanceItemStatus, limit)
}

// registerMenu mounts the menu.  Reads are served from the Redis cache;
// every successful write purges it.
func registerMenu(g *echo.Group, h *handler.Handler, d Deps, limit echo.MiddlewareFunc) {
	cache := middleware.NewRedisCache(d.Cache, d.Redis)
	purge := middleware.NewCachePurger(d.Cache, d.Redis)

	g.GET("/menu", h.ListMenu, cache)
	g.POST("/menu", h.AddMenuItem, limit, purge)
	g.PUT("/menu/:id", h.UpdateMenuItem, limit, purge)
	g.DELETE("/menu/:id", h.RemoveMenuItem, limit, purge)
	g.POST("/menu/:id/toggle", h.ToggleItemAvailability, limit, purge)
}
