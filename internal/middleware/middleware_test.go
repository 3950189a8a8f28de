package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/menuq/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "application/json" || string(body) != `{"items":[]}` {
		t.Fatalf("decode = %d %v %q %v", status, gotHdr, body, ok)
	}
	if _, _, _, ok := decodePayload(bs[:5]); ok {
		t.Fatal("short payload decoded")
	}
}

func newContext(method, target string, path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, newContext(http.MethodGet, "/v1/menu?type=veg", "/v1/menu"))
	b := cacheKeyFrom(cfg, newContext(http.MethodGet, "/v1/menu?type=non-veg", "/v1/menu"))
	if a == b {
		t.Fatal("different queries share a key")
	}
	if !strings.HasPrefix(a, "p:") {
		t.Fatalf("key %q lacks prefix", a)
	}
	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, newContext(http.MethodGet, "/v1/menu?type=veg", "/v1/menu")) !=
		cacheKeyFrom(cfg, newContext(http.MethodGet, "/v1/menu?type=non-veg", "/v1/menu")) {
		t.Fatal("route strategy must ignore the query")
	}
}

func TestBuildRateKey(t *testing.T) {
	c := newContext(http.MethodPost, "/v1/tables/5/orders", "/v1/tables/:id/orders")
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	if got := buildRateKey(cfg, c); got != "rl:ip:10.0.0.7:route:POST /v1/tables/:id/orders" {
		t.Fatalf("key = %q", got)
	}
	c.Request().Header.Set(HeaderConsoleID, "table-5")
	cfg.KeyStrategy = "console"
	if got := buildRateKey(cfg, c); got != "rl:console:table-5" {
		t.Fatalf("key = %q", got)
	}
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
	called := 0
	h := func(c echo.Context) error { called++; return c.NoContent(http.StatusNoContent) }
	c := newContext(http.MethodGet, "/v1/menu", "/v1/menu")
	mws := []echo.MiddlewareFunc{
		NewRedisCache(config.CacheConfig{Enabled: true, TTL: time.Second}, nil),
		NewCachePurger(config.CacheConfig{Enabled: true}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
	}
	for _, mw := range mws {
		if err := mw(h)(c); err != nil {
			t.Fatal(err)
		}
	}
	if called != len(mws) {
		t.Fatalf("handler called %d times, want %d", called, len(mws))
	}
}
