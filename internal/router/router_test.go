package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/menuq/internal/handler"
	"github.com/iliyamo/menuq/internal/logger"
	"github.com/iliyamo/menuq/internal/model"
	"github.com/iliyamo/menuq/internal/repository"
	"github.com/iliyamo/menuq/internal/service"
	"github.com/iliyamo/menuq/internal/store/memory"
	"github.com/iliyamo/menuq/internal/utils"
)

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) (api, *memory.Store) {
	t.Helper()
	st := memory.New()
	svc := service.New(st, service.Options{QR: utils.NewQRSigner("s", "http://host:3000")})
	e := echo.New()
	RegisterRoutes(e, handler.New(svc, logger.Nop()), Deps{})
	return api{t: t, e: e}, st
}

func (a api) do(method, path, body string, out any) int {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

type boardResponse struct {
	Items []struct {
		ID        string `json:"id"`
		Occupancy string `json:"occupancy"`
	} `json:"items"`
}

func (a api) occupancy(id string) string {
	a.t.Helper()
	var b boardResponse
	if code := a.do(http.MethodGet, "/v1/tables", "", &b); code != http.StatusOK {
		a.t.Fatalf("GET /v1/tables = %d", code)
	}
	for _, it := range b.Items {
		if it.ID == id {
			return it.Occupancy
		}
	}
	a.t.Fatalf("table %s not on the board", id)
	return ""
}

func TestTableFiveOverHTTP(t *testing.T) {
	a, st := newAPI(t)
	if _, err := repository.NewMenuRepo(st).Create(context.Background(), model.MenuItem{
		ID: "7", Name: "Soup", PriceCents: 50, DietType: model.DietVeg, Category: model.CategoryStarter, Available: true,
	}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		var tbl model.Table
		if code := a.do(http.MethodPost, "/v1/tables", "", &tbl); code != http.StatusCreated {
			t.Fatalf("add table = %d", code)
		}
		if tbl.ID != model.TableIDFromInt(uint64(i)) {
			t.Fatalf("table id = %s, want %d", tbl.ID, i)
		}
	}
	if got := a.occupancy("5"); got != "free" {
		t.Fatalf("initial occupancy = %s", got)
	}

	var order model.Order
	if code := a.do(http.MethodPost, "/v1/tables/5/orders", `{"items":[{"itemId":"7","quantity":1}]}`, &order); code != http.StatusCreated {
		t.Fatalf("submit = %d", code)
	}
	if got := a.occupancy("5"); got != "booked" {
		t.Fatalf("after order = %s", got)
	}

	var errBody map[string]string
	if code := a.do(http.MethodPost, "/v1/orders/"+order.ID+"/advance", "", &errBody); code != http.StatusConflict {
		t.Fatalf("gated advance = %d, want 409", code)
	}
	if errBody["error"] == "" {
		t.Fatal("409 without an error message")
	}
	if code := a.do(http.MethodPost, "/v1/orders/"+order.ID+"/items/7/advance", "", nil); code != http.StatusOK {
		t.Fatalf("advance item = %d", code)
	}
	if code := a.do(http.MethodPost, "/v1/orders/"+order.ID+"/advance", "", &order); code != http.StatusOK {
		t.Fatalf("advance order = %d", code)
	}
	if order.OrderStatus != model.OrderDelivered {
		t.Fatalf("orderStatus = %s", order.OrderStatus)
	}

	if code := a.do(http.MethodPost, "/v1/tables/5/done", "", nil); code != http.StatusCreated {
		t.Fatalf("first done = %d, want 201", code)
	}
	if code := a.do(http.MethodPost, "/v1/tables/5/done", "", nil); code != http.StatusOK {
		t.Fatalf("second done = %d, want 200", code)
	}
	if got := a.occupancy("5"); got != "ready-for-bill" {
		t.Fatalf("after done = %s", got)
	}

	if code := a.do(http.MethodGet, "/v1/tables/5/bill", "", nil); code != http.StatusNotFound {
		t.Fatalf("bill before generation = %d, want 404", code)
	}
	var bill model.Bill
	if code := a.do(http.MethodPost, "/v1/tables/5/bill", "", &bill); code != http.StatusCreated {
		t.Fatalf("generate bill = %d", code)
	}
	if bill.TableID != "5" || bill.TotalCents != 50 || len(bill.Items) != 1 || bill.Items[0].Name != "Soup" {
		t.Fatalf("bill = %+v", bill)
	}

	var freed struct {
		Partial bool `json:"partial"`
	}
	if code := a.do(http.MethodPost, "/v1/tables/5/free", "", &freed); code != http.StatusOK || freed.Partial {
		t.Fatalf("free = %d partial=%v", code, freed.Partial)
	}
	if got := a.occupancy("5"); got != "free" {
		t.Fatalf("after free = %s", got)
	}
	if code := a.do(http.MethodGet, "/v1/tables/5/bill", "", nil); code != http.StatusNotFound {
		t.Fatalf("bill after free = %d, want 404", code)
	}
}

func TestErrorStatuses(t *testing.T) {
	a, _ := newAPI(t)
	a.do(http.MethodPost, "/v1/tables", "", nil)

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/v1/tables/abc/done", "", http.StatusBadRequest},
		{http.MethodPost, "/v1/tables/0/bill", "", http.StatusBadRequest},
		{http.MethodDelete, "/v1/tables/9", "", http.StatusNotFound},
		{http.MethodPost, "/v1/tables/1/bill", "", http.StatusUnprocessableEntity},
		{http.MethodPost, "/v1/tables/1/orders", `{"items":[]}`, http.StatusBadRequest},
		{http.MethodPost, "/v1/tables/1/orders", `{"items":[{"itemId":"nope","quantity":1}]}`, http.StatusNotFound},
		{http.MethodPost, "/v1/tables/1/orders", `{"items":`, http.StatusBadRequest},
		{http.MethodPost, "/v1/orders/missing/advance", "", http.StatusNotFound},
		{http.MethodGet, "/v1/orders?tableId=x", "", http.StatusBadRequest},
		{http.MethodGet, "/v1/menu?available=maybe", "", http.StatusBadRequest},
		{http.MethodPost, "/v1/menu", `{"name":"","price":1,"type":"veg","category":"drinks"}`, http.StatusBadRequest},
		{http.MethodGet, "/v1/qr/not-a-token", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			if code := a.do(tt.method, tt.path, tt.body, nil); code != tt.want {
				t.Fatalf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestMenuOverHTTP(t *testing.T) {
	a, _ := newAPI(t)
	var item model.MenuItem
	body := `{"name":"Tea","price":10,"type":"veg","category":"drinks","available":true}`
	if code := a.do(http.MethodPost, "/v1/menu", body, &item); code != http.StatusCreated {
		t.Fatalf("add = %d", code)
	}
	if code := a.do(http.MethodPost, "/v1/menu/"+item.ID+"/toggle", "", &item); code != http.StatusOK || item.Available {
		t.Fatalf("toggle = %d available=%v", code, item.Available)
	}

	var list struct {
		Items []model.MenuItem `json:"items"`
	}
	a.do(http.MethodGet, "/v1/menu?available=true", "", &list)
	if len(list.Items) != 0 {
		t.Fatalf("available filter returned %d items", len(list.Items))
	}
	a.do(http.MethodGet, "/v1/menu?search=te&type=veg&category=all", "", &list)
	if len(list.Items) != 1 {
		t.Fatalf("search returned %d items", len(list.Items))
	}

	upd := `{"name":"Masala Tea","price":15,"type":"veg","category":"drinks","available":true}`
	if code := a.do(http.MethodPut, "/v1/menu/"+item.ID, upd, &item); code != http.StatusOK || item.Name != "Masala Tea" {
		t.Fatalf("update = %d %+v", code, item)
	}
	if code := a.do(http.MethodDelete, "/v1/menu/"+item.ID, "", nil); code != http.StatusNoContent {
		t.Fatalf("delete = %d", code)
	}
	if code := a.do(http.MethodDelete, "/v1/menu/"+item.ID, "", nil); code != http.StatusNotFound {
		t.Fatalf("second delete = %d", code)
	}
}

func TestPricesAreMinorUnits(t *testing.T) {
	a, _ := newAPI(t)
	var tbl model.Table
	a.do(http.MethodPost, "/v1/tables", "", &tbl)

	if code := a.do(http.MethodPost, "/v1/menu", `{"name":"Tea","price":2.5,"type":"veg","category":"drinks","available":true}`, nil); code != http.StatusBadRequest {
		t.Fatalf("fractional price = %d, want 400", code)
	}
	var item model.MenuItem
	if code := a.do(http.MethodPost, "/v1/menu", `{"name":"Tea","price":250,"type":"veg","category":"drinks","available":true}`, &item); code != http.StatusCreated {
		t.Fatalf("add = %d", code)
	}
	body := fmt.Sprintf(`{"items":[{"itemId":%q,"quantity":3}]}`, item.ID)
	if code := a.do(http.MethodPost, "/v1/tables/"+tbl.ID.String()+"/orders", body, nil); code != http.StatusCreated {
		t.Fatalf("submit = %d", code)
	}
	var bill struct {
		Items []struct {
			Price      json.Number `json:"price"`
			TotalPrice json.Number `json:"totalPrice"`
		} `json:"items"`
		Total json.Number `json:"total"`
	}
	if code := a.do(http.MethodPost, "/v1/tables/"+tbl.ID.String()+"/bill", "", &bill); code != http.StatusCreated {
		t.Fatalf("bill = %d", code)
	}
	if len(bill.Items) != 1 || bill.Items[0].Price != "250" || bill.Items[0].TotalPrice != "750" || bill.Total != "750" {
		t.Fatalf("bill = %+v, want integer minor units 250 x 3 = 750", bill)
	}
}

func TestQRResolve(t *testing.T) {
	a, _ := newAPI(t)
	var tbl model.Table
	a.do(http.MethodPost, "/v1/tables", "", &tbl)
	u, err := url.Parse(tbl.QRTarget)
	if err != nil {
		t.Fatal(err)
	}
	var got model.Table
	if code := a.do(http.MethodGet, "/v1/qr/"+u.Query().Get("token"), "", &got); code != http.StatusOK || got.ID != tbl.ID {
		t.Fatalf("resolve = %d %+v", code, got)
	}
	if code := a.do(http.MethodGet, "/healthz", "", nil); code != http.StatusOK {
		t.Fatalf("healthz = %d", code)
	}
}
