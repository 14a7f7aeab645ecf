package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/address"
	"github.com/quickbites/storefront/internal/cart"
	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/customer"
	ord "github.com/quickbites/storefront/internal/order"
)

//
// ---------- STUBS & FAKES ----------
//

// stubOrderRepo implements ord.Repository in memory.
type stubOrderRepo struct {
	orders  []ord.Order
	failing bool
}

func (s *stubOrderRepo) Create(ctx context.Context, o *ord.Order) error {
	if s.failing {
		return fmt.Errorf("connection refused")
	}
	s.orders = append([]ord.Order{*o}, s.orders...)
	return nil
}

func (s *stubOrderRepo) List(ctx context.Context, customerID string) ([]ord.Order, error) {
	if s.failing {
		return nil, fmt.Errorf("connection refused")
	}
	var out []ord.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type testEnv struct {
	router *gin.Engine
	repo   *stubOrderRepo
	token  string
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newTestEnv wires the real handlers against in-memory backends and logs the
// demo customer in.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubOrderRepo{}
	cat := catalog.Seed()
	customers := customer.NewMemoryRepo()
	auth := customer.NewAuth(customers, "test-secret", time.Hour)
	addresses := address.NewMemoryStore()
	carts := newCartRegistry(func(string) cart.Storage { return cart.NopStorage{} })
	submit := ord.NewService(repo, dec(50), dec(25)).WithRestaurantNames(cat)
	history := ord.NewHistory(repo)

	r := gin.New()
	r.POST("/auth/login", loginHandler(auth))
	r.GET("/restaurants/search", searchRestaurantsHandler(cat))
	r.GET("/restaurants/:id", getRestaurantHandler(cat))

	priv := r.Group("/", authRequired(auth))
	priv.GET("/customer/address", listAddressesHandler(addresses))
	priv.GET("/cart", getCartHandler(carts))
	priv.POST("/cart/items", addCartItemHandler(carts, cat))
	priv.PATCH("/cart/items/:id", setCartQuantityHandler(carts))
	priv.PUT("/cart/address", selectCartAddressHandler(carts, addresses))
	priv.GET("/customer/orders", listOrdersHandler(history))
	priv.POST("/customer/orders", placeOrderHandler(carts, submit, history))
	priv.GET("/customer/orders/export", exportOrdersHandler(history))

	_, token, err := auth.Login(context.Background(), customer.LoginRequest{
		Email: "demo@example.com", Password: "password",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return &testEnv{router: r, repo: repo, token: token}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Buffer
	if body != "" {
		rd = bytes.NewBufferString(body)
	} else {
		rd = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) pickAddress(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodGet, "/customer/address", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list addresses: status=%d body=%s", w.Code, w.Body.String())
	}
	var list []address.Address
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode addresses: %v", err)
	}
	def := address.DefaultOf(list)
	if def == nil {
		t.Fatalf("no default address in seed")
	}
	w = e.do(t, http.MethodPut, "/cart/address", fmt.Sprintf(`{"addressId":%q}`, def.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("select address: status=%d body=%s", w.Code, w.Body.String())
	}
	return def.ID
}

//
// ---------- TESTS ----------
//

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, expected 401 without a token", w.Code)
	}
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	env := newTestEnv(t)

	// two dishes from Spice Garden, one of them twice
	for _, dish := range []string{"1", "2", "1"} {
		w := env.do(t, http.MethodPost, "/cart/items", fmt.Sprintf(`{"dishId":%q}`, dish))
		if w.Code != http.StatusOK {
			t.Fatalf("add item: status=%d body=%s", w.Code, w.Body.String())
		}
	}
	env.pickAddress(t)

	w := env.do(t, http.MethodPost, "/customer/orders", `{"paymentMethod":"UPI"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("place order: status=%d body=%s", w.Code, w.Body.String())
	}
	var res ord.PlaceOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || res.Order == nil {
		t.Fatalf("expected success with order, got %s", w.Body.String())
	}
	// 299*2 + 249 = 847, plus 50 delivery and 25 tax
	if res.Order.Total.String() != "922" {
		t.Fatalf("total=%s, expected 922", res.Order.Total)
	}
	if res.Order.Status != ord.StatusConfirmed {
		t.Fatalf("status=%s, expected confirmed", res.Order.Status)
	}
	if res.Order.Restaurant != "Spice Garden" {
		t.Fatalf("restaurant=%q", res.Order.Restaurant)
	}
	if len(env.repo.orders) != 1 {
		t.Fatalf("history gained %d entries, expected 1", len(env.repo.orders))
	}

	// cart must be empty afterwards
	w = env.do(t, http.MethodGet, "/cart", "")
	var view struct {
		Items     []any `json:"items"`
		ItemCount int   `json:"itemCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(view.Items) != 0 || view.ItemCount != 0 {
		t.Fatalf("cart not cleared: %s", w.Body.String())
	}
}

func TestPlaceOrder_NoAddress(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart/items", `{"dishId":"1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add item: status=%d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/customer/orders", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s, expected 422", w.Code, w.Body.String())
	}
	if len(env.repo.orders) != 0 {
		t.Fatalf("no order may be recorded on validation failure")
	}

	// cart must keep its line
	w = env.do(t, http.MethodGet, "/cart", "")
	if !strings.Contains(w.Body.String(), "Chicken Biryani") {
		t.Fatalf("cart lost its line: %s", w.Body.String())
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/customer/orders", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, expected 422", w.Code)
	}
}

func TestPlaceOrder_RepoFailure(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items", `{"dishId":"1"}`)
	env.pickAddress(t)

	env.repo.failing = true
	w := env.do(t, http.MethodPost, "/customer/orders", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d body=%s, expected 502", w.Code, w.Body.String())
	}

	// cart untouched, retry possible
	env.repo.failing = false
	w = env.do(t, http.MethodPost, "/customer/orders", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("retry: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestListOrders_FilterByStatus(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items", `{"dishId":"1"}`)
	env.pickAddress(t)
	if w := env.do(t, http.MethodPost, "/customer/orders", ""); w.Code != http.StatusCreated {
		t.Fatalf("place order: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/customer/orders?q=CONFIRMED", "")
	var list []ord.Order
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("filtered len=%d, expected 1 (body=%s)", len(list), w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/customer/orders?q=cancelled", "")
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no cancelled orders, got %d", len(list))
	}
}

func TestExportOrdersCSV(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items", `{"dishId":"1"}`)
	env.pickAddress(t)
	if w := env.do(t, http.MethodPost, "/customer/orders", ""); w.Code != http.StatusCreated {
		t.Fatalf("place order: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/customer/orders/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type=%q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ord.CSVFileName) {
		t.Fatalf("content-disposition=%q", cd)
	}
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != ord.CSVHeader {
		t.Fatalf("header=%q", lines[0])
	}
	if !strings.Contains(lines[1], `"Chicken Biryani x 1"`) {
		t.Fatalf("row=%q", lines[1])
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/cart/items", `{"dishId":"1"}`)

	w := env.do(t, http.MethodPatch, "/cart/items/1", `{"quantity":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "Chicken Biryani") {
		t.Fatalf("line not removed: %s", w.Body.String())
	}

	w = env.do(t, http.MethodPatch, "/cart/items/1", `{"quantity":-2}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, expected 400 for negative quantity", w.Code)
	}
}

func TestSearchRestaurants(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/restaurants/search?query=pizza", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var list []catalog.Restaurant
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Pizza Palace" {
		t.Fatalf("unexpected result: %s", w.Body.String())
	}
}

func TestGetRestaurantWithCategoryFilter(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/restaurants/1?categoryId=6", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var r catalog.Restaurant
	if err := json.Unmarshal(w.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(r.Dishes) != 2 {
		t.Fatalf("dishes=%d, expected 2 in category 6", len(r.Dishes))
	}
}
