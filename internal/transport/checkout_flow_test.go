package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenshop/internal/domain"
	"greenshop/internal/events"
	"greenshop/internal/kv"
	"greenshop/internal/repository"
	"greenshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// passthrough stands in for the admin gate in handler tests.
func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	store := kv.NewMemoryStore()
	catalog := repository.NewCatalogRepository(store)
	cart := repository.NewCartRepository(store)
	orders := repository.NewOrderRepository(store)
	orderSvc := service.NewOrderService(orders, cart, events.NopPublisher{}, zap.NewNop())

	r := chi.NewRouter()
	NewCatalogHandler(catalog, zap.NewNop()).RegisterRoutes(r, passthrough)
	NewCartHandler(cart, catalog, zap.NewNop()).RegisterRoutes(r)
	NewOrderHandler(orderSvc, zap.NewNop()).RegisterRoutes(r, passthrough)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	// Seeded catalog is served on first request.
	w := doJSON(t, router, "GET", "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 6)

	// Add a seeded product twice; quantities merge.
	payload := `{"productId":"` + products[0].ID + `","quantity":2}`
	w = doJSON(t, router, "POST", "/api/cart/items", payload)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, "POST", "/api/cart/items", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var items []domain.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, 4, items[0].Quantity)

	w = doJSON(t, router, "GET", "/api/cart/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"count":4}`, w.Body.String())

	// Checkout snapshots the cart.
	w = doJSON(t, router, "POST", "/api/orders", `{"name":"Nguyễn Văn A","phone":"0901234567","address":"Hà Nội"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	require.True(t, strings.HasPrefix(order.ID, "ORD-"))
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, products[0].Price*4, order.TotalAmount)

	// Cart is now empty.
	w = doJSON(t, router, "GET", "/api/cart/count", "")
	require.JSONEq(t, `{"count":0}`, w.Body.String())

	// Admin sees the order and can move its status.
	w = doJSON(t, router, "GET", "/api/admin/orders/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var orders []domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	w = doJSON(t, router, "PUT", "/api/admin/orders/"+order.ID+"/status", `{"status":"shipping"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Equal(t, domain.OrderStatusShipping, orders[0].Status)
}

func TestCheckoutEmptyCartReturns400(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/orders", `{"name":"A","phone":"0901","address":"HN"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "cart is empty")
}

func TestCheckoutValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/orders", `{"name":"A"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Phone")
	require.Contains(t, w.Body.String(), "Address")
}

func TestAddUnknownProductReturns404(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "POST", "/api/cart/items", `{"productId":"no-such-product"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, "PUT", "/api/admin/orders/ORD-1/status", `{"status":"teleported"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
