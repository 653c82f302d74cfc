package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/storefront"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/notify"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/testutil/fakebackend"
)

type harness struct {
	fake    *fakebackend.Backend
	handler http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := fakebackend.New(t,
		fakebackend.Product{ID: "A", Name: "iPhone XR", Category: "Phones", Cost: 100, Rating: 4},
		fakebackend.Product{ID: "B", Name: "Basketball", Category: "Sports", Cost: 50, Rating: 5},
	)
	fake.AddUser("crio.user", "learnbydoing", 5000)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "QKart Storefront", Version: "test", Environment: "test"},
		Backend: config.BackendConfig{Endpoint: fake.URL(), Timeout: 5 * time.Second},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "DELETE"},
			CORSAllowedHeaders: []string{"Content-Type"},
		},
		Receipt: config.ReceiptConfig{ShopName: "QKart"},
	}

	log := logger.Discard()
	registry := prometheus.NewRegistry()
	client, err := backend.NewClient(fake.URL(), backend.WithLogger(log), backend.WithMetrics(metrics.NewBackendMetrics(registry)))
	require.NoError(t, err)

	inbox := notify.NewInbox(50)
	sessions := auth.NewSessionManager(auth.NewMemoryStore(), log)
	front := storefront.New(
		product.NewService(client, inbox, log),
		cart.NewService(client, inbox, log),
		checkout.NewService(client, sessions, inbox, log),
		sessions,
		log,
		storefront.Options{DebounceWindow: 20 * time.Millisecond},
	)
	require.NoError(t, front.Load(context.Background()))

	server := NewServer(cfg, routes.Dependencies{
		Storefront: front,
		Users:      user.NewService(client, sessions, inbox, log),
		Addresses:  user.NewAddressService(client, inbox, log),
		Receipts:   pdf.NewService(cfg),
		Inbox:      inbox,
		Logger:     log,
	}, registry)

	return &harness{fake: fake, handler: server.Handler()}
}

func (h *harness) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (h *harness) notifications(t *testing.T) []any {
	t.Helper()
	_, body := h.do(t, http.MethodGet, "/api/notifications", nil)
	return body["data"].([]any)
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	status, _ := h.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "crio.user", "password": "learnbydoing"})
	require.Equal(t, http.StatusOK, status)
	h.notifications(t)
}

func TestHealthAndProducts(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.EqualValues(t, 2, body["catalogSize"])

	status, body = h.do(t, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Len(t, data["products"], 2)
}

func TestReload(t *testing.T) {
	h := newHarness(t)
	h.fake.Fail(http.MethodGet, "/products", http.StatusInternalServerError, "Catalog is down")

	status, body := h.do(t, http.MethodPost, "/api/reload", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, false, body["success"])

	h.fake.Heal()
	status, body = h.do(t, http.MethodPost, "/api/reload", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 2, data["catalogSize"])
	assert.Len(t, data["products"], 2)
}

func TestAddToCartLoggedOut(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodPost, "/api/cart/A/add", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])
	assert.Zero(t, h.fake.Count(http.MethodPost, "/cart"))

	notes := h.notifications(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "Login to add an item to the Cart", notes[0].(map[string]any)["message"])
}

func TestCartFlow(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	status, _ := h.do(t, http.MethodPost, "/api/cart/A/add", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodPost, "/api/cart/A/add", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = h.do(t, http.MethodPost, "/api/cart/A/increment", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodPost, "/api/cart/B", map[string]int{"qty": 1})
	require.Equal(t, http.StatusOK, status)

	status, body := h.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Len(t, data["items"], 2)
	totals := data["totals"].(map[string]any)
	assert.EqualValues(t, 3, totals["total_quantity"])
	assert.Equal(t, "250", totals["total_amount"])

	status, _ = h.do(t, http.MethodPost, "/api/cart/B", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(t, http.MethodPost, "/api/cart/Z/increment", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearch(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodPost, "/api/search", map[string]any{"text": "xyz", "immediate": true})
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"].(map[string]any)["products"])
	assert.Empty(t, h.notifications(t))

	status, _ = h.do(t, http.MethodPost, "/api/search", map[string]any{"text": "basket"})
	assert.Equal(t, http.StatusAccepted, status)

	require.Eventually(t, func() bool {
		_, body := h.do(t, http.MethodGet, "/api/products", nil)
		data := body["data"].(map[string]any)
		return data["query"] == "basket" && len(data["products"].([]any)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCheckoutFlow(t *testing.T) {
	h := newHarness(t)

	status, _ := h.do(t, http.MethodGet, "/api/addresses", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	h.login(t)

	status, body := h.do(t, http.MethodPost, "/api/addresses", map[string]string{"address": "221B Baker Street, London, NW1 6XE"})
	require.Equal(t, http.StatusCreated, status)
	addresses := body["data"].([]any)
	require.Len(t, addresses, 1)
	addressID := addresses[0].(map[string]any)["_id"].(string)

	status, _ = h.do(t, http.MethodPost, "/api/checkout", map[string]string{"addressId": addressID})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = h.do(t, http.MethodPost, "/api/cart/A", map[string]int{"qty": 2})
	require.Equal(t, http.StatusOK, status)

	status, body = h.do(t, http.MethodGet, "/api/checkout/summary", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "200", body["data"].(map[string]any)["total"])

	status, _ = h.do(t, http.MethodPost, "/api/checkout", map[string]string{"addressId": addressID})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 4800.0, h.fake.Balance("crio.user"))

	_, body = h.do(t, http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, "4800", body["data"].(map[string]any)["balance"])

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/receipt?format=html", nil)
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "221B Baker Street")
	assert.Contains(t, w.Body.String(), "$200.00")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	status, _ := h.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	_, body := h.do(t, http.MethodGet, "/api/auth/session", nil)
	assert.Equal(t, false, body["data"].(map[string]any)["loggedIn"])
}

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodPost, "/api/auth/register", map[string]string{"username": "crio", "password": "learnbydoing", "confirmPassword": "learnbydoing"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username must be at least 6 characters", body["message"])

	status, _ = h.do(t, http.MethodPost, "/api/auth/register", map[string]string{"username": "new.user", "password": "learnbydoing", "confirmPassword": "learnbydoing"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_backend_requests_total")
}
