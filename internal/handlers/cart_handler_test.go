package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"quickdeliver-backend/internal/middleware"
	"quickdeliver-backend/internal/models"
	"quickdeliver-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStorage) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type stubCheckoutService struct {
	result *services.CheckoutResult
	err    error
	calls  int
}

func (s *stubCheckoutService) ValidateCart(lines []models.CartLine) services.CartValidation {
	if len(lines) == 0 {
		return services.CartValidation{Valid: false, Message: "Your cart is empty"}
	}
	return services.CartValidation{Valid: true}
}

func (s *stubCheckoutService) Checkout(ctx context.Context, store *services.CartStore, customerID uuid.UUID, selector services.AddressSelector, confirmer services.Confirmer) (*services.CheckoutResult, error) {
	s.calls++
	return s.result, s.err
}

type stubConfirmationService struct {
	result *services.CheckoutResult
}

func (s *stubConfirmationService) ConsumeConfirmation(ctx context.Context, customerID uuid.UUID) (*services.CheckoutResult, error) {
	result := s.result
	s.result = nil
	return result, nil
}

func newCartTestRouter(checkout *stubCheckoutService, confirmations *stubConfirmationService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := services.NewCartManager(&memoryStorage{data: make(map[string]string)}, "quickdeliver_cart")
	handler := NewCartHandler(manager, checkout, nil, confirmations)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func doCartRequest(t *testing.T, router *gin.Engine, customerID uuid.UUID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CustomerIDHeader, customerID.String())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cartItemBody(menuID uuid.UUID, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"menu_id":         menuID,
		"restaurant_id":   uuid.New(),
		"product_id":      "64f1c0ffee0ddba11ca70001",
		"product_name":    "Margherita Pizza",
		"restaurant_name": "Mama Rosa",
		"price":           10.0,
		"quantity":        quantity,
	}
}

func TestCartEndpointsRequireCustomerHeader(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartAndGetCart(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})
	customerID := uuid.New()

	w := doCartRequest(t, router, customerID, http.MethodPost, "/api/v1/cart/items", cartItemBody(uuid.New(), 2))
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, router, customerID, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, 2, response.ItemCount)
	assert.Equal(t, 20.0, response.Total)
	assert.False(t, response.IsEmpty)
}

func TestAddToCartRejectsMissingFields(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})

	w := doCartRequest(t, router, uuid.New(), http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"quantity": 2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemZeroQuantityRemoves(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})
	customerID := uuid.New()

	w := doCartRequest(t, router, customerID, http.MethodPost, "/api/v1/cart/items", cartItemBody(uuid.New(), 1))
	require.Equal(t, http.StatusOK, w.Code)

	var response CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	lineID := response.Items[0].ID

	w = doCartRequest(t, router, customerID, http.MethodPut, "/api/v1/cart/items/"+lineID, map[string]interface{}{
		"quantity": 0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.IsEmpty)
}

func TestCartIsolatedPerCustomer(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})
	customerA := uuid.New()
	customerB := uuid.New()

	w := doCartRequest(t, router, customerA, http.MethodPost, "/api/v1/cart/items", cartItemBody(uuid.New(), 1))
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, router, customerB, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.IsEmpty)
}

func TestSidebarActions(t *testing.T) {
	router := newCartTestRouter(&stubCheckoutService{}, &stubConfirmationService{})
	customerID := uuid.New()

	w := doCartRequest(t, router, customerID, http.MethodPut, "/api/v1/cart/sidebar", map[string]interface{}{"action": "open"})
	require.Equal(t, http.StatusOK, w.Code)

	var response SidebarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Open)

	w = doCartRequest(t, router, customerID, http.MethodPut, "/api/v1/cart/sidebar", map[string]interface{}{"action": "toggle"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Open)

	w = doCartRequest(t, router, customerID, http.MethodPut, "/api/v1/cart/sidebar", map[string]interface{}{"action": "slide"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid cart", services.ErrInvalidCart, http.StatusBadRequest},
		{"cancelled", services.ErrCheckoutCancelled, http.StatusConflict},
		{"internal", errors.New("order service down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := &stubCheckoutService{err: tt.err}
			router := newCartTestRouter(checkout, &stubConfirmationService{})

			w := doCartRequest(t, router, uuid.New(), http.MethodPost, "/api/v1/cart/checkout", map[string]interface{}{
				"confirmed": true,
			})

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, 1, checkout.calls)
		})
	}
}

func TestCheckoutSuccessReturnsResult(t *testing.T) {
	orderID := uuid.New()
	checkout := &stubCheckoutService{
		result: &services.CheckoutResult{OrderCount: 2, TotalAmount: 25.0, FirstOrderID: &orderID},
	}
	router := newCartTestRouter(checkout, &stubConfirmationService{})

	w := doCartRequest(t, router, uuid.New(), http.MethodPost, "/api/v1/cart/checkout", map[string]interface{}{
		"address_id": uuid.New(),
		"confirmed":  true,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.OrderCount)
	assert.Equal(t, 25.0, result.TotalAmount)
}

func TestGetConfirmationConsumeOnce(t *testing.T) {
	confirmations := &stubConfirmationService{
		result: &services.CheckoutResult{OrderCount: 1, TotalAmount: 10.0},
	}
	router := newCartTestRouter(&stubCheckoutService{}, confirmations)
	customerID := uuid.New()

	w := doCartRequest(t, router, customerID, http.MethodGet, "/api/v1/cart/confirmation", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, router, customerID, http.MethodGet, "/api/v1/cart/confirmation", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
