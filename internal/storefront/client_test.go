package storefront

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/internal/checkout"
	"github.com/pinkcart/go-backend/internal/delivery/v1/http/dto"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", logger.NewNop(), WithRetryWait(time.Millisecond, 5*time.Millisecond))
}

func TestClient_ListProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "shoes", r.URL.Query().Get("categoryId"))
		assert.Equal(t, "pink heels", r.URL.Query().Get("search"))
		writeJSON(w, http.StatusOK, dto.ListResponse{Success: true, Count: 1, Data: []dto.Product{
			{ID: "p1", Name: "Heels", Price: 3500, Image: "/h.jpg"},
		}})
	})

	products, err := c.ListProducts(context.Background(), ProductQuery{CategoryID: "shoes", Search: "pink heels"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, []string{"/h.jpg"}, products[0].Images)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Product not found"})
	})

	_, err := c.GetProduct(context.Background(), "nope")

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestClient_RetriesReads(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Failed to fetch categories"})
			return
		}
		writeJSON(w, http.StatusOK, dto.ListResponse{Success: true, Count: 1, Data: []dto.Category{{ID: "c", Name: "Shoes", Slug: "shoes"}}})
	})

	categories, err := c.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "shoes", categories[0].Slug)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_ReadErrorAfterRetries(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch products", Message: "db down"})
	})

	_, err := c.ListProducts(context.Background(), ProductQuery{})

	assert.ErrorIs(t, err, e.ErrInternalServerError)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, int32(defaultRetryMax+1), hits.Load())
}

func TestClient_CreateOrder(t *testing.T) {
	created := time.Date(2024, 10, 27, 9, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		var req dto.CreateOrderRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "Amina", req.CustomerName)
		require.NotNil(t, req.Items)
		assert.Equal(t, "p1", (*req.Items)[0].ID)

		writeJSON(w, http.StatusOK, dto.Response{Success: true, Message: "Order saved successfully", Data: dto.Order{
			ID: "u", OrderID: "ORD-1-abc", CustomerName: req.CustomerName, CustomerPhone: req.CustomerPhone,
			Items: *req.Items, TotalPrice: req.TotalPrice, TotalItems: req.TotalItems, Status: "pending", CreatedAt: created,
		}})
	})

	order, err := c.CreateOrder(context.Background(), &checkout.OrderDraft{
		CustomerName: "Amina", CustomerPhone: "07",
		Items:      []domain.LineItem{{ProductID: "p1", Name: "Case", Price: 800, Quantity: 2}},
		TotalPrice: 1600, TotalItems: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-1-abc", order.OrderID)
	assert.Equal(t, created, order.CreatedAt)
	assert.Equal(t, "p1", order.Items[0].ProductID)
}

func TestClient_CreateOrderIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to save order"})
	})

	_, err := c.CreateOrder(context.Background(), &checkout.OrderDraft{CustomerName: "A", CustomerPhone: "1"})

	assert.ErrorIs(t, err, e.ErrInternalServerError)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_CreateOrderBadRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Missing required fields"})
	})

	_, err := c.CreateOrder(context.Background(), &checkout.OrderDraft{})

	assert.ErrorIs(t, err, e.ErrStatusBadRequest)
}
