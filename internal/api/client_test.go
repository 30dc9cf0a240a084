package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func TestClient_GetCart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/cart", r.URL.Path)
		require.Empty(t, r.Header.Get("Idempotency-Key"), "reads carry no idempotency key")

		json.NewEncoder(w).Encode(domain.Cart{
			Items: []domain.CartItem{{ID: 1, ProductID: 7, Quantity: 2, FinalPrice: 1000, ItemTotal: 2000}},
		})
	}))

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, int64(2000), cart.Items[0].ItemTotal)
}

func TestClient_AddCartItem_SendsIdempotencyKey(t *testing.T) {
	var keys []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		key := r.Header.Get("Idempotency-Key")
		_, err := uuid.Parse(key)
		require.NoError(t, err, "idempotency key must be a uuid")
		keys = append(keys, key)

		var body struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(7), body.ProductID)

		json.NewEncoder(w).Encode(domain.Cart{})
	}))

	_, err := client.AddCartItem(context.Background(), 7, 1, "walnut")
	require.NoError(t, err)
	_, err = client.AddCartItem(context.Background(), 7, 1, "walnut")
	require.NoError(t, err)

	require.Len(t, keys, 2)
	require.NotEqual(t, keys[0], keys[1], "each submission gets a fresh key")
}

func TestClient_UpdateCartItem_Path(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/cart/items/7", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Cart{})
	}))

	_, err := client.UpdateCartItem(context.Background(), 7, 3)
	require.NoError(t, err)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.GetCart(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), 404)
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestClient_StatusErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "product out of stock"})
	}))

	_, err := client.AddCartItem(context.Background(), 7, 1, "")
	var serr *api.StatusError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, http.StatusConflict, serr.Code)
	require.Equal(t, "product out of stock", serr.Message)
}

func TestClient_PlaceOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)

		var req api.PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []int64{1}, req.InsuredProductIDs)
		require.Equal(t, "card", req.PaymentMethod)

		json.NewEncoder(w).Encode(domain.Order{ID: 101, Status: domain.OrderStatusNew})
	}))

	order, err := client.PlaceOrder(context.Background(), &api.PlaceOrderRequest{
		Items:             []domain.OrderItem{{ProductID: 1, Quantity: 2}},
		AddressID:         11,
		PaymentMethod:     "card",
		InsuredProductIDs: []int64{1},
	})
	require.NoError(t, err)
	require.Equal(t, int64(101), order.ID)
	require.Equal(t, domain.OrderStatusNew, order.Status)
}

func TestClient_DeleteHasNoResponseBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/wishlist/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.RemoveWishlistItem(context.Background(), 3))
}
