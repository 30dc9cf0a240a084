// Package api is the REST client for the storefront backend. Every mutating
// endpoint returns the updated canonical entity so the stores can reconcile
// optimistic state against server truth.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/mylogger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cb         *gobreaker.CircuitBreaker
	tracer     trace.Tracer
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	settings := gobreaker.Settings{
		Name:        "StorefrontAPI",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(
				"Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cb:         gobreaker.NewCircuitBreaker(settings),
		tracer:     otel.Tracer("storefront_api"),
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do runs one JSON request through the breaker and decodes the response into
// out when out is non-nil. Mutating requests carry an idempotency key so a
// retried submission cannot apply twice server-side.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, span := c.tracer.Start(ctx, "api."+method+" "+path)
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, ErrUnauthorized
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		case resp.StatusCode >= 400:
			var eb errorBody
			_ = json.Unmarshal(data, &eb)
			return nil, &StatusError{Code: resp.StatusCode, Message: eb.Error}
		}

		return data, nil
	})
	if err != nil {
		span.RecordError(err)

		if errors.Is(err, gobreaker.ErrOpenState) {
			mylogger.Warn(ctx, c.logger, "Circuit breaker open", zap.String("path", path))
			return fmt.Errorf("storefront backend unavailable: %w", err)
		}

		return err
	}

	if out == nil {
		return nil
	}

	data, ok := result.([]byte)
	if !ok {
		return fmt.Errorf("unexpected breaker result type")
	}

	if err := json.Unmarshal(data, out); err != nil {
		mylogger.Warn(ctx, c.logger, "Failed to decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Cart endpoints.

func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type addCartItemRequest struct {
	ProductID       int64  `json:"product_id"`
	Quantity        int64  `json:"quantity"`
	SelectedVariant string `json:"selected_variant,omitempty"`
}

func (c *Client) AddCartItem(ctx context.Context, productID, quantity int64, variant string) (*domain.Cart, error) {
	var cart domain.Cart
	req := addCartItemRequest{ProductID: productID, Quantity: quantity, SelectedVariant: variant}
	if err := c.do(ctx, http.MethodPost, "/api/cart", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (c *Client) UpdateCartItem(ctx context.Context, productID, quantity int64) (*domain.Cart, error) {
	var cart domain.Cart
	path := fmt.Sprintf("/api/cart/items/%d", productID)
	if err := c.do(ctx, http.MethodPatch, path, updateCartItemRequest{Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

// Address endpoints.

func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := c.do(ctx, http.MethodGet, "/api/address", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := c.do(ctx, http.MethodPost, "/api/address", address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	var updated domain.Address
	path := fmt.Sprintf("/api/address/%d", address.ID)
	if err := c.do(ctx, http.MethodPatch, path, address, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/address/%d", id), nil, nil)
}

// Order endpoints.

type PlaceOrderRequest struct {
	Items             []domain.OrderItem `json:"items"`
	AddressID         int64              `json:"address_id"`
	PaymentMethod     string             `json:"payment_method"`
	InsuredProductIDs []int64            `json:"insured_product_ids"`
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Wishlist endpoints.

type addWishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

func (c *Client) ListWishlist(ctx context.Context) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddWishlistItem(ctx context.Context, productID int64) (*domain.WishlistItem, error) {
	var item domain.WishlistItem
	if err := c.do(ctx, http.MethodPost, "/api/wishlist", addWishlistRequest{ProductID: productID}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveWishlistItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", id), nil, nil)
}

// Catalog endpoints (read-only).

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	var materials []domain.Material
	if err := c.do(ctx, http.MethodGet, "/api/materials", nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

func (c *Client) ListPriceRanges(ctx context.Context) ([]domain.PriceRange, error) {
	var ranges []domain.PriceRange
	if err := c.do(ctx, http.MethodGet, "/api/price-ranges", nil, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}
