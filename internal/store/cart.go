package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/internal/pricing"
	"github.com/NeerajGithb/furniture-client-sub000/internal/storage"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/mylogger"
)

type cartAPI interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddCartItem(ctx context.Context, productID, quantity int64, variant string) (*domain.Cart, error)
	UpdateCartItem(ctx context.Context, productID, quantity int64) (*domain.Cart, error)
	ClearCart(ctx context.Context) error
}

// CartStore owns the authoritative client-side cart plus the derived checkout
// selection: which product ids are selected for checkout, which carry
// insurance, and the totals computed from that selection.
//
// Invariant: insured ⊆ selected ⊆ product ids of the current cart items.
// Every path that shrinks the cart intersects both sets down synchronously.
type CartStore struct {
	api    cartAPI
	local  storage.Storage
	logger *zap.Logger
	tracer trace.Tracer

	mu          sync.Mutex
	cart        *domain.Cart
	selected    domain.IDSet
	insured     domain.IDSet
	totals      domain.CheckoutTotals
	initialized bool

	// updating is the per-product re-entrancy guard: a second mutation for
	// an id already in flight fails fast with ErrUpdateInFlight.
	updating map[int64]struct{}

	// mutationSeq increases on every local mutation. A cart refetch captures
	// the sequence when it starts and is discarded if a newer mutation
	// landed before its response, so a stale response can never overwrite
	// newer state.
	mutationSeq uint64

	tempSeq int64
}

func NewCartStore(apiClient cartAPI, local storage.Storage, logger *zap.Logger) *CartStore {
	return &CartStore{
		api:      apiClient,
		local:    local,
		logger:   logger,
		tracer:   otel.Tracer("cart_store"),
		cart:     domain.EmptyCart(),
		selected: domain.IDSet{},
		insured:  domain.IDSet{},
		updating: make(map[int64]struct{}),
	}
}

// Initialize fetches the server cart once; repeat calls are no-ops. A 401 is
// a valid empty cart for an anonymous session, not an error. The selection
// seeds to "all items" unless a persisted selection survives validation, in
// which case it is intersected against the fetched items.
func (s *CartStore) Initialize(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartStore.Initialize")
	defer span.End()

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNotFound) {
			cart = domain.EmptyCart()
		} else {
			span.RecordError(err)
			return fmt.Errorf("failed to fetch cart: %w", err)
		}
	}

	persisted := s.loadSelection(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	ids := cart.ProductIDs()
	s.cart = cart

	if persisted != nil {
		s.selected = persisted.SelectedItems
		s.insured = persisted.InsuranceEnabled
		s.selected.Intersect(ids)
		s.insured.Intersect(s.selected)
	} else {
		s.selected = ids.Clone()
		s.insured = ids.Clone()
	}

	s.initialized = true
	s.recalcTotalsLocked()

	span.SetAttributes(attribute.Int("cart.items", len(cart.Items)))
	return nil
}

func (s *CartStore) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// AddToCart merges into an existing line when the product is already in the
// cart. A new line gets a negative temp id and item total 0 until the
// post-success refetch replaces the whole cart with server truth; the product
// is selected and insured immediately. Failure restores the exact
// pre-mutation cart and selection.
func (s *CartStore) AddToCart(ctx context.Context, productID, quantity int64, variant string) error {
	ctx, span := s.tracer.Start(ctx, "CartStore.AddToCart")
	defer span.End()
	span.SetAttributes(attribute.Int64("product_id", productID))

	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	existing := s.cart.FindItem(productID)
	var existingQty int64
	if existing != nil {
		existingQty = existing.Quantity
	}
	s.mu.Unlock()

	if existing != nil {
		return s.UpdateQuantity(ctx, productID, existingQty+quantity)
	}

	if err := s.beginUpdate(productID); err != nil {
		return err
	}
	defer s.endUpdate(productID)
	defer s.recalcTotals()

	s.mu.Lock()
	prevCart := s.cart.Clone()
	prevSelected := s.selected.Clone()
	prevInsured := s.insured.Clone()

	s.tempSeq--
	s.cart.Items = append(s.cart.Items, domain.CartItem{
		ID:              s.tempSeq,
		ProductID:       productID,
		Quantity:        quantity,
		SelectedVariant: variant,
		ItemTotal:       0,
		AddedAt:         time.Now(),
	})
	s.cart.RecalculateCounters()
	s.selected.Add(productID)
	s.insured.Add(productID)
	s.mutationSeq++
	s.recalcTotalsLocked()
	s.mu.Unlock()

	s.persistSelection(ctx)

	if _, err := s.api.AddCartItem(ctx, productID, quantity, variant); err != nil {
		span.RecordError(err)
		mylogger.Warn(ctx, s.logger, "Add to cart failed, rolling back",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		s.mu.Lock()
		s.cart = prevCart
		s.selected = prevSelected
		s.insured = prevInsured
		s.mutationSeq++
		s.mu.Unlock()

		s.persistSelection(ctx)
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.refreshCart(ctx)
	return nil
}

// UpdateQuantity applies the new quantity optimistically and reconciles with
// a full refetch on success. Quantity 0 is the removal path: the product is
// pruned from both selection sets before the request is issued, so no reader
// ever observes a selection referencing a removed item. Totals are
// recomputed unconditionally on the way out, success or failure.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID, quantity int64) error {
	ctx, span := s.tracer.Start(ctx, "CartStore.UpdateQuantity")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("product_id", productID),
		attribute.Int64("quantity", quantity),
	)

	if quantity < 0 {
		return ErrInvalidQuantity
	}

	if err := s.beginUpdate(productID); err != nil {
		return err
	}
	defer s.endUpdate(productID)
	defer s.recalcTotals()

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	item := s.cart.FindItem(productID)
	if item == nil {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Quantity update for product not in cart",
			zap.Int64("product_id", productID),
		)
		return nil
	}

	prevCart := s.cart.Clone()

	if quantity == 0 {
		items := s.cart.Items[:0:0]
		for i := range s.cart.Items {
			if s.cart.Items[i].ProductID != productID {
				items = append(items, s.cart.Items[i])
			}
		}
		s.cart.Items = items
		s.selected.Remove(productID)
		s.insured.Remove(productID)
	} else {
		item.Quantity = quantity
		item.ItemTotal = item.FinalPrice * quantity
	}
	s.cart.RecalculateCounters()
	s.mutationSeq++
	s.recalcTotalsLocked()
	s.mu.Unlock()

	if quantity == 0 {
		s.persistSelection(ctx)
	}

	if _, err := s.api.UpdateCartItem(ctx, productID, quantity); err != nil {
		span.RecordError(err)
		mylogger.Warn(ctx, s.logger, "Quantity update failed, rolling back cart",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		s.mu.Lock()
		s.cart = prevCart
		s.mutationSeq++
		s.mu.Unlock()

		return fmt.Errorf("failed to update quantity: %w", err)
	}

	s.refreshCart(ctx)
	return nil
}

func (s *CartStore) RemoveFromCart(ctx context.Context, productID int64) error {
	return s.UpdateQuantity(ctx, productID, 0)
}

// ClearCart empties items and selection optimistically. On failure the prior
// cart object is restored; the selection stays empty and the error is
// surfaced to the caller.
func (s *CartStore) ClearCart(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartStore.ClearCart")
	defer span.End()

	defer s.recalcTotals()

	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	prevCart := s.cart.Clone()
	s.cart = domain.EmptyCart()
	s.selected = domain.IDSet{}
	s.insured = domain.IDSet{}
	s.mutationSeq++
	s.recalcTotalsLocked()
	s.mu.Unlock()

	s.persistSelection(ctx)

	if err := s.api.ClearCart(ctx); err != nil {
		span.RecordError(err)
		mylogger.Warn(ctx, s.logger, "Clear cart failed, restoring prior cart", zap.Error(err))

		s.mu.Lock()
		s.cart = prevCart
		s.mutationSeq++
		s.mu.Unlock()

		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// ToggleItemSelection flips the product in or out of the checkout selection.
// Deselecting also drops its insurance; re-selecting does not re-enable it.
func (s *CartStore) ToggleItemSelection(ctx context.Context, productID int64) {
	s.mu.Lock()
	if s.cart.FindItem(productID) == nil {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Selection toggle for product not in cart",
			zap.Int64("product_id", productID),
		)
		return
	}

	if s.selected.Has(productID) {
		s.selected.Remove(productID)
		s.insured.Remove(productID)
	} else {
		s.selected.Add(productID)
	}
	s.recalcTotalsLocked()
	s.mu.Unlock()

	s.persistSelection(ctx)
}

// ToggleInsurance is a silent no-op when the product is not selected;
// insurance is conditional on selection.
func (s *CartStore) ToggleInsurance(ctx context.Context, productID int64) {
	s.mu.Lock()
	if !s.selected.Has(productID) {
		s.mu.Unlock()
		return
	}

	if s.insured.Has(productID) {
		s.insured.Remove(productID)
	} else {
		s.insured.Add(productID)
	}
	s.recalcTotalsLocked()
	s.mu.Unlock()

	s.persistSelection(ctx)
}

// CalculateTotals recomputes and returns the checkout totals from the current
// items and selection. This is the only writer of the totals field.
func (s *CartStore) CalculateTotals() domain.CheckoutTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalcTotalsLocked()
	return s.totals
}

func (s *CartStore) Totals() domain.CheckoutTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *CartStore) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) Selection() domain.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SelectionState{
		SelectedItems:    s.selected.Clone(),
		InsuranceEnabled: s.insured.Clone(),
	}
}

func (s *CartStore) IsUpdating(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.updating[productID]
	return ok
}

// CheckoutSeed freezes the current selection into the material a checkout
// snapshot is built from.
func (s *CartStore) CheckoutSeed() (domain.IDSet, domain.IDSet, []domain.CheckoutItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Clone(), s.insured.Clone(), domain.CheckoutItemsFromCart(s.cart, s.selected)
}

func (s *CartStore) beginUpdate(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.updating[productID]; busy {
		return ErrUpdateInFlight
	}
	s.updating[productID] = struct{}{}
	return nil
}

func (s *CartStore) endUpdate(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.updating, productID)
}

func (s *CartStore) recalcTotals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalcTotalsLocked()
}

func (s *CartStore) recalcTotalsLocked() {
	s.totals = pricing.Calculate(pricing.FromCartItems(s.cart.Items), s.selected, s.insured)
}

// refreshCart replaces local cart state with a fresh server fetch. The result
// is discarded when a newer local mutation landed while the fetch was in
// flight.
func (s *CartStore) refreshCart(ctx context.Context) {
	s.mu.Lock()
	seq := s.mutationSeq
	s.mu.Unlock()

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrNotFound) {
			cart = domain.EmptyCart()
		} else {
			mylogger.Warn(ctx, s.logger, "Cart refresh failed, keeping optimistic state", zap.Error(err))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mutationSeq != seq {
		mylogger.Debug(ctx, s.logger, "Discarding stale cart refresh",
			zap.Uint64("fetched_at_seq", seq),
			zap.Uint64("current_seq", s.mutationSeq),
		)
		return
	}

	s.cart = cart
	ids := cart.ProductIDs()
	s.selected.Intersect(ids)
	s.insured.Intersect(s.selected)
	s.recalcTotalsLocked()
}

// loadSelection reads the persisted selection blob. Corrupt data is
// discarded and the key removed.
func (s *CartStore) loadSelection(ctx context.Context) *domain.SelectionState {
	data, err := s.local.Get(ctx, storage.KeyCartSelection)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			mylogger.Warn(ctx, s.logger, "Failed to read persisted selection", zap.Error(err))
		}
		return nil
	}

	var state domain.SelectionState
	if err := json.Unmarshal(data, &state); err != nil || state.SelectedItems == nil || state.InsuranceEnabled == nil {
		mylogger.Warn(ctx, s.logger, "Discarding corrupt persisted selection", zap.Error(err))
		if err := s.local.Delete(ctx, storage.KeyCartSelection); err != nil {
			mylogger.Warn(ctx, s.logger, "Failed to remove corrupt selection", zap.Error(err))
		}
		return nil
	}

	return &state
}

// persistSelection mirrors the selection sets to local storage as sorted
// arrays. Best-effort: failures are logged, never returned.
func (s *CartStore) persistSelection(ctx context.Context) {
	s.mu.Lock()
	state := domain.SelectionState{
		SelectedItems:    s.selected.Clone(),
		InsuranceEnabled: s.insured.Clone(),
	}
	s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to marshal selection", zap.Error(err))
		return
	}

	if err := s.local.Set(ctx, storage.KeyCartSelection, data); err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to persist selection", zap.Error(err))
	}
}
