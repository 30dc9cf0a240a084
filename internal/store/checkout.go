package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/internal/pricing"
	"github.com/NeerajGithb/furniture-client-sub000/internal/storage"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/mylogger"
)

type checkoutAPI interface {
	PlaceOrder(ctx context.Context, req *api.PlaceOrderRequest) (*domain.Order, error)
}

// CheckoutStore owns the snapshot frozen when the user enters checkout.
// After seeding, the snapshot evolves independently of the live cart: only
// address, payment method and insurance flags change, until the order is
// placed or the checkout is cancelled.
//
// The flow is a linear gate machine: snapshot → address → payment → place
// order. No gate can be skipped.
type CheckoutStore struct {
	api     checkoutAPI
	session storage.Storage
	logger  *zap.Logger

	mu       sync.Mutex
	snapshot *domain.CheckoutSnapshot
}

func NewCheckoutStore(apiClient checkoutAPI, session storage.Storage, logger *zap.Logger) *CheckoutStore {
	return &CheckoutStore{
		api:     apiClient,
		session: session,
		logger:  logger,
	}
}

func snapshotTotals(snap *domain.CheckoutSnapshot) domain.CheckoutTotals {
	return pricing.Calculate(
		pricing.FromCheckoutItems(snap.CartItems),
		snap.SelectedItems,
		snap.InsuranceEnabled,
	)
}

// SetCheckoutData freezes a new snapshot. Whatever totals the caller passed
// in are discarded and recomputed from the items and sets; the sets are
// normalized so insurance stays a subset of the selection.
func (s *CheckoutStore) SetCheckoutData(ctx context.Context, snap *domain.CheckoutSnapshot) error {
	if snap == nil || snap.SelectedItems == nil || snap.CartItems == nil {
		return ErrInvalidInput
	}

	frozen := snap.Clone()
	frozen.InsuranceEnabled.Intersect(frozen.SelectedItems)
	frozen.Totals = snapshotTotals(frozen)
	frozen.Timestamp = time.Now()

	s.mu.Lock()
	s.snapshot = frozen
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// GetCheckoutData returns the in-memory snapshot, falling back to session
// storage recovery. Recovered totals are never trusted: they are recomputed
// from the stored items and sets so a stale persisted blob cannot resurrect
// wrong amounts. Corrupt blobs are discarded and removed.
func (s *CheckoutStore) GetCheckoutData(ctx context.Context) *domain.CheckoutSnapshot {
	s.mu.Lock()
	if s.snapshot != nil {
		snap := s.snapshot.Clone()
		s.mu.Unlock()
		return snap
	}
	s.mu.Unlock()

	data, err := s.session.Get(ctx, storage.KeyCheckoutData)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			mylogger.Warn(ctx, s.logger, "Failed to read persisted checkout", zap.Error(err))
		}
		return nil
	}

	var recovered domain.CheckoutSnapshot
	if err := json.Unmarshal(data, &recovered); err != nil ||
		recovered.SelectedItems == nil || recovered.CartItems == nil {
		mylogger.Warn(ctx, s.logger, "Discarding corrupt persisted checkout", zap.Error(err))
		if err := s.session.Delete(ctx, storage.KeyCheckoutData); err != nil {
			mylogger.Warn(ctx, s.logger, "Failed to remove corrupt checkout", zap.Error(err))
		}
		return nil
	}

	if recovered.InsuranceEnabled == nil {
		recovered.InsuranceEnabled = domain.IDSet{}
	}
	recovered.InsuranceEnabled.Intersect(recovered.SelectedItems)
	recovered.Totals = snapshotTotals(&recovered)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		s.snapshot = &recovered
	}
	return s.snapshot.Clone()
}

// UpdateSelectedAddress patches the snapshot's address. Calling it without an
// active checkout is a contract violation: it logs a warning and changes
// nothing.
func (s *CheckoutStore) UpdateSelectedAddress(ctx context.Context, addressID int64) error {
	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Address update without active checkout")
		return ErrNoCheckout
	}

	s.snapshot.SelectedAddressID = addressID
	s.snapshot.Timestamp = time.Now()
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

func (s *CheckoutStore) UpdateSelectedPaymentMethod(ctx context.Context, method string) error {
	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Payment method update without active checkout")
		return ErrNoCheckout
	}

	s.snapshot.SelectedPaymentMethod = method
	s.snapshot.Timestamp = time.Now()
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// ToggleInsurance flips insurance for a selected product. Products outside
// the selection warn and no-op, keeping insurance a subset of the selection
// without throwing.
func (s *CheckoutStore) ToggleInsurance(ctx context.Context, productID int64) {
	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Insurance toggle without active checkout",
			zap.Int64("product_id", productID),
		)
		return
	}

	if !s.snapshot.SelectedItems.Has(productID) {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Insurance toggle for unselected product",
			zap.Int64("product_id", productID),
		)
		return
	}

	if s.snapshot.InsuranceEnabled.Has(productID) {
		s.snapshot.InsuranceEnabled.Remove(productID)
	} else {
		s.snapshot.InsuranceEnabled.Add(productID)
	}
	s.snapshot.Totals = snapshotTotals(s.snapshot)
	s.snapshot.Timestamp = time.Now()
	s.mu.Unlock()

	s.persist(ctx)
}

func (s *CheckoutStore) HasValidCheckout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot
	return snap != nil &&
		len(snap.SelectedItems) > 0 &&
		len(snap.CartItems) > 0 &&
		snap.Totals.SelectedQuantity > 0 &&
		snap.Totals.TotalAmount > 0
}

func (s *CheckoutStore) IsAddressSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot != nil && s.snapshot.SelectedAddressID != 0
}

func (s *CheckoutStore) IsPaymentMethodSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot != nil && s.snapshot.SelectedPaymentMethod != ""
}

func (s *CheckoutStore) CanProceedToPayment() bool {
	return s.HasValidCheckout() && s.IsAddressSelected()
}

func (s *CheckoutStore) CanPlaceOrder() bool {
	return s.CanProceedToPayment() && s.IsPaymentMethodSelected()
}

// PlaceOrder submits the snapshot as an order and destroys the checkout on
// success. It refuses to run unless every gate is open.
func (s *CheckoutStore) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	if !s.CanPlaceOrder() {
		return nil, ErrNoCheckout
	}

	s.mu.Lock()
	snap := s.snapshot.Clone()
	s.mu.Unlock()

	items := make([]domain.OrderItem, 0, len(snap.CartItems))
	for i := range snap.CartItems {
		it := &snap.CartItems[i]
		if !snap.SelectedItems.Has(it.ProductID) {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID:     it.ProductID,
			Name:          it.Name,
			Quantity:      it.Quantity,
			FinalPrice:    it.FinalPrice,
			OriginalPrice: it.OriginalPrice,
			ItemTotal:     it.ItemTotal,
		})
	}

	req := &api.PlaceOrderRequest{
		Items:             items,
		AddressID:         snap.SelectedAddressID,
		PaymentMethod:     snap.SelectedPaymentMethod,
		InsuredProductIDs: snap.InsuranceEnabled.Sorted(),
	}

	order, err := s.api.PlaceOrder(ctx, req)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Order placement failed", zap.Error(err))
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.ClearCheckout(ctx)
	return order, nil
}

// ClearCheckout wipes memory and session storage; the terminal transition
// back to the no-checkout state.
func (s *CheckoutStore) ClearCheckout(ctx context.Context) {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()

	if err := s.session.Delete(ctx, storage.KeyCheckoutData); err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to clear persisted checkout", zap.Error(err))
	}
}

// persist mirrors the snapshot to session storage, best-effort.
func (s *CheckoutStore) persist(ctx context.Context) {
	s.mu.Lock()
	snap := s.snapshot.Clone()
	s.mu.Unlock()

	if snap == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to marshal checkout", zap.Error(err))
		return
	}

	if err := s.session.Set(ctx, storage.KeyCheckoutData, data); err != nil {
		mylogger.Warn(ctx, s.logger, "Failed to persist checkout", zap.Error(err))
	}
}
