package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/mylogger"
)

type orderAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
}

// OrderStore caches placed orders and exposes read-only projections
// (summaries, price breakdown, timeline). The only client-side mutation is
// cancellation, applied optimistically against the status whitelist.
type OrderStore struct {
	api    orderAPI
	logger *zap.Logger

	mu         sync.Mutex
	orders     []domain.Order
	cancelling map[int64]struct{}
}

func NewOrderStore(apiClient orderAPI, logger *zap.Logger) *OrderStore {
	return &OrderStore{
		api:        apiClient,
		logger:     logger,
		cancelling: make(map[int64]struct{}),
	}
}

func (s *OrderStore) Load(ctx context.Context) error {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	return nil
}

func (s *OrderStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]domain.Order, len(s.orders))
	copy(cp, s.orders)
	return cp
}

// Get fetches one order and folds it into the cache.
func (s *OrderStore) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = *order
			replaced = true
			break
		}
	}
	if !replaced {
		s.orders = append(s.orders, *order)
	}
	s.mu.Unlock()

	return order, nil
}

func (s *OrderStore) Summaries() []domain.OrderSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]domain.OrderSummary, len(s.orders))
	for i := range s.orders {
		summaries[i] = s.orders[i].Summary()
	}
	return summaries
}

func (s *OrderStore) Breakdown(id int64) (domain.PriceBreakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			return s.orders[i].PriceBreakdown(), nil
		}
	}
	return domain.PriceBreakdown{}, ErrNotFound
}

func (s *OrderStore) Timeline(id int64) ([]domain.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			return s.orders[i].Timeline(), nil
		}
	}
	return nil, ErrNotFound
}

// Cancel marks the order cancelled optimistically, then reconciles with the
// server-returned record or restores the previous collection.
func (s *OrderStore) Cancel(ctx context.Context, id int64) error {
	s.mu.Lock()
	if _, busy := s.cancelling[id]; busy {
		s.mu.Unlock()
		return ErrUpdateInFlight
	}

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		mylogger.Warn(ctx, s.logger, "Cancel for unknown order", zap.Int64("order_id", id))
		return ErrNotFound
	}
	if !s.orders[idx].CanCancel() {
		s.mu.Unlock()
		return fmt.Errorf("order %d cannot be cancelled in status %q", id, s.orders[idx].Status)
	}

	s.cancelling[id] = struct{}{}

	prev := make([]domain.Order, len(s.orders))
	copy(prev, s.orders)

	now := time.Now()
	s.orders[idx].Status = domain.OrderStatusCancelled
	s.orders[idx].CancelledAt = &now
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.cancelling, id)
		s.mu.Unlock()
	}()

	cancelled, err := s.api.CancelOrder(ctx, id)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Order cancel failed, rolling back",
			zap.Int64("order_id", id),
			zap.Error(err),
		)

		s.mu.Lock()
		s.orders = prev
		s.mu.Unlock()
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == cancelled.ID {
			s.orders[i] = *cancelled
			break
		}
	}
	s.mu.Unlock()

	return nil
}

func (s *OrderStore) IsCancelling(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cancelling[id]
	return ok
}
