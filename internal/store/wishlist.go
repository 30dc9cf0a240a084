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

type wishlistAPI interface {
	ListWishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddWishlistItem(ctx context.Context, productID int64) (*domain.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, id int64) error
}

// WishlistStore is the simplest of the optimistic caches: add and remove
// with exact snapshot rollback.
type WishlistStore struct {
	api    wishlistAPI
	logger *zap.Logger

	mu      sync.Mutex
	items   []domain.WishlistItem
	tempSeq int64
}

func NewWishlistStore(apiClient wishlistAPI, logger *zap.Logger) *WishlistStore {
	return &WishlistStore{api: apiClient, logger: logger}
}

func (s *WishlistStore) Load(ctx context.Context) error {
	items, err := s.api.ListWishlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}

func (s *WishlistStore) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]domain.WishlistItem, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s *WishlistStore) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Add is a no-op when the product is already wishlisted.
func (s *WishlistStore) Add(ctx context.Context, productID int64) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.mu.Unlock()
			return nil
		}
	}

	prev := make([]domain.WishlistItem, len(s.items))
	copy(prev, s.items)

	s.tempSeq--
	tempID := s.tempSeq
	s.items = append(s.items, domain.WishlistItem{
		ID:        tempID,
		ProductID: productID,
		AddedAt:   time.Now(),
	})
	s.mu.Unlock()

	created, err := s.api.AddWishlistItem(ctx, productID)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Wishlist add failed, rolling back",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		s.mu.Lock()
		s.items = prev
		s.mu.Unlock()
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == tempID {
			s.items[i] = *created
			break
		}
	}
	s.mu.Unlock()

	return nil
}

func (s *WishlistStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	prev := make([]domain.WishlistItem, len(s.items))
	copy(prev, s.items)

	kept := s.items[:0:0]
	for i := range s.items {
		if s.items[i].ID != id {
			kept = append(kept, s.items[i])
		}
	}
	s.items = kept
	s.mu.Unlock()

	if err := s.api.RemoveWishlistItem(ctx, id); err != nil {
		mylogger.Warn(ctx, s.logger, "Wishlist remove failed, rolling back",
			zap.Int64("item_id", id),
			zap.Error(err),
		)

		s.mu.Lock()
		s.items = prev
		s.mu.Unlock()
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	return nil
}
