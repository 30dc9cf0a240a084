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

type catalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	ListPriceRanges(ctx context.Context) ([]domain.PriceRange, error)
}

// Built-in catalog facets served until the first successful live fetch, so
// the filter UI renders immediately.
var (
	defaultCategories = []domain.Category{
		{ID: 1, Name: "Sofas", Slug: "sofas"},
		{ID: 2, Name: "Beds", Slug: "beds"},
		{ID: 3, Name: "Tables", Slug: "tables"},
		{ID: 4, Name: "Chairs", Slug: "chairs"},
		{ID: 5, Name: "Storage", Slug: "storage"},
	}

	defaultMaterials = []domain.Material{
		{ID: 1, Name: "Wood"},
		{ID: 2, Name: "Metal"},
		{ID: 3, Name: "Fabric"},
		{ID: 4, Name: "Leather"},
		{ID: 5, Name: "Rattan"},
	}

	defaultPriceRanges = []domain.PriceRange{
		{Label: "Under 1,000", Min: 0, Max: 1000},
		{Label: "1,000 - 5,000", Min: 1000, Max: 5000},
		{Label: "5,000 - 20,000", Min: 5000, Max: 20000},
		{Label: "20,000 and up", Min: 20000, Max: 0},
	}
)

type cachedProduct struct {
	product   domain.Product
	fetchedAt time.Time
}

// CatalogStore is the read-mostly product/facet cache. Facets follow the
// default-then-live-fetch rule; products are cached per id with a TTL. The
// store never mutates product data.
type CatalogStore struct {
	api      catalogAPI
	logger   *zap.Logger
	cacheTTL time.Duration

	mu          sync.Mutex
	products    map[int64]cachedProduct
	categories  []domain.Category
	materials   []domain.Material
	priceRanges []domain.PriceRange
	live        bool
}

func NewCatalogStore(apiClient catalogAPI, logger *zap.Logger, cacheTTL time.Duration) *CatalogStore {
	return &CatalogStore{
		api:      apiClient,
		logger:   logger,
		cacheTTL: cacheTTL,
		products: make(map[int64]cachedProduct),
	}
}

// Refresh replaces the default facets with live ones. Until it succeeds the
// defaults keep serving.
func (s *CatalogStore) Refresh(ctx context.Context) error {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Category fetch failed, serving defaults", zap.Error(err))
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	materials, err := s.api.ListMaterials(ctx)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Material fetch failed, serving defaults", zap.Error(err))
		return fmt.Errorf("failed to fetch materials: %w", err)
	}

	ranges, err := s.api.ListPriceRanges(ctx)
	if err != nil {
		mylogger.Warn(ctx, s.logger, "Price range fetch failed, serving defaults", zap.Error(err))
		return fmt.Errorf("failed to fetch price ranges: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.materials = materials
	s.priceRanges = ranges
	s.live = true
	return nil
}

func (s *CatalogStore) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return defaultCategories
	}
	return s.categories
}

func (s *CatalogStore) Materials() []domain.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return defaultMaterials
	}
	return s.materials
}

func (s *CatalogStore) PriceRanges() []domain.PriceRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return defaultPriceRanges
	}
	return s.priceRanges
}

// GetProduct serves from the per-id cache while fresh, otherwise fetches and
// re-caches.
func (s *CatalogStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	cached, ok := s.products[id]
	s.mu.Unlock()

	if ok && time.Since(cached.fetchedAt) < s.cacheTTL {
		product := cached.product
		return &product, nil
	}

	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	s.mu.Lock()
	s.products[id] = cachedProduct{product: *product, fetchedAt: time.Now()}
	s.mu.Unlock()

	return product, nil
}

// Products always hits the backend, refreshing the per-id cache as a side
// effect.
func (s *CatalogStore) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	for i := range products {
		s.products[products[i].ID] = cachedProduct{product: products[i], fetchedAt: now}
	}
	s.mu.Unlock()

	return products, nil
}
