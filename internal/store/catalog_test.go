package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type CatalogSuite struct {
	suite.Suite

	ctx     context.Context
	backend *fakeCatalogBackend
	catalog *store.CatalogStore
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = newFakeCatalogBackend()
	s.catalog = store.NewCatalogStore(s.backend, zap.NewNop(), time.Minute)

	s.backend.products[1] = domain.Product{ID: 1, Name: "Oak Bed", FinalPrice: 1000, InStock: true}
	s.backend.categories = []domain.Category{{ID: 10, Name: "Outdoor", Slug: "outdoor"}}
	s.backend.materials = []domain.Material{{ID: 10, Name: "Bamboo"}}
	s.backend.priceRanges = []domain.PriceRange{{Label: "Any", Min: 0, Max: 0}}
}

func (s *CatalogSuite) TestFacets_DefaultsServeBeforeRefresh() {
	categories := s.catalog.Categories()
	s.Require().Len(categories, 5)
	s.Require().Equal("sofas", categories[0].Slug)
	s.Require().Len(s.catalog.Materials(), 5)
	s.Require().Len(s.catalog.PriceRanges(), 4)
}

func (s *CatalogSuite) TestFacets_RefreshReplacesDefaults() {
	s.Require().NoError(s.catalog.Refresh(s.ctx))

	categories := s.catalog.Categories()
	s.Require().Len(categories, 1)
	s.Require().Equal("outdoor", categories[0].Slug)
	s.Require().Equal("Bamboo", s.catalog.Materials()[0].Name)
	s.Require().Len(s.catalog.PriceRanges(), 1)
}

func (s *CatalogSuite) TestFacets_FailedRefreshKeepsDefaults() {
	s.backend.failFacets = true

	s.Require().Error(s.catalog.Refresh(s.ctx))
	s.Require().Len(s.catalog.Categories(), 5)
}

func (s *CatalogSuite) TestGetProduct_CachesWithinTTL() {
	p, err := s.catalog.GetProduct(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal("Oak Bed", p.Name)

	_, err = s.catalog.GetProduct(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(1, s.backend.getProductCalls, "second read served from cache")
}

func (s *CatalogSuite) TestGetProduct_ExpiredTTLRefetches() {
	expiring := store.NewCatalogStore(s.backend, zap.NewNop(), time.Nanosecond)

	_, err := expiring.GetProduct(s.ctx, 1)
	s.Require().NoError(err)
	time.Sleep(time.Millisecond)
	_, err = expiring.GetProduct(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(2, s.backend.getProductCalls)
}

func (s *CatalogSuite) TestGetProduct_Unknown() {
	_, err := s.catalog.GetProduct(s.ctx, 404)
	s.Require().Error(err)
}

func (s *CatalogSuite) TestProducts_SeedsPerIDCache() {
	list, err := s.catalog.Products(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)

	_, err = s.catalog.GetProduct(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Zero(s.backend.getProductCalls, "list warmed the cache")
}
