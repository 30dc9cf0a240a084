package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type CatalogHandler struct {
	catalog *store.CatalogStore
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *store.CatalogStore, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	products, err := h.catalog.Products(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	product, err := h.catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Facets serves the filter sidebar data. Defaults are returned until the
// catalog store has completed a live refresh; the refresh is attempted on
// each call but its failure does not fail the response.
func (h *CatalogHandler) Facets(c *fiber.Ctx) error {
	if err := h.catalog.Refresh(c.UserContext()); err != nil {
		h.logger.Debug("catalog refresh failed, serving defaults", zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"categories":   h.catalog.Categories(),
		"materials":    h.catalog.Materials(),
		"price_ranges": h.catalog.PriceRanges(),
	})
}
