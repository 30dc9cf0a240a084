package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type WishlistHandler struct {
	wishlist *store.WishlistStore
	logger   *zap.Logger
}

func NewWishlistHandler(wishlist *store.WishlistStore, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, logger: logger}
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	if err := h.wishlist.Load(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.wishlist.Items())
}

type addWishlistInput struct {
	ProductID int64 `json:"product_id"`
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var input addWishlistInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in add wishlist item", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	if err := h.wishlist.Add(c.UserContext(), input.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.wishlist.Items())
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	if err := h.wishlist.Remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
