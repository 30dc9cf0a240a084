package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type CartHandler struct {
	cart   *store.CartStore
	logger *zap.Logger
}

func NewCartHandler(cart *store.CartStore, logger *zap.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

type cartView struct {
	Cart      any `json:"cart"`
	Selection any `json:"selection"`
	Totals    any `json:"totals"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Cart:      h.cart.Cart(),
		Selection: h.cart.Selection(),
		Totals:    h.cart.Totals(),
	}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	if err := h.cart.Initialize(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view())
}

type addItemInput struct {
	ProductID       int64  `json:"product_id"`
	Quantity        int64  `json:"quantity"`
	SelectedVariant string `json:"selected_variant"`
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var input addItemInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in add item", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	if err := h.cart.AddToCart(c.UserContext(), input.ProductID, input.Quantity, input.SelectedVariant); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view())
}

type updateQuantityInput struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var input updateQuantityInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in update quantity", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	if err := h.cart.UpdateQuantity(c.UserContext(), productID, input.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view())
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	if err := h.cart.RemoveFromCart(c.UserContext(), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view())
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.cart.ClearCart(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view())
}

func (h *CartHandler) ToggleSelection(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	h.cart.ToggleItemSelection(c.UserContext(), productID)
	return c.JSON(h.view())
}

func (h *CartHandler) ToggleInsurance(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	h.cart.ToggleInsurance(c.UserContext(), productID)
	return c.JSON(h.view())
}

func (h *CartHandler) Totals(c *fiber.Ctx) error {
	return c.JSON(h.cart.Totals())
}
