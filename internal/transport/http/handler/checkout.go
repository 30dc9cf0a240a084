package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type CheckoutHandler struct {
	cart     *store.CartStore
	checkout *store.CheckoutStore
	logger   *zap.Logger
}

func NewCheckoutHandler(cart *store.CartStore, checkout *store.CheckoutStore, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, checkout: checkout, logger: logger}
}

type checkoutView struct {
	Checkout            *domain.CheckoutSnapshot `json:"checkout"`
	HasValidCheckout    bool                     `json:"has_valid_checkout"`
	CanProceedToPayment bool                     `json:"can_proceed_to_payment"`
	CanPlaceOrder       bool                     `json:"can_place_order"`
}

func (h *CheckoutHandler) view(c *fiber.Ctx) checkoutView {
	return checkoutView{
		Checkout:            h.checkout.GetCheckoutData(c.UserContext()),
		HasValidCheckout:    h.checkout.HasValidCheckout(),
		CanProceedToPayment: h.checkout.CanProceedToPayment(),
		CanPlaceOrder:       h.checkout.CanPlaceOrder(),
	}
}

// Enter seeds a checkout snapshot from the cart's current selection. This is
// the only way into the checkout flow.
func (h *CheckoutHandler) Enter(c *fiber.Ctx) error {
	selected, insured, items := h.cart.CheckoutSeed()

	snap := &domain.CheckoutSnapshot{
		SelectedItems:    selected,
		InsuranceEnabled: insured,
		CartItems:        items,
	}

	if err := h.checkout.SetCheckoutData(c.UserContext(), snap); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view(c))
}

func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.view(c))
}

type selectAddressInput struct {
	AddressID int64 `json:"address_id"`
}

func (h *CheckoutHandler) SelectAddress(c *fiber.Ctx) error {
	var input selectAddressInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in select address", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	if err := h.checkout.UpdateSelectedAddress(c.UserContext(), input.AddressID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view(c))
}

type selectPaymentInput struct {
	PaymentMethod string `json:"payment_method"`
}

func (h *CheckoutHandler) SelectPaymentMethod(c *fiber.Ctx) error {
	var input selectPaymentInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in select payment method", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	if err := h.checkout.UpdateSelectedPaymentMethod(c.UserContext(), input.PaymentMethod); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view(c))
}

func (h *CheckoutHandler) ToggleInsurance(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	h.checkout.ToggleInsurance(c.UserContext(), productID)
	return c.JSON(h.view(c))
}

func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	order, err := h.checkout.PlaceOrder(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	h.logger.Info("order placed", zap.Int64("order_id", order.ID))
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	h.checkout.ClearCheckout(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}
