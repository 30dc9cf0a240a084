package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type OrderHandler struct {
	orders *store.OrderStore
	logger *zap.Logger
}

func NewOrderHandler(orders *store.OrderStore, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	if err := h.orders.Load(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.orders.Summaries())
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}

	order, err := h.orders.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	breakdown, _ := h.orders.Breakdown(id)
	timeline, _ := h.orders.Timeline(id)

	return c.JSON(fiber.Map{
		"order":     order,
		"breakdown": breakdown,
		"timeline":  timeline,
	})
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}

	if err := h.orders.Cancel(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	h.logger.Info("order cancelled", zap.Int64("order_id", id))
	return c.SendStatus(fiber.StatusNoContent)
}
