package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
)

type AddressHandler struct {
	addresses *store.AddressStore
	logger    *zap.Logger
}

func NewAddressHandler(addresses *store.AddressStore, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, logger: logger}
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	if err := h.addresses.Load(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.addresses.Addresses())
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var input domain.Address
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in create address", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}

	created, err := h.addresses.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid address id"})
	}

	var input domain.Address
	if err := c.BodyParser(&input); err != nil {
		h.logger.Warn("failed to parse body in update address", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "error parsing body"})
	}
	input.ID = id

	updated, err := h.addresses.Update(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid address id"})
	}

	if err := h.addresses.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
