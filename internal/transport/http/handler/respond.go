package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
	"github.com/NeerajGithb/furniture-client-sub000/pkg/validate"
)

// respondError maps store and backend errors onto HTTP statuses. Validation
// failures carry the per-field messages.
func respondError(c *fiber.Ctx, err error) error {
	var ve *validate.Error
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	}

	var se *api.StatusError
	if errors.As(err, &se) {
		return c.Status(se.Code).JSON(fiber.Map{"error": se.Message})
	}

	switch {
	case errors.Is(err, store.ErrUpdateInFlight), errors.Is(err, store.ErrNoCheckout):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, api.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidQuantity), errors.Is(err, store.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, api.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}
