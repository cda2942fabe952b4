package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/domain"
)

// respondError traduce errores de dominio al contrato HTTP:
// validación -> 400, not-found -> 404, duplicado -> 409, resto -> 500.
// El cuerpo siempre es {success: false, message}.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Error(err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.Error("Duplicate resource"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("Internal server error"))
	}
}

// parseID lee el parámetro :id de la ruta como entero positivo.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("Invalid id parameter")
	}
	return id, nil
}
