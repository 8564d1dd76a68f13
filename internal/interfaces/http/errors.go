package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/DailyBooks-api/internal/application/dto"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: los errores específicos van antes que los genéricos que envuelven.
var errorMappings = []errorMapping{
	{domain.ErrLastShop, fiber.StatusConflict, "LAST_SHOP"},
	{domain.ErrPinTaken, fiber.StatusConflict, "PIN_TAKEN"},
	{domain.ErrAmbiguousPin, fiber.StatusConflict, "AMBIGUOUS_PIN"},
	{domain.ErrDuplicatePin, fiber.StatusConflict, "DUPLICATE_PIN"},
	{domain.ErrNoActiveShop, fiber.StatusConflict, "NO_ACTIVE_SHOP"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidPin, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotLoggedIn, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrPinNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT"},
	{domain.ErrRoleNotAllowed, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrAdminWithoutShop, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// errorStatus status HTTP y código para un error de los casos de uso.
func errorStatus(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse según el error de dominio.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
