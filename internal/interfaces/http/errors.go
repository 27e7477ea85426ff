package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
)

// Códigos de error del sobre {success:false, error:<código>}.
const (
	CodeValidation               = "VALIDATION_ERROR"
	CodePlanNotFound             = "PLAN_NOT_FOUND"
	CodeProductNotFound          = "PRODUCT_NOT_FOUND"
	CodeInvalidStatusForStart    = "INVALID_STATUS_FOR_START"
	CodeInvalidStatusForComplete = "INVALID_STATUS_FOR_COMPLETE"
	CodeInvalidStatusTransition  = "INVALID_STATUS_TRANSITION"
	CodeNoBOMData                = "NO_BOM_DATA"
	CodeInsufficientInventory    = "INSUFFICIENT_INVENTORY"
	CodeInvalidBody              = "INVALID_BODY"
	CodeInternal                 = "INTERNAL_ERROR"
)

var errorTable = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrValidation, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrInvalidStatusForStart, fiber.StatusBadRequest, CodeInvalidStatusForStart},
	{domain.ErrInvalidStatusForComplete, fiber.StatusBadRequest, CodeInvalidStatusForComplete},
	{domain.ErrInvalidStatusTransition, fiber.StatusBadRequest, CodeInvalidStatusTransition},
	{domain.ErrNoBOMData, fiber.StatusBadRequest, CodeNoBOMData},
	{domain.ErrInsufficientInventory, fiber.StatusBadRequest, CodeInsufficientInventory},
	{domain.ErrPlanNotFound, fiber.StatusNotFound, CodePlanNotFound},
	{domain.ErrProductNotFound, fiber.StatusNotFound, CodeProductNotFound},
}

// errorResponder traduce errores de dominio al sobre JSON.
type errorResponder struct {
	log          zerolog.Logger
	hideInternal bool
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInsufficientInventory, err.Error(), insufficient.Shortages))
	}
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return c.Status(e.status).JSON(dto.Fail(e.code, err.Error(), nil))
		}
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	msg := err.Error()
	if r.hideInternal {
		msg = "error interno del servidor"
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(CodeInternal, msg, nil))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalidBody, "cuerpo inválido", nil))
}
