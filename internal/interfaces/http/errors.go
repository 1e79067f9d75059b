package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customers-api/internal/application/dto"
	"github.com/jhoicas/customers-api/internal/domain"
	"github.com/jhoicas/customers-api/pkg/logger"
)

// respondError traduce errores de dominio a respuestas HTTP. Lo que no es de dominio
// se registra y se responde como 500 sin exponer la causa.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *dto.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid input"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not found"})
	}
	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
}

// ErrorHandler es el fiber.ErrorHandler de la app: rutas inexistentes, métodos no
// permitidos y panics recuperados salen con el mismo cuerpo {"error": ...}.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return respondError(c, log, err)
		}
		switch fe.Code {
		case fiber.StatusNotFound:
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: "not found"})
		case fiber.StatusInternalServerError:
			return respondError(c, log, err)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: strings.ToLower(fe.Message)})
	}
}
