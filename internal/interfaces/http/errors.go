package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

// StatusFor traduce el tipo de error de dominio a código HTTP.
func StatusFor(k domain.Kind) int {
	switch k {
	case domain.KindNotFound, domain.KindVariantNotFound, domain.KindBoxNotFound,
		domain.KindStoreNotFound, domain.KindItemNotFound:
		return fiber.StatusNotFound
	case domain.KindDuplicate, domain.KindDuplicateBoxCode, domain.KindDuplicateVariant,
		domain.KindAlreadyCheckedIn, domain.KindInsufficientStock, domain.KindVariantInUse, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindInvalidQuantity, domain.KindInvalidAttributes:
		return fiber.StatusBadRequest
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// ToErrorResponse construye el cuerpo {code, message, details} desde un error de dominio.
func ToErrorResponse(de *domain.Error) *dto.ErrorResponse {
	if de == nil {
		return nil
	}
	out := &dto.ErrorResponse{Code: string(de.Kind), Message: de.Message}
	if de.VariantID != "" || de.StoreID != "" || de.BoxID != "" || de.ItemID != "" || de.Code != "" || de.Kind == domain.KindInsufficientStock {
		d := &dto.ErrorDetails{
			VariantID: de.VariantID,
			StoreID:   de.StoreID,
			BoxID:     de.BoxID,
			ItemID:    de.ItemID,
			Code:      de.Code,
			Requested: de.Requested,
		}
		// available=0 es información útil en stock insuficiente
		if de.Kind == domain.KindInsufficientStock {
			available := de.Available
			d.Available = &available
		}
		out.Details = d
	}
	return out
}

// respondError escribe el error con su código HTTP. Los INTERNAL se registran con el detalle
// y al cliente solo llega el mensaje genérico.
func respondError(c *fiber.Ctx, err error) error {
	de := domain.AsError(err)
	status := StatusFor(de.Kind)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return c.Status(status).JSON(ToErrorResponse(de))
}

// badRequest respuesta 400 para cuerpos o parámetros inválidos detectados en el handler.
func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
