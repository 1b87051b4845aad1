package serverutils

import (
	"errors"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/pkg/chat/autosend"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var fe *fiber.Error
	var ve *ValidationError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, constant.ErrSessionNotFound),
		errors.Is(err, constant.ErrNoActiveSession),
		errors.Is(err, autosend.ErrTokenNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, constant.ErrSessionBusy):
		return fiber.StatusConflict
	case errors.Is(err, autosend.ErrTokenConsumed):
		return fiber.StatusGone
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}

		body := ErrorResponse(code, message)
		var ve *ValidationError
		if errors.As(err, &ve) {
			body["data"] = ve.Fields
		}
		return ctx.Status(code).JSON(body)
	}
}
