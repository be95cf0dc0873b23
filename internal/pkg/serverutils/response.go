// FILE: internal/pkg/serverutils/response.go
package serverutils

import (
	"errors"

	"bestill-chatbot-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	}
}

func errorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}

// statusForKind maps the application error taxonomy to HTTP statuses.
// ModelUnavailable and PersistenceConflict are transient: the caller is
// expected to resubmit the same input.
func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindModelUnavailable:
		return fiber.StatusBadGateway
	case apperror.KindPersistenceConflict:
		return fiber.StatusConflict
	case apperror.KindSinkFailure:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware translates errors bubbling out of controllers
// into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(errorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := statusForKind(apperror.KindOf(err))
		message := err.Error()
		if status == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(status).JSON(errorResponse(status, message))
	}
}
