package serverutils

import (
	"errors"

	"ai-chatbot-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandlerMiddleware maps service errors onto the HTTP boundary. Unknown
// errors surface as a generic 500 without internal detail.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			return ctx.Status(appErr.Status).JSON(ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
				Fields:  appErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
			})
		}

		internal := apperror.Internal()
		return ctx.Status(internal.Status).JSON(ErrorResponse{
			Code:    internal.Code,
			Message: internal.Message,
		})
	}
}
