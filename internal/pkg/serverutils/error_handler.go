package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-bookchat-be/internal/pkg/logger"
)

// NewErrorHandler returns the fiber error handler. Fiber errors keep their
// status code; everything else becomes a 500 with a generic body so internal
// detail never leaks to callers.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.Error("HTTP", "unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}
