package middleware

import (
	"context"

	"medextract/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Gate hands out admission slots. Acquire blocks until one is free.
type Gate interface {
	Acquire(ctx context.Context) error
}

// Admission holds each request until the gate admits it. Requests are never
// turned away because the gate is full, only when the wait is abandoned.
func Admission(gate Gate, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.Acquire(c.UserContext()); err != nil {
			logger.Warn("Request not admitted",
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return apperror.Wrap(apperror.KindUnavailable, err, "Server is busy, try again later")
		}
		return c.Next()
	}
}
