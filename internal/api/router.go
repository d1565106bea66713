package api

import (
	"errors"

	"medextract/docs"
	"medextract/internal/api/handlers"
	"medextract/internal/apperror"
	"medextract/internal/dto"
	"medextract/pkg/config"
	"medextract/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func SetupRouter(
	extractHandler *handlers.ExtractHandler,
	gate middleware.Gate,
	cfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	bodyLimit := cfg.BodyLimitMB * 1024 * 1024
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var appErr *apperror.Error
			var fiberErr *fiber.Error
			switch {
			case errors.As(err, &appErr):
				code = appErr.Kind.StatusCode()
			case errors.As(err, &fiberErr):
				code = fiberErr.Code
			}
			if code >= fiber.StatusInternalServerError {
				appLogger.Error("Request failed",
					zap.String("path", c.Path()),
					zap.Int("status", code),
					zap.Error(err),
				)
			}
			return c.Status(code).JSON(dto.ErrorResponse{Detail: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Swagger - the docs package registers itself in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", extractHandler.Root)
	app.Get("/health", extractHandler.Health)
	app.Post("/extract", middleware.Admission(gate, appLogger), extractHandler.Extract)

	return app
}
