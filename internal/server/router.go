package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// NewApp builds the Fiber application with all middleware and routes wired.
func NewApp(repo Repository) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))
	app.Use(requestLogger())

	h := NewHandler(repo)

	app.Get("/", h.Index)

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Get("/calendar", h.List)
	api.Get("/calendar/:date", h.ListByDate)
	api.Post("/calendar", h.Create)
	api.Put("/calendar/:id", h.Update)
	api.Delete("/calendar/:id", h.Delete)

	// Catch-all for unmatched routes.
	app.Use(func(c *fiber.Ctx) error {
		return Fail(c, fiber.StatusNotFound, "Endpoint not found", nil)
	})

	return app
}

// requestLogger tags each request with an ID (honoring a client-provided
// X-Request-ID) and logs method, path, status, and duration.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("X-Request-ID", id)

		start := time.Now()
		err := c.Next()
		log.Printf("[req] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
