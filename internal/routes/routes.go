package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	Tours  *handlers.TourHandler
	Review *handlers.ReviewHandler
	Health *handlers.HealthHandler
}

func Setup(app *fiber.App, h Handlers, tokens *services.TokenService, auth *services.AuthService) {
	api := app.Group("/api")

	// General API rate limiter: 100 req/min per IP
	api.Use(middleware.RateLimit(100, time.Minute))

	api.Get("/health", h.Health.Check)

	v1 := api.Group("/v1")
	protect := middleware.Protect(tokens, auth)

	// Sign-in endpoints get a stricter limit
	users := v1.Group("/users")
	credentials := middleware.RateLimit(10, time.Minute)
	users.Post("/signup", credentials, h.Auth.Signup)
	users.Post("/login", credentials, h.Auth.Login)

	users.Get("/me", protect, h.Auth.Me)
	users.Patch("/updateMyPassword", protect, h.Auth.UpdatePassword)
	users.Get("/", protect, middleware.RestrictTo(models.RoleAdmin), h.Auth.ListUsers)

	tours := v1.Group("/tours")
	tourWriters := middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide)
	tours.Get("/", h.Tours.List)
	tours.Get("/:id", h.Tours.Get)
	tours.Post("/", protect, tourWriters, h.Tours.Create)
	tours.Patch("/:id", protect, tourWriters, h.Tours.Update)
	tours.Delete("/:id", protect, tourWriters, h.Tours.Delete)

	tours.Get("/:id/reviews", h.Review.List)
	tours.Post("/:id/reviews", protect, middleware.RestrictTo(models.RoleUser), h.Review.Create)
}
