package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/notedeck/notedeck/internal/config"
	"github.com/notedeck/notedeck/internal/handlers"
	"github.com/notedeck/notedeck/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	usersHandler *handlers.UsersHandler,
	notesHandler *handlers.NotesHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Login limiter: 10 req/min per IP
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/", authHandler.Login)
	auth.Get("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	// User management is restricted to managers and admins.
	users := app.Group("/users", middleware.JWTProtected(cfg), middleware.RequireRoles("Manager", "Admin"))
	users.Get("/", usersHandler.List)
	users.Post("/", usersHandler.Create)
	users.Patch("/", usersHandler.Update)
	users.Delete("/", usersHandler.Delete)

	notes := app.Group("/notes", middleware.JWTProtected(cfg))
	notes.Get("/", notesHandler.List)
	notes.Post("/", notesHandler.Create)
	notes.Patch("/", notesHandler.Update)
	notes.Delete("/", notesHandler.Delete)
}
