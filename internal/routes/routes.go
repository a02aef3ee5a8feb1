package routes

import (
	"time"

	"corvus/internal/config"
	"corvus/internal/graphql"
	"corvus/internal/handlers"
	"corvus/internal/metrics"
	"corvus/internal/middleware"
	"corvus/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	itemHandler *handlers.ItemHandler,
	categoryHandler *handlers.CategoryHandler,
	linkHandler *handlers.LinkHandler,
	gqlHandler *graphql.Handler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	// Logout and me serve anonymous callers too: logout always clears the
	// cookie, me answers {"user": null}.
	auth.Get("/logout", middleware.LoadSession(authService), authHandler.Logout)
	auth.Get("/me", middleware.LoadSession(authService), authHandler.Me)

	// Wishlist — valid session required on every route
	wishlist := api.Group("/wishlist", middleware.RequireSession(authService))
	wishlist.Get("/", itemHandler.GetWishlist)
	wishlist.Get("/items", itemHandler.ListItems)
	wishlist.Post("/items", itemHandler.CreateItem)
	wishlist.Put("/items/:id", itemHandler.UpdateItem)
	wishlist.Delete("/items/:id", itemHandler.DeleteItem)

	wishlist.Post("/categories", categoryHandler.Create)
	wishlist.Patch("/categories/:id", categoryHandler.Update)
	wishlist.Delete("/categories/:id", categoryHandler.Delete)

	wishlist.Get("/items/:itemId/links", linkHandler.List)
	wishlist.Post("/items/:itemId/links", linkHandler.Create)
	wishlist.Patch("/items/:itemId/links/:linkId", linkHandler.Update)
	wishlist.Delete("/items/:itemId/links/:linkId", linkHandler.Delete)
	wishlist.Post("/items/:itemId/links/:linkId/primary", linkHandler.SetPrimary)

	// GraphQL shares the session middleware; register/login/me work without one.
	app.Post("/graphql", middleware.LoadSession(authService), gqlHandler.Serve())

	app.Get("/metrics", metrics.Handler())
}
