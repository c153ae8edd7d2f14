package routes

import (
	"time"

	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/handlers"
	"github.com/dealdesk/dealdesk/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	boardHandler *handlers.BoardHandler,
	dealHandler *handlers.DealHandler,
	memoHandler *handlers.MemoHandler,
	interactionHandler *handlers.InteractionHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// JWT is attached per route/prefix so it never shadows the public
	// routes above.
	jwt := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", jwt, authHandler.Logout)
	api.Get("/auth/me", jwt, authHandler.Me)
	api.Get("/users", jwt, authHandler.ListUsers)
	api.Put("/users/me", jwt, authHandler.UpdateMe)

	boards := api.Group("/boards", jwt)
	boards.Get("/", boardHandler.List)
	boards.Post("/", boardHandler.Create)
	boards.Get("/:id", boardHandler.Get)
	boards.Put("/:id", boardHandler.Update)
	boards.Delete("/:id", boardHandler.Delete)
	boards.Post("/:id/members/:user_id", boardHandler.AddMember)
	boards.Delete("/:id/members/:user_id", boardHandler.RemoveMember)

	deals := api.Group("/deals", jwt)
	deals.Get("/", dealHandler.List)
	deals.Post("/", dealHandler.Create)
	deals.Get("/:id", dealHandler.Get)
	deals.Put("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)
	deals.Get("/:id/activities", dealHandler.Activities)
	deals.Post("/:id/comments", interactionHandler.CreateComment)
	deals.Get("/:id/comments", interactionHandler.ListComments)
	deals.Post("/:id/votes", interactionHandler.CreateVote)
	deals.Get("/:id/votes", interactionHandler.ListVotes)

	memos := api.Group("/memos", jwt)
	memos.Get("/deal/:deal_id", memoHandler.Get)
	memos.Put("/deal/:deal_id", memoHandler.Update)
	memos.Get("/deal/:deal_id/versions", memoHandler.ListVersions)
	memos.Get("/deal/:deal_id/version/:version", memoHandler.GetVersion)
}
