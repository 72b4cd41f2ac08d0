package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/handlers"
	"github.com/fibear/portal/pkg/auth"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	sessions auth.SessionStore,
	authH *handlers.AuthHandler,
	account *handlers.AccountHandler,
	billing *handlers.BillingHandler,
	supportH *handlers.SupportHandler,
	newsH *handlers.NewsHandler,
	healthH *handlers.HealthHandler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", healthH.Health)
	v1.Get("/ready", healthH.Ready)

	a := v1.Group("/auth")
	a.Post("/login", authH.Login)
	a.Post("/signup", authH.SignUp)
	a.Post("/password-reset", authH.PasswordReset)
	a.Post("/logout", authH.Logout)
	a.Get("/session", authH.Session)

	// Everything past the auth screens needs a signed-in user.
	protected := v1.Group("/", RequireSession(sessions))

	acc := protected.Group("/account")
	acc.Get("/", account.Profile)
	acc.Put("/name", account.UpdateName)

	b := protected.Group("/billing")
	b.Get("/current", billing.Current)
	b.Get("/history", billing.History)

	s := protected.Group("/support")
	s.Post("/tickets", supportH.Submit)
	s.Get("/tickets", supportH.List)

	protected.Get("/news", newsH.Latest)
}
