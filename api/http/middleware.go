package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/api/http/handlers"
	"github.com/fibear/portal/api/http/presenter"
	"github.com/fibear/portal/pkg/auth"
)

// RequireSession guards routes that only make sense for a signed-in user.
// The resolved identity is stored in the request locals for handlers.
func RequireSession(sessions auth.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := sessions.Current(c.Context())
		if err != nil {
			return presenter.Error(c, http.StatusInternalServerError, "failed to read session")
		}
		if ident == nil {
			return presenter.Error(c, http.StatusUnauthorized, auth.MessageFor(auth.ErrNoActiveSession))
		}
		c.Locals(handlers.IdentityKey, ident)
		return c.Next()
	}
}
