package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fibear/portal/pkg/auth"
)

// IdentityKey is the request-locals key under which the session middleware
// stores the resolved identity.
const IdentityKey = "identity"

func identityFromLocals(c *fiber.Ctx) *auth.Identity {
	ident, _ := c.Locals(IdentityKey).(*auth.Identity)
	return ident
}
