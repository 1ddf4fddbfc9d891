package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-portal/internal/session"
)

const sessionKey = "auth_session"

// GuardMiddleware resolves sessions from cookies and applies route guards.
type GuardMiddleware struct {
	sessions *session.Manager
}

// NewGuardMiddleware constructs middleware.
func NewGuardMiddleware(sessions *session.Manager) *GuardMiddleware {
	return &GuardMiddleware{sessions: sessions}
}

// Resolve loads the session, if any, into the request context. It never
// rejects; guards decide downstream.
func (m *GuardMiddleware) Resolve(c *fiber.Ctx) error {
	if s, ok := m.sessions.Resolve(c); ok {
		c.Locals(sessionKey, s)
	}
	return c.Next()
}

// Require returns a handler enforcing the given requirement.
func (m *GuardMiddleware) Require(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, _ := SessionFromContext(c)
		decision := Decide(s, req)
		if !decision.Allow {
			return c.Redirect(decision.RedirectTo, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// SessionFromContext retrieves the resolved session.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	s, ok := val.(*session.Session)
	return s, ok
}
