package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edgylearn-api/internal/session"
	"github.com/noah-isme/edgylearn-api/internal/utils"
)

const sessionLocal = "session"

// SessionLookup resolves an open session by id.
type SessionLookup interface {
	Get(id string) (*session.Session, error)
}

// RequireSession loads the session named by the token's sid claim. It must run
// after JWTProtected. Tokens of closed or reaped sessions are rejected.
func RequireSession(sessions SessionLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals("session_id").(string)
		if id == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "session required")
		}

		sess, err := sessions.Get(id)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to load session")
		}

		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// SessionFromContext returns the session loaded by RequireSession.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	sess, ok := c.Locals(sessionLocal).(*session.Session)
	return sess, ok && sess != nil
}
