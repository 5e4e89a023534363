package middleware

import (
	"deenha/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionHeader carries the shopper session id in both directions.
const SessionHeader = "X-Session-ID"

// SessionRequired attaches the shopper session to the request, starting a
// new one when the header is missing or unknown. The id is echoed back.
func SessionRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, _ := sessions.GetOrStart(c.UserContext(), c.Get(SessionHeader))
		c.Set(SessionHeader, s.ID)
		c.Locals("session", s)
		return c.Next()
	}
}

// CurrentSession returns the session set by SessionRequired.
func CurrentSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals("session").(*session.Session)
	return s
}
