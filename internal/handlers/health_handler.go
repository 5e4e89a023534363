package handlers

import (
	"time"

	"deenha/internal/catalog"
	"deenha/internal/session"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process and catalog health.
type HealthHandler struct {
	store    *catalog.Store
	sessions *session.Manager
	broker   bool
}

// NewHealthHandler creates a HealthHandler. broker tells whether a message
// broker is connected.
func NewHealthHandler(store *catalog.Store, sessions *session.Manager, broker bool) *HealthHandler {
	return &HealthHandler{store: store, sessions: sessions, broker: broker}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"catalog":  catalog.StateName(h.store.State()),
		"products": len(h.store.Current().Products),
		"sessions": h.sessions.Len(),
		"broker":   h.broker,
	})
}
