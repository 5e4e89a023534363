package handlers

import (
	"deenha/internal/middleware"
	"deenha/internal/services"
	"deenha/internal/session"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler hands the cart over to chat checkout.
type CheckoutHandler struct {
	service  *services.CheckoutService
	sessions *session.Manager
}

func NewCheckoutHandler(service *services.CheckoutService, sessions *session.Manager) *CheckoutHandler {
	return &CheckoutHandler{service: service, sessions: sessions}
}

func (h *CheckoutHandler) RegisterRoutes(router fiber.Router, sessionRequired fiber.Handler) {
	checkoutRoutes := router.Group("/checkout", sessionRequired)
	checkoutRoutes.Get("/message", h.HandleMessage)
	checkoutRoutes.Post("/handoff", h.HandleHandoff)
	router.Delete("/session", sessionRequired, h.HandleEndSession)
}

// HandleMessage previews the order message and chat link.
func (h *CheckoutHandler) HandleMessage(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	s.Lock()
	msg, url := h.service.Preview(s.Cart)
	s.Unlock()
	return c.JSON(fiber.Map{
		"message": msg,
		"url":     url,
	})
}

// HandleHandoff closes the cart and returns the chat link to open.
func (h *CheckoutHandler) HandleHandoff(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	s.Lock()
	ev := h.service.Handoff(s.ID, s.Cart)
	s.Unlock()
	return c.JSON(fiber.Map{
		"message": ev.Message,
		"url":     ev.URL,
		"total":   ev.Total,
		"items":   len(ev.Items),
	})
}

// HandleEndSession drops the cart. The wishlist stays in storage.
func (h *CheckoutHandler) HandleEndSession(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	h.sessions.End(s.ID)
	return c.SendStatus(fiber.StatusNoContent)
}
