package services

import (
	"deenha/internal/cart"
	"deenha/internal/checkout"

	"go.uber.org/zap"
)

// HandoffPublisher delivers checkout handoff events to the message broker.
type HandoffPublisher interface {
	PublishCheckoutHandoff(payload interface{}) error
}

// CheckoutService turns a cart into a chat handoff.
type CheckoutService struct {
	phone     string
	publisher HandoffPublisher
	logger    *zap.Logger
}

// NewCheckoutService creates a CheckoutService. publisher may be nil when
// no broker is configured.
func NewCheckoutService(phone string, publisher HandoffPublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		phone:     phone,
		publisher: publisher,
		logger:    logger,
	}
}

// Preview returns the message and link for the cart without changing it.
func (s *CheckoutService) Preview(c *cart.Cart) (string, string) {
	msg := checkout.Compose(c.Lines())
	return msg, checkout.HandoffURL(s.phone, msg)
}

// Handoff closes the cart and announces the order. The cart keeps its
// lines so the shopper can come back to it. Publishing failures are
// logged; the shopper still gets the link.
func (s *CheckoutService) Handoff(sessionID string, c *cart.Cart) checkout.HandoffEvent {
	ev := checkout.NewHandoffEvent(sessionID, s.phone, c.Lines())
	c.Close()

	if s.publisher != nil && len(ev.Items) > 0 {
		if err := s.publisher.PublishCheckoutHandoff(ev); err != nil {
			s.logger.Warn("failed to publish checkout handoff",
				zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	s.logger.Info("checkout handoff",
		zap.String("session_id", sessionID),
		zap.Int("items", len(ev.Items)),
		zap.Int("total", ev.Total))
	return ev
}
