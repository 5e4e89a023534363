package services_test

import (
	"errors"
	"testing"

	"deenha/internal/cart"
	"deenha/internal/catalog"
	"deenha/internal/checkout"
	"deenha/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCheckoutHandoff(payload interface{}) error {
	args := m.Called(payload)
	return args.Error(0)
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.Add(catalog.Product{ID: 1, Name: "Scarf", Price: 100000}, "M", "Black", 2)
	return c
}

func TestCheckoutService_Preview(t *testing.T) {
	service := services.NewCheckoutService("6281919234222", nil, zap.NewNop())
	c := filledCart()

	msg, url := service.Preview(c)

	assert.Equal(t, checkout.Compose(c.Lines()), msg)
	assert.Equal(t, checkout.HandoffURL("6281919234222", msg), url)
	assert.True(t, c.IsOpen())
}

func TestCheckoutService_HandoffClosesCartAndPublishes(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCheckoutService("6281919234222", publisher, zap.NewNop())
	c := filledCart()

	publisher.On("PublishCheckoutHandoff", mock.MatchedBy(func(ev checkout.HandoffEvent) bool {
		return ev.SessionID == "sess-1" && ev.Total == 200000
	})).Return(nil).Once()

	ev := service.Handoff("sess-1", c)

	assert.False(t, c.IsOpen())
	assert.Equal(t, 2, c.Count(), "lines survive the handoff")
	assert.Contains(t, ev.URL, "https://wa.me/6281919234222?text=")
	publisher.AssertExpectations(t)
}

func TestCheckoutService_PublishFailureIsNotFatal(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCheckoutService("62811", publisher, zap.NewNop())
	publisher.On("PublishCheckoutHandoff", mock.Anything).Return(errors.New("broker gone")).Once()

	ev := service.Handoff("sess-1", filledCart())

	assert.Equal(t, 200000, ev.Total)
	publisher.AssertExpectations(t)
}

func TestCheckoutService_EmptyCartIsNotPublished(t *testing.T) {
	publisher := new(MockPublisher)
	service := services.NewCheckoutService("62811", publisher, zap.NewNop())

	ev := service.Handoff("sess-1", cart.New())

	assert.Equal(t, "Halo Deenha! Saya tertarik dengan produk Anda.", ev.Message)
	publisher.AssertNotCalled(t, "PublishCheckoutHandoff", mock.Anything)
}
