package handlers

import (
	"fmt"

	"deenha/internal/cart"
	"deenha/internal/catalog"
	"deenha/internal/checkout"
	"deenha/internal/middleware"
	"deenha/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler serves the shopper's cart.
type CartHandler struct {
	store    *catalog.Store
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCartHandler(store *catalog.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the cart routes behind the session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, sessionRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", sessionRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:index", h.HandleRemoveItem)
	cartRoutes.Post("/open", h.HandleOpen)
	cartRoutes.Post("/close", h.HandleClose)
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func cartBody(s *session.Session) fiber.Map {
	return fiber.Map{
		"items":          s.Cart.Lines(),
		"count":          s.Cart.Count(),
		"total":          s.Cart.Total(),
		"formattedTotal": "Rp " + checkout.FormatRupiah(s.Cart.Total()),
		"open":           s.Cart.IsOpen(),
	}
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	s.Lock()
	defer s.Unlock()
	return c.JSON(cartBody(s))
}

// HandleAddItem adds a product variant to the cart. Products with an
// explicit stock cannot go above it; unknown stock is unrestricted.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, h.logger, "Validation failed", err)
	}

	product, ok := h.store.Current().Find(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %d not found", req.ProductID),
		})
	}
	if req.Size == "" && len(product.Size) == 1 {
		req.Size = product.Size[0]
	}
	if len(product.Size) > 0 && !product.HasSize(req.Size) {
		return badRequest(c, fmt.Sprintf("Size %q is not offered for %s", req.Size, product.Name), nil)
	}
	if req.Color == "" {
		req.Color = product.Color
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	s := middleware.CurrentSession(c)
	s.Lock()
	defer s.Unlock()

	if !product.CanPurchase(s.Cart.QuantityOf(product.ID, req.Size, req.Color) + qty) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("Not enough stock for %s", product.Name),
			"stock":   product.Stock,
		})
	}

	s.Cart.Add(product, req.Size, req.Color, qty)
	return c.Status(fiber.StatusCreated).JSON(cartBody(s))
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return badRequest(c, "Invalid line index", err)
	}
	s := middleware.CurrentSession(c)
	s.Lock()
	defer s.Unlock()
	s.Cart.Remove(index)
	return c.JSON(cartBody(s))
}

func (h *CartHandler) HandleOpen(c *fiber.Ctx) error {
	return h.setOpen(c, (*cart.Cart).Open)
}

func (h *CartHandler) HandleClose(c *fiber.Ctx) error {
	return h.setOpen(c, (*cart.Cart).Close)
}

func (h *CartHandler) setOpen(c *fiber.Ctx, fn func(*cart.Cart)) error {
	s := middleware.CurrentSession(c)
	s.Lock()
	defer s.Unlock()
	fn(s.Cart)
	return c.JSON(cartBody(s))
}
