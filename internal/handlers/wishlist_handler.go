package handlers

import (
	"deenha/internal/catalog"
	"deenha/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler serves the shopper's wishlist.
type WishlistHandler struct {
	store *catalog.Store
}

func NewWishlistHandler(store *catalog.Store) *WishlistHandler {
	return &WishlistHandler{store: store}
}

func (h *WishlistHandler) RegisterRoutes(router fiber.Router, sessionRequired fiber.Handler) {
	wishlistRoutes := router.Group("/wishlist", sessionRequired)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/:id/toggle", h.HandleToggle)
}

// HandleGetWishlist returns the wishlisted ids and the products they
// resolve to in the current catalog.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	s.Lock()
	ids := s.Wishlist.All()
	degraded := s.Wishlist.Degraded()
	s.Unlock()

	current := h.store.Current()
	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := current.Find(id); ok {
			products = append(products, p)
		}
	}
	return c.JSON(fiber.Map{
		"ids":      ids,
		"count":    len(ids),
		"products": products,
		"degraded": degraded,
	})
}

// HandleToggle flips membership of a product id. Ids are not checked
// against the catalog.
func (h *WishlistHandler) HandleToggle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	s := middleware.CurrentSession(c)
	s.Lock()
	defer s.Unlock()
	present := s.Wishlist.Toggle(c.UserContext(), id)
	return c.JSON(fiber.Map{
		"id":         id,
		"wishlisted": present,
		"count":      s.Wishlist.Count(),
		"degraded":   s.Wishlist.Degraded(),
	})
}
