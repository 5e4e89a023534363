package handlers

import (
	"fmt"
	"strings"

	"deenha/internal/apperrors"
	"deenha/internal/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const relatedLimit = 4

// ShopHandler serves the read-only storefront from the catalog snapshot.
type ShopHandler struct {
	store  *catalog.Store
	logger *zap.Logger
}

func NewShopHandler(store *catalog.Store, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{store: store, logger: logger}
}

// RegisterRoutes registers the public storefront routes.
func (h *ShopHandler) RegisterRoutes(router fiber.Router) {
	shop := router.Group("/shop")
	shop.Get("/products", h.HandleListProducts)
	shop.Get("/products/:id", h.HandleGetProduct)
	shop.Get("/categories", h.HandleCategories)
	router.Get("/feed", h.HandleFeed)
}

// RegisterAdminRoutes registers catalog maintenance routes behind guards.
func (h *ShopHandler) RegisterAdminRoutes(router fiber.Router, guards ...fiber.Handler) {
	router.Post("/catalog/refresh", append(guards, h.HandleRefresh)...)
}

// queryList collects repeated and comma separated values of key.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseCriteria(c *fiber.Ctx) (catalog.Criteria, catalog.SortKey, error) {
	criteria := catalog.DefaultCriteria()

	for _, name := range queryList(c, "category") {
		cat := catalog.Category(name)
		known := false
		for _, k := range catalog.Categories {
			if k == cat {
				known = true
				break
			}
		}
		if !known {
			return criteria, "", fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, name)
		}
		criteria.Categories = append(criteria.Categories, cat)
	}
	criteria.Sizes = queryList(c, "size")
	criteria.Colors = queryList(c, "color")

	criteria.PriceRange = [2]int{
		c.QueryInt("min_price", 0),
		c.QueryInt("max_price", catalog.DefaultMaxPrice),
	}
	if criteria.PriceRange[0] < 0 || criteria.PriceRange[0] > criteria.PriceRange[1] {
		return criteria, "", fmt.Errorf("%w: invalid price range %d-%d", apperrors.ErrValidation, criteria.PriceRange[0], criteria.PriceRange[1])
	}

	key, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		return criteria, "", fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return criteria, key, nil
}

// HandleListProducts returns the filtered, sorted product list.
func (h *ShopHandler) HandleListProducts(c *fiber.Ctx) error {
	criteria, key, err := parseCriteria(c)
	if err != nil {
		return badRequest(c, "Invalid filter", err)
	}

	state := h.store.State()
	view := h.store.View(criteria, key)
	failed, isFailed := state.(catalog.Failed)

	if view.Status == catalog.StatusNotLoaded && isFailed {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Catalog unavailable",
			"error":   failed.Reason,
			"status":  view.Status,
			"stale":   false,
		})
	}

	return c.JSON(fiber.Map{
		"status":        view.Status,
		"count":         len(view.Products),
		"activeFilters": view.ActiveFilters,
		"products":      view.Products,
		"stale":         isFailed,
	})
}

// HandleGetProduct returns one product and others from its category.
func (h *ShopHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	current := h.store.Current()
	product, ok := current.Find(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %d not found", id),
		})
	}
	return c.JSON(fiber.Map{
		"product": product,
		"related": catalog.Related(current.Products, product, relatedLimit),
	})
}

// HandleCategories returns product counts per category.
func (h *ShopHandler) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": catalog.CategoryCounts(h.store.Current().Products),
	})
}

// HandleFeed returns the feed posts of the current snapshot.
func (h *ShopHandler) HandleFeed(c *fiber.Ctx) error {
	posts := h.store.Current().Posts
	return c.JSON(fiber.Map{
		"count": len(posts),
		"posts": posts,
	})
}

// HandleRefresh reloads the catalog and reports the resulting state.
func (h *ShopHandler) HandleRefresh(c *fiber.Ctx) error {
	err := h.store.Refresh(c.UserContext())
	body := fiber.Map{
		"state":    catalog.StateName(h.store.State()),
		"products": len(h.store.Current().Products),
	}
	if err != nil {
		body["message"] = "Catalog refresh failed"
		body["error"] = err.Error()
		return c.Status(apperrors.Status(err)).JSON(body)
	}
	body["message"] = "Catalog refreshed"
	return c.JSON(body)
}
