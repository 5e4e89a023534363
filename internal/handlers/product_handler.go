package handlers

import (
	"fmt"

	"deenha/internal/models"
	"deenha/internal/services"
	"deenha/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles dashboard requests for products.
type ProductHandler struct {
	service *services.ProductService
	images  imagestore.Store
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, images imagestore.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
		logger:  logger,
	}
}

// RegisterReadRoutes registers routes open to every dashboard role.
func (h *ProductHandler) RegisterReadRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Get("/products/:id", h.HandleGetProductByID)
}

// RegisterWriteRoutes registers routes that change the catalog. guard runs
// before each of them.
func (h *ProductHandler) RegisterWriteRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/products", guard, h.HandleCreateProduct)
	router.Put("/products/:id", guard, h.HandleUpdateProduct)
	router.Delete("/products/:id", guard, h.HandleDeleteProduct)
	router.Post("/uploads", guard, h.HandleUpload)
}

func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, fmt.Sprintf("Could not retrieve product %d", id), err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = 0

	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, h.logger, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = id

	if err := h.service.UpdateProduct(c.UserContext(), &product); err != nil {
		return respondError(c, h.logger, "Could not update product", err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUpload stores the "image" form file and returns its URL for use
// as a product image.
func (h *ProductHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "Missing image file", err)
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "Unreadable image file", err)
	}
	defer f.Close()

	url, err := h.images.Save(c.UserContext(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not store image",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
