// Package prototype is the bare product CRUD server the dashboard was
// first built against. It keeps the flat SQLite table layout and does no
// validation or auth.
package prototype

import (
	"fmt"
	"strconv"
	"strings"

	"deenha/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Product is a row of the prototype products table. Size is stored as
// comma separated text.
type Product struct {
	ID            int    `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string `gorm:"column:name"`
	Price         int    `gorm:"column:price"`
	OriginalPrice *int   `gorm:"column:originalPrice"`
	Image         string `gorm:"column:image"`
	Category      string `gorm:"column:category"`
	Size          string `gorm:"column:size"`
	Color         string `gorm:"column:color"`
	ColorHex      string `gorm:"column:colorHex"`
	Badge         string `gorm:"column:badge"`
	SoldCount     int    `gorm:"column:soldCount;default:0"`
}

func (Product) TableName() string {
	return "products"
}

// ProductJSON is the wire form of a prototype product.
type ProductJSON struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	OriginalPrice *int     `json:"originalPrice"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Size          []string `json:"size"`
	Color         string   `json:"color"`
	ColorHex      string   `json:"colorHex"`
	Badge         string   `json:"badge"`
	SoldCount     int      `json:"soldCount"`
}

func (p Product) toJSON() ProductJSON {
	sizes := []string{}
	if p.Size != "" {
		sizes = strings.Split(p.Size, ",")
	}
	return ProductJSON{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Category:      p.Category,
		Size:          sizes,
		Color:         p.Color,
		ColorHex:      p.ColorHex,
		Badge:         p.Badge,
		SoldCount:     p.SoldCount,
	}
}

// Migrate creates the products table when it is missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Product{}); err != nil {
		return fmt.Errorf("failed to migrate prototype products: %w", err)
	}
	return nil
}

type server struct {
	db     *gorm.DB
	images imagestore.Store
	logger *zap.Logger
}

// NewApp returns the prototype Fiber app. Uploaded images are written to
// images and served from /public/images when images is a LocalStore.
func NewApp(db *gorm.DB, images imagestore.Store, logger *zap.Logger) *fiber.App {
	s := &server{db: db, images: images, logger: logger}

	app := fiber.New(fiber.Config{AppName: "deenha-prototype"})
	app.Use(cors.New())
	if local, ok := images.(*imagestore.LocalStore); ok {
		app.Static("/public/images", local.Dir())
	}

	api := app.Group("/api")
	api.Get("/products", s.handleList)
	api.Post("/products", s.handleCreate)
	api.Delete("/products/:id", s.handleDelete)
	return app
}

func (s *server) handleList(c *fiber.Ctx) error {
	var rows []Product
	if err := s.db.WithContext(c.UserContext()).Find(&rows).Error; err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	out := make([]ProductJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toJSON())
	}
	return c.JSON(out)
}

// optionalInt parses a form value, returning nil when it is absent or not
// a number.
func optionalInt(v string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}

func (s *server) handleCreate(c *fiber.Ctx) error {
	row := Product{
		Name:          c.FormValue("name"),
		OriginalPrice: optionalInt(c.FormValue("originalPrice")),
		Category:      c.FormValue("category"),
		Size:          c.FormValue("size"),
		Color:         c.FormValue("color"),
		ColorHex:      c.FormValue("colorHex"),
		Badge:         c.FormValue("badge"),
	}
	if price := optionalInt(c.FormValue("price")); price != nil {
		row.Price = *price
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		defer f.Close()
		url, err := s.images.Save(c.UserContext(), fh.Filename, fh.Header.Get("Content-Type"), f)
		if err != nil {
			s.logger.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		row.Image = url
	}

	if err := s.db.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		s.logger.Error("create product failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"id": row.ID, "success": true})
}

func (s *server) handleDelete(c *fiber.Ctx) error {
	if err := s.db.WithContext(c.UserContext()).Delete(&Product{}, "id = ?", c.Params("id")).Error; err != nil {
		s.logger.Error("delete product failed", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
