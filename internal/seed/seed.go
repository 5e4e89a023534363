package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deenha/internal/apperrors"
	"deenha/internal/models"
)

func intPtr(v int) *int { return &v }

// Products returns the launch collection. IDs are fixed so the fixture can
// be applied repeatedly.
func Products() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Eliza Premium Voal Scarf", Price: 189000, Image: "/images/image-1-m5KMww5a1eHrGa7j.jpg", Category: "Scarves", Size: []string{"110x110"}, Color: "Dusty Rose", ColorHex: "#D4A5A5", Badge: "new", SoldCount: intPtr(45)},
		{ID: 2, Name: "Luna Silk Scarf Collection", Price: 259000, Image: "/images/image-2-A85ewwvLJairzx6O.jpg", Category: "Scarves", Size: []string{"115x115"}, Color: "Sage Green", ColorHex: "#9CAF88", Badge: "bestseller", SoldCount: intPtr(128)},
		{ID: 3, Name: "Amira Cotton Bergo", Price: 149000, Image: "/images/bergo-A1aPwKX8JgfWab9g.png", Category: "Bergo", Size: []string{"S", "M", "L"}, Color: "Black", ColorHex: "#1A1A1A", SoldCount: intPtr(89)},
		{ID: 4, Name: "Zahra Elegant Dress", Price: 459000, OriginalPrice: intPtr(599000), Image: "/images/dress-YD0l6pXPkZSqM41l.png", Category: "Dresses", Size: []string{"S", "M", "L", "XL"}, Color: "Navy", ColorHex: "#2C3E50", Badge: "sale", SoldCount: intPtr(67)},
		{ID: 5, Name: "Fatima Premium Pray Set", Price: 389000, Image: "/images/prayset-mnlWv3KxDvf1NbQn.png", Category: "Pray Set", Size: []string{"All Size"}, Color: "White", ColorHex: "#FFFFFF", Badge: "bestseller", SoldCount: intPtr(234)},
		{ID: 6, Name: "Safa Printed Scarf", Price: 159000, Image: "/images/image-3-Awv4MMNq3XCKgVv3.jpg", Category: "Scarves", Size: []string{"110x110"}, Color: "Cream", ColorHex: "#F5F5DC", SoldCount: intPtr(56)},
		{ID: 7, Name: "Mariam Daily Bergo", Price: 129000, Image: "/images/image-product-2-d951KrVPy9CvgLle.jpg", Category: "Bergo", Size: []string{"S", "M", "L"}, Color: "Camel", ColorHex: "#C19A6B", Badge: "new", SoldCount: intPtr(34)},
		{ID: 8, Name: "Aisha Maxi Dress", Price: 529000, Image: "/images/image-product-4-Yan1yzVZD4UvpqW3.jpg", Category: "Dresses", Size: []string{"S", "M", "L", "XL"}, Color: "Burgundy", ColorHex: "#800020", SoldCount: intPtr(78)},
		{ID: 9, Name: "Nadia Travel Pray Set", Price: 349000, OriginalPrice: intPtr(429000), Image: "/images/image-product-3-YKb36NKv2VHk924E.jpg", Category: "Pray Set", Size: []string{"All Size"}, Color: "Grey", ColorHex: "#808080", Badge: "sale", SoldCount: intPtr(145)},
		{ID: 10, Name: "Khadijah Chiffon Scarf", Price: 179000, Image: "/images/heritage-design-Aq2WvB4Gj1flwP1L.jpg", Category: "Scarves", Size: []string{"120x120"}, Color: "Blush Pink", ColorHex: "#FFB6C1", SoldCount: intPtr(98)},
		{ID: 11, Name: "Yasmin Sport Bergo", Price: 139000, Image: "/images/bergo-A1aPwKX8JgfWab9g_943.png", Category: "Bergo", Size: []string{"S", "M", "L"}, Color: "Olive", ColorHex: "#808000", Badge: "new", SoldCount: intPtr(23)},
		{ID: 12, Name: "Halima Abaya Dress", Price: 679000, Image: "/images/image-product-A85ewr03pkt7BqEa.jpg", Category: "Dresses", Size: []string{"S", "M", "L", "XL"}, Color: "Black", ColorHex: "#1A1A1A", Badge: "bestseller", SoldCount: intPtr(189), Stock: intPtr(20)},
	}
}

// Posts returns the default feed.
func Posts() []models.InstagramPost {
	return []models.InstagramPost{
		{ID: 1, PostURL: "https://www.instagram.com/p/DUS3CqAASqn/", ImageURL: "/ig%20image/1.jpg"},
		{ID: 2, PostURL: "https://www.instagram.com/p/DULpUtgktmX/", ImageURL: "/ig%20image/2.jpg"},
		{ID: 3, PostURL: "https://www.instagram.com/p/DSZaBWSk7QF/", ImageURL: "/ig%20image/3.webp"},
		{ID: 4, PostURL: "https://www.instagram.com/p/DKboZc1zJ13/", ImageURL: "/ig%20image/4-thumbnail.png", VideoURL: "/ig%20image/4.mp4", IsVideo: true},
		{ID: 5, PostURL: "https://www.instagram.com/p/DSUfzZEE6CN/", ImageURL: "/ig%20image/5.webp"},
		{ID: 6, PostURL: "https://www.instagram.com/p/DSHVo4yk2F4/", ImageURL: "/ig%20image/6.webp"},
	}
}

// ProductWriter is the write side of a product repository.
type ProductWriter interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// PostWriter is the write side of a feed repository.
type PostWriter interface {
	GetByID(ctx context.Context, id int) (*models.InstagramPost, error)
	Create(ctx context.Context, post *models.InstagramPost) error
}

// Apply inserts the fixture rows that are not present yet.
func Apply(ctx context.Context, products ProductWriter, posts PostWriter) error {
	for _, p := range Products() {
		p := p
		if _, err := products.GetByID(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("look up product %d: %w", p.ID, err)
		}
		if err := products.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	for _, p := range Posts() {
		p := p
		if _, err := posts.GetByID(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("look up post %d: %w", p.ID, err)
		}
		if err := posts.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed post %d: %w", p.ID, err)
		}
	}
	return nil
}

// Accounts registers users and assigns dashboard roles.
type Accounts interface {
	RegisterUser(ctx context.Context, user *models.User) error
	AssignRole(ctx context.Context, userID, role string) error
}

// UserFinder looks up an existing account.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// EnsureAdmin makes sure an account for email exists and holds the admin
// role. An existing account keeps its password.
func EnsureAdmin(ctx context.Context, accounts Accounts, users UserFinder, email, password string) (*models.User, error) {
	user := &models.User{Email: email, Password: password}
	err := accounts.RegisterUser(ctx, user)
	if errors.Is(err, apperrors.ErrConflict) {
		user, err = users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	}
	if err != nil {
		return nil, fmt.Errorf("ensure admin %s: %w", email, err)
	}

	if err := accounts.AssignRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("assign admin role to %s: %w", email, err)
	}
	user.Role = models.RoleAdmin
	user.Password = ""
	return user, nil
}
