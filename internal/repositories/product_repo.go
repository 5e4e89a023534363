package repositories

import (
	"context"

	"deenha/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
}

// PostRepository defines the interface for feed post data access.
type PostRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.InstagramPost, error)
	GetByID(ctx context.Context, id int) (*models.InstagramPost, error)
	Create(ctx context.Context, post *models.InstagramPost) error
	Delete(ctx context.Context, id int) error
}
