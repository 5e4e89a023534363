package services

import (
	"context"
	"errors"
	"fmt"

	"deenha/internal/apperrors"
	"deenha/internal/models"
	"deenha/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Refresher reloads the storefront catalog after the data source changes.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ProductService handles admin operations on products.
type ProductService struct {
	repo     repositories.ProductRepository
	catalog  Refresher
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, catalog Refresher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMutationFailure, err)
	}
	s.refresh(ctx, "create", product.ID)
	return nil
}

// UpdateProduct validates and replaces an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return mutationError(err)
	}
	s.refresh(ctx, "update", product.ID)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mutationError(err)
	}
	s.refresh(ctx, "delete", id)
	return nil
}

// refresh reloads the catalog after a write. The write already succeeded,
// so a failed reload is only logged and the previous snapshot stays.
func (s *ProductService) refresh(ctx context.Context, op string, id int) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after write failed",
			zap.String("op", op), zap.Int("product_id", id), zap.Error(err))
	}
}

func mutationError(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrMutationFailure, err)
}
