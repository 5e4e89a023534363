package services

import (
	"context"
	"fmt"

	"deenha/internal/apperrors"
	"deenha/internal/models"
	"deenha/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FeedService manages the social feed shown on the home page.
type FeedService struct {
	repo     repositories.PostRepository
	catalog  Refresher
	validate *validator.Validate
	logger   *zap.Logger
}

func NewFeedService(repo repositories.PostRepository, catalog Refresher, logger *zap.Logger) *FeedService {
	return &FeedService{
		repo:     repo,
		catalog:  catalog,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListPosts returns up to limit posts, newest first. A non-positive limit
// returns every post.
func (s *FeedService) ListPosts(ctx context.Context, limit int) ([]models.InstagramPost, error) {
	return s.repo.ListRecent(ctx, limit)
}

// CreatePost stores a post. A video post must carry a video URL.
func (s *FeedService) CreatePost(ctx context.Context, post *models.InstagramPost) error {
	if err := s.validate.Struct(post); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if post.IsVideo && post.VideoURL == "" {
		return fmt.Errorf("%w: video post without video_url", apperrors.ErrValidation)
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMutationFailure, err)
	}
	s.refresh(ctx)
	return nil
}

func (s *FeedService) DeletePost(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mutationError(err)
	}
	s.refresh(ctx)
	return nil
}

func (s *FeedService) refresh(ctx context.Context) {
	if s.catalog == nil {
		return
	}
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after feed change failed", zap.Error(err))
	}
}
