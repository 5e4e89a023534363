package handlers

import (
	"deenha/internal/models"
	"deenha/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FeedHandler handles dashboard requests for feed posts.
type FeedHandler struct {
	service *services.FeedService
	logger  *zap.Logger
}

func NewFeedHandler(service *services.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{service: service, logger: logger}
}

func (h *FeedHandler) RegisterReadRoutes(router fiber.Router) {
	router.Get("/feed", h.HandleListPosts)
}

func (h *FeedHandler) RegisterWriteRoutes(router fiber.Router, guard fiber.Handler) {
	router.Post("/feed", guard, h.HandleCreatePost)
	router.Delete("/feed/:id", guard, h.HandleDeletePost)
}

// HandleListPosts returns every post, newest first.
func (h *FeedHandler) HandleListPosts(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve feed", err)
	}
	return c.JSON(posts)
}

func (h *FeedHandler) HandleCreatePost(c *fiber.Ctx) error {
	var post models.InstagramPost
	if err := c.BodyParser(&post); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	post.ID = 0

	if err := h.service.CreatePost(c.UserContext(), &post); err != nil {
		return respondError(c, h.logger, "Could not create post", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *FeedHandler) HandleDeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid post ID", err)
	}
	if err := h.service.DeletePost(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete post", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
