package articles

import (
	"errors"
	"fmt"

	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/articles"
	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/server/middleware"
	"github.com/quillcms/quill/internal/server/validation"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Handler struct {
	articlesSvc    *articles.Service
	authMiddleware fiber.Handler

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	articlesSvc *articles.Service,
	authSvc *auth.Service,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		articlesSvc:    articlesSvc,
		authMiddleware: middleware.NewAuth(authSvc),

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/articles")

	r.Use(h.errorsHandler)
	r.Get("/", h.list)
	r.Get("/:id", h.get)
	r.Post("/", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.post))
	r.Put("/:id", h.authMiddleware, validation.DecorateWithBodyEx(h.validator, h.put))
	r.Delete("/:id", h.authMiddleware, h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	if page < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "page must not be negative")
	}

	found, err := h.articlesSvc.List(c.Context(), page)
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	return c.JSON(lo.Map(found, func(article articles.Article, _ int) ListEntryResponse {
		return newListEntryResponse(article)
	}))
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	article, err := h.articlesSvc.Get(c.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}

	return c.JSON(newArticleResponse(article))
}

func (h *Handler) post(c *fiber.Ctx, req *ArticleRequest) error {
	article, err := h.articlesSvc.Create(c.Context(), middleware.Account(c), req.toDraft())
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(newArticleResponse(article))
}

func (h *Handler) put(c *fiber.Ctx, req *ArticleRequest) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	article, err := h.articlesSvc.Update(c.Context(), middleware.Account(c), id, req.toDraft())
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	return c.Status(fiber.StatusAccepted).JSON(newArticleResponse(article))
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.articlesSvc.Delete(c.Context(), middleware.Account(c), id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, auth.ErrTokenInvalid):
		return fiber.NewError(fiber.StatusUnauthorized, "could not validate credentials")
	case errors.Is(err, auth.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, articles.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
