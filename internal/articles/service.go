package articles

import (
	"context"

	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/auth"
	"go.uber.org/zap"
)

// Service exposes the public article listing and the permission-gated
// mutations. Mutations take the authenticated actor and deny guests.
type Service struct {
	config Config

	articles *Repository

	logger *zap.Logger
}

func NewService(config Config, articles *Repository, logger *zap.Logger) *Service {
	return &Service{
		config: config,

		articles: articles,

		logger: logger,
	}
}

// List returns one page of published articles. A page beyond the end of the
// listing is ErrNotFound rather than an empty page.
func (s *Service) List(ctx context.Context, page int) ([]Article, error) {
	size := s.config.pageSize()

	found, err := s.articles.ListPublished(ctx, page*size, size)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return nil, ErrNotFound
	}

	return found, nil
}

// Get returns a single article regardless of its publication date.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.articles.GetByID(ctx, id)
}

// Create stores a new article on behalf of the actor.
func (s *Service) Create(ctx context.Context, actor *auth.Account, draft *ArticleDraft) (*Article, error) {
	if !auth.CanPublish(actor) {
		return nil, auth.ErrForbidden
	}

	article, err := s.articles.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.logger.Info("article created",
		zap.String("title", article.Title),
		zap.String("actor", actor.Username))

	return article, nil
}

// Update replaces the article's fields in full.
func (s *Service) Update(ctx context.Context, actor *auth.Account, id uuid.UUID, draft *ArticleDraft) (*Article, error) {
	if !auth.CanPublish(actor) {
		return nil, auth.ErrForbidden
	}

	return s.articles.Update(ctx, id, draft)
}

// Delete removes the article.
func (s *Service) Delete(ctx context.Context, actor *auth.Account, id uuid.UUID) error {
	if !auth.CanPublish(actor) {
		return auth.ErrForbidden
	}

	return s.articles.Delete(ctx, id)
}
