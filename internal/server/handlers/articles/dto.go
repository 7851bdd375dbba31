package articles

import (
	"time"

	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/articles"
)

// ArticleRequest is the payload for creating or fully replacing an article.
type ArticleRequest struct {
	Title   string `json:"title"   validate:"required,min=1,max=64"`
	Author  string `json:"author"  validate:"required,min=1,max=64"`
	Summary string `json:"summary" validate:"required,max=500"`
	Content string `json:"content" validate:"required"`

	PubDate *time.Time `json:"pub_date,omitempty"`
}

func (r *ArticleRequest) toDraft() *articles.ArticleDraft {
	draft := &articles.ArticleDraft{
		Title:   r.Title,
		Author:  r.Author,
		Summary: r.Summary,
		Content: r.Content,
	}
	if r.PubDate != nil {
		draft.PubDate = *r.PubDate
	}

	return draft
}

// ArticleResponse is the full outward view of an article.
type ArticleResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	PubDate   time.Time `json:"pub_date"`
	LastMod   time.Time `json:"last_mod"`
	CreatedAt time.Time `json:"created_at"`
}

func newArticleResponse(article *articles.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Author:    article.Author,
		Summary:   article.Summary,
		Content:   article.Content,
		PubDate:   article.PubDate,
		LastMod:   article.UpdatedAt,
		CreatedAt: article.CreatedAt,
	}
}

// ListEntryResponse is the projection used by the public listing.
type ListEntryResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	LastMod time.Time `json:"last_mod"`
}

func newListEntryResponse(article articles.Article) ListEntryResponse {
	return ListEntryResponse{
		ID:      article.ID,
		Title:   article.Title,
		Author:  article.Author,
		LastMod: article.UpdatedAt,
	}
}
