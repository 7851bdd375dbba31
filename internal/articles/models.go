package articles

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/storage"
)

// articleModel represents an article in the store
type articleModel struct {
	storage.BaseEntity

	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Summary string    `json:"summary"`
	Content string    `json:"content"`
	PubDate time.Time `json:"pub_date"`
}

func newArticleModel(draft *ArticleDraft) *articleModel {
	pubDate := draft.PubDate
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	return &articleModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:   draft.Title,
		Author:  draft.Author,
		Summary: draft.Summary,
		Content: draft.Content,
		PubDate: pubDate,
	}
}

func (a *articleModel) marshal() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal article: %w", err)
	}

	return data, nil
}

func (a *articleModel) unmarshal(value []byte) error {
	if err := json.Unmarshal(value, a); err != nil {
		return fmt.Errorf("failed to unmarshal article: %w", err)
	}

	return nil
}

func (a *articleModel) toDomain() *Article {
	if a == nil {
		return nil
	}

	return &Article{
		ArticleDraft: ArticleDraft{
			Title:   a.Title,
			Author:  a.Author,
			Summary: a.Summary,
			Content: a.Content,
			PubDate: a.PubDate,
		},
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// update replaces the draft fields in full; the publication date survives
// unless the draft schedules a new one.
func (a *articleModel) update(draft *ArticleDraft) {
	a.Title = draft.Title
	a.Author = draft.Author
	a.Summary = draft.Summary
	a.Content = draft.Content
	if !draft.PubDate.IsZero() {
		a.PubDate = draft.PubDate
	}
	a.UpdatedAt = time.Now()
}
