package articles

import (
	"time"

	"github.com/google/uuid"
)

// ArticleDraft carries the author-supplied fields of an article.
type ArticleDraft struct {
	Title   string
	Author  string
	Summary string
	Content string

	// PubDate schedules publication; zero means publish immediately.
	PubDate time.Time
}

// Article represents a stored article. Articles with a future PubDate are
// hidden from the public listing until the date passes.
type Article struct {
	ArticleDraft

	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
