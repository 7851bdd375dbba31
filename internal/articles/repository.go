package articles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const prefixByID = "article:id:"

type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new article.
func (r *Repository) Create(_ context.Context, draft *ArticleDraft) (*Article, error) {
	model := newArticleModel(draft)

	data, err := model.marshal()
	if err != nil {
		return nil, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getByIDKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store article: %w", setErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

// GetByID retrieves an article by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Article, error) {
	var article *articleModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			article = found
		}

		return err
	})

	if err != nil {
		return nil, err
	}

	return article.toDomain(), nil
}

// Update replaces the article's draft fields and bumps its modification
// time.
func (r *Repository) Update(_ context.Context, id uuid.UUID, draft *ArticleDraft) (*Article, error) {
	var updated *Article

	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		model.update(draft)

		data, err := model.marshal()
		if err != nil {
			return err
		}

		if setErr := txn.Set(r.getByIDKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to update article: %w", setErr)
		}

		updated = model.toDomain()

		return nil
	})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an article.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := r.getByID(txn, id); err != nil {
			return err
		}

		if delErr := txn.Delete(r.getByIDKey(id)); delErr != nil {
			return fmt.Errorf("failed to delete article: %w", delErr)
		}

		return nil
	})
}

// ListPublished returns the offset/limit window of articles whose
// publication date has passed.
func (r *Repository) ListPublished(_ context.Context, offset, limit int) ([]Article, error) {
	var articles []Article

	now := time.Now()
	skipped := 0

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		keyPrefix := []byte(prefixByID)
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			if len(articles) == limit {
				break
			}

			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var model articleModel
				if err := model.unmarshal(val); err != nil {
					return err
				}

				if model.PubDate.After(now) {
					return nil
				}

				if skipped < offset {
					skipped++
					return nil
				}

				articles = append(articles, *model.toDomain())
				return nil
			}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*articleModel, error) {
	item, err := txn.Get(r.getByIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	model := new(articleModel)
	if valErr := item.Value(func(val []byte) error {
		return model.unmarshal(val)
	}); valErr != nil {
		return nil, valErr
	}

	return model, nil
}

func (r *Repository) getByIDKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}
