package articles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/auth"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, pageSize int) *Service {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("failed to open in-memory badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(Config{PageSize: pageSize}, NewRepository(db), zaptest.NewLogger(t))
}

func staffAccount() *auth.Account {
	return &auth.Account{
		ID:         uuid.New(),
		Username:   "staffer",
		Permission: auth.PermissionStaff,
	}
}

func guestAccount() *auth.Account {
	return &auth.Account{
		ID:         uuid.New(),
		Username:   "visitor",
		Permission: auth.PermissionGuest,
	}
}

func newDraft(title string) *ArticleDraft {
	return &ArticleDraft{
		Title:   title,
		Author:  "author",
		Summary: "summary",
		Content: "content",
	}
}

func TestService_List_Pagination(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()
	actor := staffAccount()

	if _, err := svc.List(ctx, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty listing, got %v", err)
	}

	for range 20 {
		if _, err := svc.Create(ctx, actor, newDraft("title")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	for page := range 2 {
		found, err := svc.List(ctx, page)
		if err != nil {
			t.Fatalf("List page %d failed: %v", page, err)
		}
		if len(found) != 10 {
			t.Errorf("page %d: expected 10 articles, got %d", page, len(found))
		}
	}

	if _, err := svc.List(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound past the last page, got %v", err)
	}
}

func TestService_List_HidesUnpublished(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()
	actor := staffAccount()

	published, err := svc.Create(ctx, actor, newDraft("published"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	scheduled := newDraft("scheduled")
	scheduled.PubDate = time.Now().Add(time.Hour)
	future, err := svc.Create(ctx, actor, scheduled)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != published.ID {
		t.Errorf("expected only the published article, got %+v", found)
	}

	// Direct reads still resolve scheduled articles.
	if _, err := svc.Get(ctx, future.ID); err != nil {
		t.Errorf("Get scheduled article failed: %v", err)
	}
}

func TestService_GuestsForbidden(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()

	article, err := svc.Create(ctx, staffAccount(), newDraft("title"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	guest := guestAccount()

	if _, err := svc.Create(ctx, guest, newDraft("title")); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("Create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, guest, article.ID, newDraft("title")); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("Update: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, guest, article.ID); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("Delete: expected ErrForbidden, got %v", err)
	}
}

func TestService_Update_FullReplace(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()
	actor := staffAccount()

	article, err := svc.Create(ctx, actor, newDraft("original"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	replacement := &ArticleDraft{
		Title:   "replaced",
		Author:  "editor",
		Summary: "new summary",
		Content: "new content",
	}

	updated, err := svc.Update(ctx, actor, article.ID, replacement)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "replaced" || updated.Author != "editor" {
		t.Errorf("unexpected article after update: %+v", updated)
	}
	if !updated.PubDate.Equal(article.PubDate) {
		t.Errorf("publication date must survive an update without a new schedule")
	}

	if _, err := svc.Update(ctx, actor, uuid.New(), replacement); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing article, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t, 10)
	ctx := context.Background()
	actor := staffAccount()

	article, err := svc.Create(ctx, actor, newDraft("title"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, actor, article.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.Get(ctx, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := svc.Delete(ctx, actor, article.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}
