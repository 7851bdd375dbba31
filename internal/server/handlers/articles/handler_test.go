package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/articles"
	"github.com/quillcms/quill/internal/auth"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	app      *fiber.App
	accounts *auth.Repository
	authSvc  *auth.Service
	hasher   *auth.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("failed to open in-memory badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := zaptest.NewLogger(t)
	authCfg := auth.Config{
		SecretKey:  []byte("test-secret-key"),
		TokenTTL:   time.Minute,
		BcryptCost: bcrypt.MinCost,
	}
	accounts := auth.NewRepository(db)
	hasher := auth.NewPasswordHasher(authCfg)
	authSvc := auth.NewService(authCfg, accounts, hasher, auth.NewMetrics(), logger)

	articlesSvc := articles.NewService(
		articles.Config{PageSize: 10},
		articles.NewRepository(db),
		logger,
	)

	app := fiber.New()
	NewHandler(articlesSvc, authSvc, validator.New(), logger).Register(app.Group("/api/v1"))

	return &testEnv{
		app:      app,
		accounts: accounts,
		authSvc:  authSvc,
		hasher:   hasher,
	}
}

// tokenFor creates an account with the given permission and logs it in.
func (e *testEnv) tokenFor(t *testing.T, username string, permission auth.Permission) string {
	t.Helper()

	passwordHash, err := e.hasher.Hash("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	account, err := e.accounts.Create(context.Background(), username, passwordHash, permission)
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	token, err := e.authSvc.IssueToken(account)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return token
}

func (e *testEnv) request(t *testing.T, method, target, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	return out
}

func newRequestBody(title string) ArticleRequest {
	return ArticleRequest{
		Title:   title,
		Author:  "Alice",
		Summary: "A summary.",
		Content: "Full text.",
	}
}

func TestHandler_EmptyListingNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, fiber.MethodGet, "/api/v1/articles", "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("empty listing returned %d, want 404", resp.StatusCode)
	}
}

func TestHandler_CreateAuthorization(t *testing.T) {
	env := newTestEnv(t)
	body := newRequestBody("First post")

	resp := env.request(t, fiber.MethodPost, "/api/v1/articles", "", body)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("unauthenticated create returned %d, want 401", resp.StatusCode)
	}

	guestToken := env.tokenFor(t, "guest", auth.PermissionGuest)
	resp = env.request(t, fiber.MethodPost, "/api/v1/articles", guestToken, body)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("guest create returned %d, want 403", resp.StatusCode)
	}

	staffToken := env.tokenFor(t, "staff", auth.PermissionStaff)
	resp = env.request(t, fiber.MethodPost, "/api/v1/articles", staffToken, body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("staff create returned %d, want 201", resp.StatusCode)
	}

	article := decodeBody[ArticleResponse](t, resp)
	if article.Title != "First post" || article.ID == uuid.Nil {
		t.Errorf("unexpected article: %+v", article)
	}
}

func TestHandler_ListingProjection(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "staff", auth.PermissionStaff)

	for i := 0; i < 3; i++ {
		resp := env.request(t, fiber.MethodPost, "/api/v1/articles", token, newRequestBody(fmt.Sprintf("Post %d", i)))
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("create returned %d", resp.StatusCode)
		}
	}

	resp := env.request(t, fiber.MethodGet, "/api/v1/articles", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("listing returned %d", resp.StatusCode)
	}

	// The listing carries the id/title/author/last_mod projection only.
	entries := decodeBody[[]map[string]any](t, resp)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, key := range []string{"id", "title", "author", "last_mod"} {
		if _, ok := entries[0][key]; !ok {
			t.Errorf("listing entry missing %q", key)
		}
	}
	if _, ok := entries[0]["content"]; ok {
		t.Error("listing entry leaks article content")
	}
}

func TestHandler_Pagination(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "staff", auth.PermissionStaff)

	for i := 0; i < 15; i++ {
		resp := env.request(t, fiber.MethodPost, "/api/v1/articles", token, newRequestBody(fmt.Sprintf("Post %d", i)))
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("create returned %d", resp.StatusCode)
		}
	}

	resp := env.request(t, fiber.MethodGet, "/api/v1/articles?page=0", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("page 0 returned %d", resp.StatusCode)
	}
	if entries := decodeBody[[]ListEntryResponse](t, resp); len(entries) != 10 {
		t.Errorf("page 0 has %d entries, want 10", len(entries))
	}

	resp = env.request(t, fiber.MethodGet, "/api/v1/articles?page=1", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("page 1 returned %d", resp.StatusCode)
	}
	if entries := decodeBody[[]ListEntryResponse](t, resp); len(entries) != 5 {
		t.Errorf("page 1 has %d entries, want 5", len(entries))
	}

	resp = env.request(t, fiber.MethodGet, "/api/v1/articles?page=2", "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("page past the end returned %d, want 404", resp.StatusCode)
	}
}

func TestHandler_GetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "staff", auth.PermissionStaff)

	resp := env.request(t, fiber.MethodPost, "/api/v1/articles", token, newRequestBody("Original"))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create returned %d", resp.StatusCode)
	}
	created := decodeBody[ArticleResponse](t, resp)
	target := "/api/v1/articles/" + created.ID.String()

	resp = env.request(t, fiber.MethodGet, target, "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get returned %d", resp.StatusCode)
	}

	resp = env.request(t, fiber.MethodPut, target, token, newRequestBody("Revised"))
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("update returned %d, want 202", resp.StatusCode)
	}
	if updated := decodeBody[ArticleResponse](t, resp); updated.Title != "Revised" {
		t.Errorf("expected revised title, got %q", updated.Title)
	}

	guestToken := env.tokenFor(t, "guest", auth.PermissionGuest)
	resp = env.request(t, fiber.MethodDelete, target, guestToken, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("guest delete returned %d, want 403", resp.StatusCode)
	}

	resp = env.request(t, fiber.MethodDelete, target, token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete returned %d", resp.StatusCode)
	}

	resp = env.request(t, fiber.MethodGet, target, "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("get after delete returned %d, want 404", resp.StatusCode)
	}

	resp = env.request(t, fiber.MethodGet, "/api/v1/articles/not-a-uuid", "", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("malformed id returned %d, want 400", resp.StatusCode)
	}
}

func TestHandler_ScheduledArticleHiddenFromListing(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "staff", auth.PermissionStaff)

	future := time.Now().Add(24 * time.Hour)
	body := newRequestBody("Scheduled")
	body.PubDate = &future

	resp := env.request(t, fiber.MethodPost, "/api/v1/articles", token, body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create returned %d", resp.StatusCode)
	}
	created := decodeBody[ArticleResponse](t, resp)

	resp = env.request(t, fiber.MethodGet, "/api/v1/articles", "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("listing with only a scheduled article returned %d, want 404", resp.StatusCode)
	}

	// Direct fetch by id still works before publication.
	resp = env.request(t, fiber.MethodGet, "/api/v1/articles/"+created.ID.String(), "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("direct get of scheduled article returned %d, want 200", resp.StatusCode)
	}
}
