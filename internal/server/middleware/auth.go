package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/quillcms/quill/internal/auth"
)

const accountLocalsKey = "auth.account"

const bearerPrefix = "Bearer "

// NewAuth builds a middleware that resolves the bearer token from the
// Authorization header into an authenticated account. Requests without a
// valid token are rejected before the route handler runs.
func NewAuth(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		account, err := authSvc.ValidateToken(c.Context(), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return err
		}

		c.Locals(accountLocalsKey, account)

		return c.Next()
	}
}

// Account returns the authenticated account stored by the auth middleware,
// or nil when the route is unauthenticated.
func Account(c *fiber.Ctx) *auth.Account {
	account, _ := c.Locals(accountLocalsKey).(*auth.Account)
	return account
}
