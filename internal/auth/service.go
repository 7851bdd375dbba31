package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates the credential store, password hasher and token
// signing into the account lifecycle operations.
type Service struct {
	config Config

	accounts *Repository
	hasher   *PasswordHasher
	metrics  *Metrics

	logger *zap.Logger
}

func NewService(
	config Config,
	accounts *Repository,
	hasher *PasswordHasher,
	metrics *Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		config: config,

		accounts: accounts,
		hasher:   hasher,
		metrics:  metrics,

		logger: logger,
	}
}

// Register creates a new account with the default guest permission.
func (s *Service) Register(ctx context.Context, username, password string) (*Account, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Create(ctx, username, passwordHash, PermissionGuest)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", zap.String("username", account.Username))

	return account, nil
}

// Login authenticates a username/password pair and returns a bearer token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.observeLogin(loginOutcomeRejected)
			return "", ErrInvalidCredentials
		}

		s.metrics.observeLogin(loginOutcomeError)
		return "", err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.metrics.observeLogin(loginOutcomeRejected)
		return "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(account)
	if err != nil {
		s.metrics.observeLogin(loginOutcomeError)
		return "", err
	}

	s.metrics.observeLogin(loginOutcomeSuccess)

	return token, nil
}

// IssueToken signs a time-limited bearer token binding the account identity.
func (s *Service) IssueToken(account *Account) (string, error) {
	claims := NewClaims(account, time.Now().Add(s.config.TokenTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies signature and expiry, then re-resolves the account
// from the store. A token whose (id, username) pair no longer matches a
// stored account is rejected, so tokens cannot outlive deleted or renamed
// accounts.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*Account, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return s.config.SecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())

	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTokenInvalid
		}

		return nil, err
	}

	if account.Username != claims.Username {
		return nil, ErrTokenInvalid
	}

	return account, nil
}

// ChangePassword re-hashes and persists the actor's own password.
func (s *Service) ChangePassword(ctx context.Context, actor *Account, newPassword string) error {
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	_, err = s.accounts.Update(ctx, actor.ID, func(account *Account) error {
		account.PasswordHash = passwordHash
		return nil
	})

	return err
}

// ChangePermission sets the target account's permission level. Admin only.
func (s *Service) ChangePermission(ctx context.Context, actor *Account, targetID uuid.UUID, level Permission) (*Account, error) {
	if !CanManageAccounts(actor) {
		return nil, ErrForbidden
	}

	account, err := s.accounts.Update(ctx, targetID, func(account *Account) error {
		account.Permission = level
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("permission changed",
		zap.String("username", account.Username),
		zap.String("permission", string(level)))

	return account, nil
}

// ListPermissions returns the id/username/permission projection of every
// account. Admin only.
func (s *Service) ListPermissions(ctx context.Context, actor *Account) ([]PermissionEntry, error) {
	if !CanManageAccounts(actor) {
		return nil, ErrForbidden
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PermissionEntry, len(accounts))
	for i, account := range accounts {
		entries[i] = PermissionEntry{
			ID:         account.ID,
			Username:   account.Username,
			Permission: account.Permission,
		}
	}

	return entries, nil
}

// UpdateProfile replaces the actor's optional display fields in full;
// omitted fields reset to empty.
func (s *Service) UpdateProfile(ctx context.Context, actor *Account, profile Profile) (*Account, error) {
	return s.accounts.Update(ctx, actor.ID, func(account *Account) error {
		account.Profile = profile
		return nil
	})
}

// Rename changes the actor's own username. Fails with ErrConflict if the
// new username is taken.
func (s *Service) Rename(ctx context.Context, actor *Account, newUsername string) (*Account, error) {
	return s.accounts.Update(ctx, actor.ID, func(account *Account) error {
		account.Username = newUsername
		return nil
	})
}

// DeleteAccount removes the actor's own account. Authored content is left
// in place.
func (s *Service) DeleteAccount(ctx context.Context, actor *Account) error {
	if err := s.accounts.Delete(ctx, actor.ID); err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.String("username", actor.Username))

	return nil
}
