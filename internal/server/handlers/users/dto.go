package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/auth"
)

// CredentialsRequest is the payload for registration and login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// PasswordRequest is the payload for changing the caller's own password.
type PasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ProfileRequest replaces the caller's optional display fields in full;
// omitted fields reset to empty.
type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=32"`
	LastName  string `json:"last_name"  validate:"max=32"`
}

// RenameRequest is the payload for changing the caller's own username.
type RenameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=32"`
}

// ProfileResponse is the outward view of an account. The password hash is
// never serialized.
type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newProfileResponse(account *auth.Account) ProfileResponse {
	return ProfileResponse{
		ID:         account.ID,
		Username:   account.Username,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Permission: string(account.Permission),
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}

// PermissionRequest sets a target account's permission level.
type PermissionRequest struct {
	ID         uuid.UUID `json:"id"         validate:"required"`
	Permission string    `json:"permission" validate:"required,oneof=guest staff admin"`
}

// PermissionResponse is the id/username/permission projection listed and
// returned by the admin permission endpoints.
type PermissionResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Permission string    `json:"permission"`
}

func newPermissionResponse(entry auth.PermissionEntry) PermissionResponse {
	return PermissionResponse{
		ID:         entry.ID,
		Username:   entry.Username,
		Permission: string(entry.Permission),
	}
}
