package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillcms/quill/internal/storage"
)

// accountModel represents an account in the store
type accountModel struct {
	storage.BaseEntity

	Username     string     `json:"username"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	PasswordHash []byte     `json:"password_hash"`
	Permission   Permission `json:"permission"`
}

func newAccountModel(username string, passwordHash []byte, permission Permission) *accountModel {
	return &accountModel{
		BaseEntity: storage.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     username,
		PasswordHash: passwordHash,
		Permission:   permission,
	}
}

func (a *accountModel) marshal() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}

	return data, nil
}

func (a *accountModel) unmarshal(value []byte) error {
	if err := json.Unmarshal(value, a); err != nil {
		return fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return nil
}

func (a *accountModel) toDomain() *Account {
	if a == nil {
		return nil
	}

	return &Account{
		Profile: Profile{
			FirstName: a.FirstName,
			LastName:  a.LastName,
		},
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Permission:   a.Permission,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (a *accountModel) update(account *Account) {
	a.Username = account.Username
	a.FirstName = account.FirstName
	a.LastName = account.LastName
	a.PasswordHash = account.PasswordHash
	a.Permission = account.Permission
	a.UpdatedAt = time.Now()
}
