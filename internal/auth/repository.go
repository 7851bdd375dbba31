package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	prefix = "account:"

	prefixByID       = prefix + "id:"
	prefixByUsername = prefix + "username:"
)

// Repository is the credential store. Every operation is a single BadgerDB
// transaction, so each call reflects committed state at call time and
// concurrent writers race at the username uniqueness check, never past it.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create inserts a new account with the given credentials.
func (r *Repository) Create(_ context.Context, username string, passwordHash []byte, permission Permission) (*Account, error) {
	model := newAccountModel(username, passwordHash, permission)

	data, err := model.marshal()
	if err != nil {
		return nil, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		usernameKey := r.getByUsernameKey(model.Username)
		if _, getErr := txn.Get(usernameKey); getErr == nil {
			return fmt.Errorf("%w: %q", ErrConflict, model.Username)
		} else if !errors.Is(getErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check username uniqueness: %w", getErr)
		}

		if setErr := txn.Set(r.getByIDKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store account: %w", setErr)
		}

		if setErr := txn.Set(usernameKey, []byte(model.ID.String())); setErr != nil {
			return fmt.Errorf("failed to store username index: %w", setErr)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

// GetByID retrieves an account by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	var account *accountModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.getByID(txn, id)
		if err == nil {
			account = found
		}

		return err
	})

	if err != nil {
		return nil, err
	}

	return account.toDomain(), nil
}

// GetByUsername retrieves an account by its unique username.
func (r *Repository) GetByUsername(_ context.Context, username string) (*Account, error) {
	var account *accountModel

	err := r.db.View(func(txn *badger.Txn) error {
		id, err := r.getIDByUsername(txn, username)
		if err != nil {
			return err
		}

		account, err = r.getByID(txn, id)
		return err
	})

	if err != nil {
		return nil, err
	}

	return account.toDomain(), nil
}

// Update applies the updater to the stored account and persists the result.
// A username change re-checks uniqueness and moves the index in the same
// transaction; the loser of a rename race receives ErrConflict.
func (r *Repository) Update(_ context.Context, id uuid.UUID, updater func(*Account) error) (*Account, error) {
	var updated *Account

	err := r.db.Update(func(txn *badger.Txn) error {
		model, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		account := model.toDomain()
		oldUsername := account.Username

		if updErr := updater(account); updErr != nil {
			return updErr
		}

		if account.Username != oldUsername {
			newKey := r.getByUsernameKey(account.Username)
			if _, getErr := txn.Get(newKey); getErr == nil {
				return fmt.Errorf("%w: %q", ErrConflict, account.Username)
			} else if !errors.Is(getErr, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to check username uniqueness: %w", getErr)
			}

			if delErr := txn.Delete(r.getByUsernameKey(oldUsername)); delErr != nil {
				return fmt.Errorf("failed to delete username index: %w", delErr)
			}

			if setErr := txn.Set(newKey, []byte(model.ID.String())); setErr != nil {
				return fmt.Errorf("failed to store username index: %w", setErr)
			}
		}

		model.update(account)

		data, err := model.marshal()
		if err != nil {
			return err
		}

		if setErr := txn.Set(r.getByIDKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to update account: %w", setErr)
		}

		updated = model.toDomain()

		return nil
	})

	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an account and its username index.
func (r *Repository) Delete(_ context.Context, id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		model, err := r.getByID(txn, id)
		if err != nil {
			return err
		}

		if delErr := txn.Delete(r.getByUsernameKey(model.Username)); delErr != nil {
			return fmt.Errorf("failed to delete username index: %w", delErr)
		}

		if delErr := txn.Delete(r.getByIDKey(id)); delErr != nil {
			return fmt.Errorf("failed to delete account: %w", delErr)
		}

		return nil
	})
}

// List retrieves all accounts.
func (r *Repository) List(_ context.Context) ([]Account, error) {
	var accounts []Account

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		keyPrefix := []byte(prefixByID)
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			item := it.Item()

			if err := item.Value(func(val []byte) error {
				var model accountModel
				if err := model.unmarshal(val); err != nil {
					return err
				}

				accounts = append(accounts, *model.toDomain())
				return nil
			}); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*accountModel, error) {
	item, err := txn.Get(r.getByIDKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	model := new(accountModel)
	if valErr := item.Value(func(val []byte) error {
		return model.unmarshal(val)
	}); valErr != nil {
		return nil, valErr
	}

	return model, nil
}

func (r *Repository) getIDByUsername(txn *badger.Txn, username string) (uuid.UUID, error) {
	item, err := txn.Get(r.getByUsernameKey(username))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrNotFound, username)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get username index: %w", err)
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read username index: %w", err)
	}

	id, err := uuid.ParseBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse username index: %w", err)
	}

	return id, nil
}

func (r *Repository) getByIDKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

func (r *Repository) getByUsernameKey(username string) []byte {
	return []byte(prefixByUsername + username)
}
