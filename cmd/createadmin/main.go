// Command createadmin bootstraps an administrator account in the Quill
// store. It shares the server's configuration, so it must run against the
// same data directory while the server is stopped.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/quillcms/quill/internal/auth"
	"github.com/quillcms/quill/internal/config"
	"github.com/quillcms/quill/pkg/badgerfx"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("Press Ctrl+C to cancel.")

	cfg, err := config.New()
	if err != nil {
		return err
	}

	db, err := badger.Open(badgerfx.Config{Dir: cfg.Storage.DataDir}.Build())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	accounts := auth.NewRepository(db)
	hasher := auth.NewPasswordHasher(auth.Config{BcryptCost: cfg.Auth.BcryptCost})

	username, err := promptUsername(ctx, accounts)
	if err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	passwordHash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	account, err := accounts.Create(ctx, username, passwordHash, auth.PermissionAdmin)
	if err != nil {
		return err
	}

	fmt.Printf("Created admin account %q (%s)\n", account.Username, account.ID)

	return nil
}

func promptUsername(ctx context.Context, accounts *auth.Repository) (string, error) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Unique username: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read username: %w", err)
		}

		username := strings.TrimSpace(line)
		if username == "" || len(username) > 32 {
			fmt.Println("Error: username must be 1-32 characters.")
			continue
		}

		_, err = accounts.GetByUsername(ctx, username)
		if errors.Is(err, auth.ErrNotFound) {
			return username, nil
		}
		if err != nil {
			return "", err
		}

		fmt.Println("Error: username already exists!")
	}
}

func promptPassword() (string, error) {
	for {
		fmt.Print("Secure password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		if len(password) < 8 {
			fmt.Println("Error: password must be at least 8 characters.")
			continue
		}

		fmt.Print("Repeat password: ")
		confirmation, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		if string(password) != string(confirmation) {
			fmt.Println("Error: passwords do not match.")
			continue
		}

		return string(password), nil
	}
}
