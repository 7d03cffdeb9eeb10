// adminctl manages administrator accounts directly against the database.
// It is the recovery path when no admin can log in through the API.
//
// Usage:
//
//	adminctl create <username> <email>
//	adminctl reset-password <username>
//	adminctl activate <username>
//	adminctl deactivate <username>
//	adminctl list
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/dovewell/wellness-server/internal/config"
	"github.com/dovewell/wellness-server/internal/utils"
	"github.com/dovewell/wellness-server/storage"
	"github.com/dovewell/wellness-server/users"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "adminctl: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: adminctl <create|reset-password|activate|deactivate|list> [args]")
	}

	_ = godotenv.Load()
	c := config.New()

	ctx := context.Background()
	db, err := storage.Open(ctx, c.GetDatabaseDSN())
	if err != nil {
		return fmt.Errorf("storage.Open: %w", err)
	}
	defer db.Close()

	repo := users.NewPostgresRepo(db)

	switch cmd := args[0]; cmd {
	case "create":
		if len(args) != 3 {
			return fmt.Errorf("usage: adminctl create <username> <email>")
		}
		return createUser(ctx, repo, args[1], args[2])
	case "reset-password":
		if len(args) != 2 {
			return fmt.Errorf("usage: adminctl reset-password <username>")
		}
		return resetPassword(ctx, repo, args[1])
	case "activate":
		if len(args) != 2 {
			return fmt.Errorf("usage: adminctl activate <username>")
		}
		return setActive(ctx, repo, args[1], true)
	case "deactivate":
		if len(args) != 2 {
			return fmt.Errorf("usage: adminctl deactivate <username>")
		}
		return setActive(ctx, repo, args[1], false)
	case "list":
		return listUsers(ctx, repo)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func createUser(ctx context.Context, repo users.Repo, username, email string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("users.HashPassword: %w", err)
	}

	user := &users.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("repo.Create: %w", err)
	}

	fmt.Printf("created admin %q (%s)\n", user.Username, user.ID)
	return nil
}

func resetPassword(ctx context.Context, repo users.Repo, username string) error {
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("repo.GetByUsername: %w", err)
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("users.HashPassword: %w", err)
	}

	if _, err := repo.Update(ctx, user.ID, users.Update{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("repo.Update: %w", err)
	}

	fmt.Printf("password reset for %q\n", username)
	return nil
}

func setActive(ctx context.Context, repo users.Repo, username string, active bool) error {
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("repo.GetByUsername: %w", err)
	}

	if _, err := repo.Update(ctx, user.ID, users.Update{IsActive: utils.Ptr(active)}); err != nil {
		return fmt.Errorf("repo.Update: %w", err)
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Printf("%s %q\n", state, username)
	return nil
}

func listUsers(ctx context.Context, repo users.Repo) error {
	allUsers, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("repo.List: %w", err)
	}

	for _, u := range allUsers {
		state := "active"
		if !u.IsActive {
			state = "disabled"
		}
		fmt.Printf("%-20s %-30s %-8s %s\n", u.Username, u.Email, state, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// promptPassword reads the new password twice without echoing it.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("term.ReadPassword: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("term.ReadPassword: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	if err := users.ValidatePasswordStrength(string(first)); err != nil {
		return "", err
	}

	return string(first), nil
}
