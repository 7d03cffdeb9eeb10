// Package users holds the administrative account model. Accounts authorize
// access to the admin console; they are not practice clients.
package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// AdminUser is one administrative account. Username and email are each
// globally unique.
type AdminUser struct {
	ID           string    `json:"id,omitempty"`         // Unique identifier for the account
	Username     string    `json:"username"`             // Unique username
	Email        string    `json:"email"`                // Unique email address
	PasswordHash string    `json:"-"`                    // Hashed password - never serialize
	IsActive     bool      `json:"is_active"`            // Disabled accounts cannot log in or refresh
	CreatedAt    time.Time `json:"created_at,omitempty"` // When the account was created
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword verifies a plaintext password against the account's hash.
func (u *AdminUser) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
