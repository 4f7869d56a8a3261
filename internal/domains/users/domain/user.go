package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email is malformed")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 8 characters")
)

// User is an account able to place orders. Password material only ever
// appears here as a bcrypt hash.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user ensuring required invariants. Username is optional.
func NewUser(id, email, username, passwordHash string) (*User, error) {
	user := &User{ID: id, Username: strings.TrimSpace(username)}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, ErrEmptyPassword
	}
	user.PasswordHash = passwordHash
	return user, nil
}

// SetEmail trims, lowercases, and shape-checks the email.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmptyEmail
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// CheckRawPassword applies the plain-text strength rule before hashing.
func CheckRawPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}
