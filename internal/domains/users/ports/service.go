package ports

import (
	"context"

	"github.com/pustakahq/bookstore-api/internal/domains/users/domain"
)

// TokenIssuer issues and verifies bearer tokens carrying the user identity.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the user id the token was issued for.
	Verify(token string) (string, error)
}

// Service exposes the users bounded context use cases.
type Service interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	// Login verifies credentials and returns a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
