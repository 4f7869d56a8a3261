package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pustakahq/bookstore-api/internal/domains/users/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

// Service exposes the users bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register hashes the password and stores the account. The repository
// enforces email uniqueness.
func (s *Service) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	if err := domain.CheckRawPassword(password); err != nil {
		return nil, mapError(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := domain.NewUser(uuid.NewString(), email, username, string(hash))
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password both read as invalid credentials so the response does not
// leak which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	probe := &domain.User{}
	if err := probe.SetEmail(email); err != nil {
		return "", ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByEmail(ctx, probe.Email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ports.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ports.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

// GetByID loads a user profile.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
