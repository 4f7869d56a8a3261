package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustakahq/bookstore-api/internal/domains/users/domain"
	"github.com/pustakahq/bookstore-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, taken := f.byEmail[user.Email]; taken {
		return nil, ports.ErrDuplicateEmail
	}
	clone := *user
	f.byID[clone.ID] = &clone
	f.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.byEmail[email]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := f.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID string) (string, error) { return "token-for-" + userID, nil }
func (fakeTokens) Verify(token string) (string, error) { return "", nil }

func TestRegister_HashesPasswordAndNormalizesEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokens{})

	user, err := svc.Register(context.Background(), "Reader@Example.COM", "reader", "s3cretpass")
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", user.Email)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cretpass", user.PasswordHash)
}

func TestRegister_RejectsWeakPasswordAndBadEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokens{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "short")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = svc.Register(context.Background(), "not-an-email", "reader", "s3cretpass")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokens{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "reader@example.com", "other", "s3cretpass")
	require.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokens{})

	user, err := svc.Register(context.Background(), "reader@example.com", "reader", "s3cretpass")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "Reader@Example.com", "s3cretpass")
	require.NoError(t, err)
	require.Equal(t, "token-for-"+user.ID, token)
}

func TestLogin_InvalidCredentialsDoNotLeakAccountExistence(t *testing.T) {
	svc := NewService(newFakeUserRepo(), fakeTokens{})

	_, err := svc.Register(context.Background(), "reader@example.com", "reader", "s3cretpass")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "reader@example.com", "wrongpassword")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}
