package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafsal3/VideoGen-v1/internal/auth/domain"
)

type fakeUserStore struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrDuplicateUser
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.Username] = &cp
	return nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(store UserStore) *AuthService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewAuthService(store, log, "test-secret", time.Hour)
}

func TestRegisterAndLoginRoundtrip(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, err := svc.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", resolved.Username)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "bob", Email: "bob@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Username: "bob", Email: "other@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "  ", Email: "x@example.com", Password: "password123",
	})
	assert.Error(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "carol", Email: "carol@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore())

	_, err := svc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignSecret(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "dave", Email: "dave@example.com", Password: "password123",
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	other := NewAuthService(store, log, "different-secret", time.Hour)
	token, err := other.Login(ctx, "dave", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	store := newFakeUserStore()
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewAuthService(store, log, "test-secret", -time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "erin", Email: "erin@example.com", Password: "password123",
	})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "erin", "password123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
