package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/employee-graph-api/internal/models"
	appErrors "github.com/noah-isme/employee-graph-api/pkg/errors"
)

type mockUserRepo struct {
	users         map[string]*models.User
	findByIDCalls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*models.User{}}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	m.findByIDCalls++
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("u%d", len(m.users)+1)
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

type mockAccountCache struct {
	entries map[string]models.User
	sets    int
}

func newMockAccountCache() *mockAccountCache {
	return &mockAccountCache{entries: map[string]models.User{}}
}

func (m *mockAccountCache) Get(_ context.Context, key string, dest interface{}) error {
	entry, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*models.User) = entry
	return nil
}

func (m *mockAccountCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.sets++
	m.entries[key] = *value.(*models.User)
	return nil
}

func newAuthService(repo *mockUserRepo, cache AccountCache) *AuthService {
	return NewAuthService(repo, cache, nil, nil, AuthConfig{Secret: "test-secret", TokenExpiry: time.Hour})
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo, nil)

	payload, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Amit",
		Email:    "amit@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, payload.User)
	assert.Equal(t, models.RoleEmployee, payload.User.Role)
	assert.NotEmpty(t, payload.Token)

	claims, err := svc.ValidateToken(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, payload.User.ID, claims.UserID)
	assert.Equal(t, models.RoleEmployee, claims.Role)
	assert.Equal(t, "amit@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo, nil)

	req := RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmailTaken.Code, appErrors.FromError(err).Code)

	// the original account still works
	login, err := svc.Login(context.Background(), LoginRequest{Email: req.Email, Password: req.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(newMockUserRepo(), nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123", Role: "SUPERUSER"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "amit@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	// unknown email maps to the same error
	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo, nil)

	payload, err := svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, nil, AuthConfig{Secret: "other-secret", TokenExpiry: time.Hour})
	_, err = other.ValidateToken(payload.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo, nil, nil, nil, AuthConfig{Secret: "test-secret", TokenExpiry: time.Nanosecond})

	payload, err := svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.ValidateToken(payload.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestMeMissingAccountIsNil(t *testing.T) {
	svc := newAuthService(newMockUserRepo(), nil)

	user, err := svc.Me(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMeReadThroughCache(t *testing.T) {
	repo := newMockUserRepo()
	cache := newMockAccountCache()
	svc := newAuthService(repo, cache)

	payload, err := svc.Register(context.Background(), RegisterRequest{Name: "Amit", Email: "amit@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.Me(context.Background(), payload.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, repo.findByIDCalls)
	assert.Equal(t, 1, cache.sets)

	user, err = svc.Me(context.Background(), payload.User.ID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "amit@example.com", user.Email)
	assert.Equal(t, 1, repo.findByIDCalls, "second lookup should come from cache")
}
