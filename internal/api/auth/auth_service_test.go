package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dora-travel/dora-planner/config"
	"github.com/dora-travel/dora-planner/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, email, name, passwordHash string) (*types.User, error) {
	args := m.Called(ctx, email, name, passwordHash)
	user, _ := args.Get(0).(*types.User)
	return user, args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*types.User)
	return user, args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*types.User)
	return user, args.Error(1)
}

var testAuthCfg = config.AuthConfig{
	SecretKey:   "test-secret-key",
	Issuer:      "dora-planner",
	TokenExpiry: 30 * time.Minute,
}

func newTestService(repo Repository) *ServiceImpl {
	return NewServiceImpl(repo, testAuthCfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	userID := uuid.New()
	var storedHash string
	repo.On("CreateUser", mock.Anything, "maya@example.com", "Maya", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { storedHash = args.String(3) }).
		Return(&types.User{ID: userID, Email: "maya@example.com", Name: "Maya"}, nil).Once()

	user, token, err := svc.Register(context.Background(), "Maya@Example.com", "Maya", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter2hunter2")))

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testAuthCfg.SecretKey), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "dora-planner", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, types.ErrEmailExists).Once()

	_, _, err := svc.Register(context.Background(), "maya@example.com", "Maya", "hunter2hunter2")
	assert.ErrorIs(t, err, types.ErrEmailExists)
}

func TestLogin_ValidCredentials(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	repo.On("GetUserByEmail", mock.Anything, "maya@example.com").
		Return(&types.User{ID: userID, Email: "maya@example.com", PasswordHash: string(hash)}, nil).Once()

	user, token, err := svc.Login(context.Background(), "maya@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "maya@example.com").
		Return(&types.User{ID: uuid.New(), Email: "maya@example.com", PasswordHash: string(hash)}, nil).Once()

	_, _, err = svc.Login(context.Background(), "maya@example.com", "wrong-password")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, types.ErrUserNotFound).Once()

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, types.ErrUserNotFound)
}
