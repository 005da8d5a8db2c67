package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/dora-travel/dora-planner/config"
	"github.com/dora-travel/dora-planner/internal/types"
)

// DefaultTokenExpiry applies when configuration does not set one.
const DefaultTokenExpiry = 30 * time.Minute

// Service handles account registration, login and token issuance.
type Service interface {
	// Register creates an account and returns it with a fresh access token.
	Register(ctx context.Context, email, name, password string) (*types.User, string, error)
	// Login verifies credentials and returns the account with a fresh
	// access token. Unknown email and wrong password are indistinguishable
	// to the caller.
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	// GetUser fetches the account behind a validated token subject.
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl provides the concrete implementation of Service.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cfg    config.AuthConfig
}

// NewServiceImpl creates the auth service.
func NewServiceImpl(repo Repository, cfg config.AuthConfig, logger *slog.Logger) *ServiceImpl {
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = DefaultTokenExpiry
	}
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cfg:    cfg,
	}
}

// Register implements Service.Register.
func (s *ServiceImpl) Register(ctx context.Context, email, name, password string) (*types.User, string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to hash password")
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, name, string(hash))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create user")
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to issue token")
		return nil, "", err
	}

	span.SetStatus(codes.Ok, "User registered")
	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// Login implements Service.Login.
func (s *ServiceImpl) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			span.SetStatus(codes.Error, "Unknown email")
			return nil, "", types.ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user")
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		span.SetStatus(codes.Error, "Password mismatch")
		return nil, "", types.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to issue token")
		return nil, "", err
	}

	span.SetStatus(codes.Ok, "User logged in")
	s.logger.InfoContext(ctx, "User logged in", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// GetUser implements Service.GetUser.
func (s *ServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "GetUser")
	defer span.End()

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user")
		return nil, err
	}

	span.SetStatus(codes.Ok, "User fetched")
	return user, nil
}

func (s *ServiceImpl) issueToken(user *types.User) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenExpiry)),
		},
	}
	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
