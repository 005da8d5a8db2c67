// Package auth provides first-party account registration, login and the
// JWT middleware gating the authenticated surface.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/dora-travel/dora-planner/app/observability/metrics"
	"github.com/dora-travel/dora-planner/internal/types"
)

const pgUniqueViolation = "23505"

// Repository persists user accounts.
type Repository interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
}

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres-backed user repository.
func NewPostgresRepository(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// CreateUser inserts a new account. A duplicate email maps to
// types.ErrEmailExists.
func (r *PostgresRepository) CreateUser(ctx context.Context, email, name, passwordHash string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser")
	defer span.End()

	start := time.Now()
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, created_at`,
		email, name, passwordHash).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			span.SetStatus(codes.Error, "Email already registered")
			return nil, fmt.Errorf("%w: %s", types.ErrEmailExists, email)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert user")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	span.SetStatus(codes.Ok, "User created")
	return &user, nil
}

// GetUserByEmail fetches an account by email. A miss maps to
// types.ErrUserNotFound.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByEmail")
	defer span.End()

	start := time.Now()
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1",
		email).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "User not found")
		return nil, fmt.Errorf("%w: %s", types.ErrUserNotFound, email)
	}
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user")
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	span.SetStatus(codes.Ok, "User fetched")
	return &user, nil
}

// GetUserByID fetches an account by id. A miss maps to
// types.ErrUserNotFound.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByID")
	defer span.End()

	start := time.Now()
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE id = $1",
		id).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "User not found")
		return nil, fmt.Errorf("%w: %s", types.ErrUserNotFound, id)
	}
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch user")
		return nil, fmt.Errorf("failed to fetch user by id: %w", err)
	}

	span.SetStatus(codes.Ok, "User fetched")
	return &user, nil
}
