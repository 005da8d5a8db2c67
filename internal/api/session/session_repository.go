// Package session stores generated itineraries behind short-lived session
// ids. Sessions live in Redis under a TTL; expiry is enforced both by the
// store and by an explicit timestamp check on read.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/internal/types"
)

// Repository persists sessions with a time-to-live.
type Repository interface {
	// Put stores a session under its id for the given TTL, overwriting
	// any previous value.
	Put(ctx context.Context, session *types.Session, ttl time.Duration) error
	// Get returns the stored session, or types.ErrSessionNotFound when
	// the id is unknown or the entry has lapsed.
	Get(ctx context.Context, id uuid.UUID) (*types.Session, error)
	// Update rewrites an existing session and resets its TTL. It returns
	// types.ErrSessionNotFound when no entry exists to update.
	Update(ctx context.Context, session *types.Session, ttl time.Duration) error
}

// Ensure implementation satisfies the interface
var _ Repository = (*RedisRepository)(nil)

// RedisRepository implements Repository on a Redis client.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a session repository backed by Redis.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

// Put implements Repository.Put using SET with an expiry.
func (r *RedisRepository) Put(ctx context.Context, session *types.Session, ttl time.Duration) error {
	ctx, span := otel.Tracer("SessionRepo").Start(ctx, "Put", trace.WithAttributes(
		attribute.String("session.id", session.ID.String()),
	))
	defer span.End()

	payload, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal session")
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store session")
		return fmt.Errorf("%w: storing session: %v", types.ErrStorageUnavailable, err)
	}

	span.SetStatus(codes.Ok, "Session stored")
	return nil
}

// Get implements Repository.Get. A Redis miss maps to ErrSessionNotFound,
// any other Redis failure to ErrStorageUnavailable.
func (r *RedisRepository) Get(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	ctx, span := otel.Tracer("SessionRepo").Start(ctx, "Get", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetStatus(codes.Error, "Session not found")
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch session")
		return nil, fmt.Errorf("%w: fetching session: %v", types.ErrStorageUnavailable, err)
	}

	var session types.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode session")
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	span.SetStatus(codes.Ok, "Session fetched")
	return &session, nil
}

// Update implements Repository.Update using SET XX so a lapsed entry is
// never resurrected.
func (r *RedisRepository) Update(ctx context.Context, session *types.Session, ttl time.Duration) error {
	ctx, span := otel.Tracer("SessionRepo").Start(ctx, "Update", trace.WithAttributes(
		attribute.String("session.id", session.ID.String()),
	))
	defer span.End()

	payload, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal session")
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.client.SetXX(ctx, sessionKey(session.ID), payload, ttl).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update session")
		return fmt.Errorf("%w: updating session: %v", types.ErrStorageUnavailable, err)
	}
	if !ok {
		span.SetStatus(codes.Error, "Session not found")
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, session.ID)
	}

	span.SetStatus(codes.Ok, "Session updated")
	return nil
}
