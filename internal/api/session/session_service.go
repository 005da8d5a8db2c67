package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/app/observability/metrics"
	"github.com/dora-travel/dora-planner/internal/types"
)

// DefaultTTL is the session lifetime applied when configuration does not
// override it.
const DefaultTTL = 30 * time.Minute

// Service manages the lifecycle of itinerary sessions.
type Service interface {
	// Create stores the itinerary under a fresh session id.
	Create(ctx context.Context, itinerary types.Itinerary) (*types.Session, error)
	// Get returns the live session or types.ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*types.Session, error)
	// Extend resets the session's expiry to a full TTL from now and
	// returns the refreshed session.
	Extend(ctx context.Context, id uuid.UUID) (*types.Session, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl provides the concrete implementation of Service.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	ttl    time.Duration
	now    func() time.Time
}

// NewServiceImpl creates a session service. A non-positive ttl falls back
// to DefaultTTL.
func NewServiceImpl(repo Repository, ttl time.Duration, logger *slog.Logger) *ServiceImpl {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create implements Service.Create.
func (s *ServiceImpl) Create(ctx context.Context, itinerary types.Itinerary) (*types.Session, error) {
	ctx, span := otel.Tracer("SessionService").Start(ctx, "Create")
	defer span.End()

	now := s.now().UTC()
	session := &types.Session{
		ID:        uuid.New(),
		Itinerary: itinerary,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.repo.Put(ctx, session, s.ttl); err != nil {
		s.recordFailure(ctx, span, "Failed to create session", err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", session.ID.String()))
	span.SetStatus(codes.Ok, "Session created")
	s.logger.InfoContext(ctx, "Session created",
		slog.String("session_id", session.ID.String()),
		slog.Time("expires_at", session.ExpiresAt))
	return session, nil
}

// Get implements Service.Get. Entries past their expiry timestamp are
// treated as absent even if the store has not evicted them yet.
func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	ctx, span := otel.Tracer("SessionService").Start(ctx, "Get", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		s.recordFailure(ctx, span, "Failed to fetch session", err)
		return nil, err
	}
	if session.Expired(s.now()) {
		span.SetStatus(codes.Error, "Session expired")
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}

	span.SetStatus(codes.Ok, "Session fetched")
	return session, nil
}

// Extend implements Service.Extend.
func (s *ServiceImpl) Extend(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	ctx, span := otel.Tracer("SessionService").Start(ctx, "Extend", trace.WithAttributes(
		attribute.String("session.id", id.String()),
	))
	defer span.End()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.ExpiresAt = s.now().UTC().Add(s.ttl)
	if err := s.repo.Update(ctx, session, s.ttl); err != nil {
		s.recordFailure(ctx, span, "Failed to extend session", err)
		return nil, fmt.Errorf("failed to extend session: %w", err)
	}

	span.SetStatus(codes.Ok, "Session extended")
	s.logger.InfoContext(ctx, "Session extended",
		slog.String("session_id", session.ID.String()),
		slog.Time("expires_at", session.ExpiresAt))
	return session, nil
}

func (s *ServiceImpl) recordFailure(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	if errors.Is(err, types.ErrStorageUnavailable) {
		metrics.Get().SessionOpErrorsTotal.Add(ctx, 1)
		s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
	}
}
