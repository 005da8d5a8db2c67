package trips

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/internal/api/session"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Service converts sessions into saved trips and lists them.
type Service interface {
	// ConvertSession copies the session's itinerary into permanent
	// storage for the user. The session itself is left untouched and
	// keeps its TTL.
	ConvertSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.SavedTrip, error)
	// List returns the user's saved trips, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]types.SavedTrip, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl provides the concrete implementation of Service.
type ServiceImpl struct {
	logger   *slog.Logger
	repo     Repository
	sessions session.Service
}

// NewServiceImpl creates the trips service.
func NewServiceImpl(repo Repository, sessions session.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		repo:     repo,
		sessions: sessions,
	}
}

// ConvertSession implements Service.ConvertSession.
func (s *ServiceImpl) ConvertSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsService").Start(ctx, "ConvertSession", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session lookup failed")
		return nil, err
	}

	trip, err := s.repo.SaveTrip(ctx, userID, sess.Itinerary)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save trip")
		return nil, fmt.Errorf("failed to convert session %s: %w", sessionID, err)
	}

	span.SetAttributes(attribute.String("trip.id", trip.ID.String()))
	span.SetStatus(codes.Ok, "Session converted")
	s.logger.InfoContext(ctx, "Session converted to saved trip",
		slog.String("session_id", sessionID.String()),
		slog.String("trip_id", trip.ID.String()),
		slog.String("user_id", userID.String()))
	return trip, nil
}

// List implements Service.List.
func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]types.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsService").Start(ctx, "List", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	trips, err := s.repo.ListTrips(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list trips")
		return nil, err
	}

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	span.SetStatus(codes.Ok, "Trips listed")
	return trips, nil
}
