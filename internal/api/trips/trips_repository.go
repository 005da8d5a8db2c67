// Package trips persists itineraries permanently for authenticated users,
// converting them out of their ephemeral sessions.
package trips

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dora-travel/dora-planner/app/observability/metrics"
	"github.com/dora-travel/dora-planner/internal/types"
)

// StatusSaved marks a trip converted from a session.
const StatusSaved = "saved"

// PGXPool is the slice of the pgx pool surface this repository needs.
// Narrowing it keeps the repository testable against pgxmock.
type PGXPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository persists saved trips.
type Repository interface {
	SaveTrip(ctx context.Context, userID uuid.UUID, itinerary types.Itinerary) (*types.SavedTrip, error)
	ListTrips(ctx context.Context, userID uuid.UUID) ([]types.SavedTrip, error)
}

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresRepository)(nil)

// PostgresRepository implements Repository on Postgres with the itinerary
// stored as jsonb.
type PostgresRepository struct {
	logger *slog.Logger
	pgpool PGXPool
}

// NewPostgresRepository creates the Postgres-backed trips repository.
func NewPostgresRepository(pgpool PGXPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// SaveTrip implements Repository.SaveTrip.
func (r *PostgresRepository) SaveTrip(ctx context.Context, userID uuid.UUID, itinerary types.Itinerary) (*types.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsRepo").Start(ctx, "SaveTrip")
	defer span.End()

	payload, err := json.Marshal(itinerary)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal itinerary")
		return nil, fmt.Errorf("failed to marshal itinerary: %w", err)
	}

	start := time.Now()
	trip := types.SavedTrip{Itinerary: itinerary}
	err = r.pgpool.QueryRow(ctx,
		`INSERT INTO saved_trips (user_id, itinerary, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, status, created_at`,
		userID, payload, StatusSaved).
		Scan(&trip.ID, &trip.UserID, &trip.Status, &trip.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to insert trip")
		return nil, fmt.Errorf("failed to insert saved trip: %w", err)
	}

	span.SetAttributes(attribute.String("trip.id", trip.ID.String()))
	span.SetStatus(codes.Ok, "Trip saved")
	return &trip, nil
}

// ListTrips implements Repository.ListTrips, newest first.
func (r *PostgresRepository) ListTrips(ctx context.Context, userID uuid.UUID) ([]types.SavedTrip, error) {
	ctx, span := otel.Tracer("TripsRepo").Start(ctx, "ListTrips")
	defer span.End()

	start := time.Now()
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, user_id, itinerary, status, created_at
		 FROM saved_trips
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to query trips")
		return nil, fmt.Errorf("failed to query saved trips: %w", err)
	}
	defer rows.Close()

	trips := make([]types.SavedTrip, 0)
	for rows.Next() {
		var trip types.SavedTrip
		var payload []byte
		if err := rows.Scan(&trip.ID, &trip.UserID, &payload, &trip.Status, &trip.CreatedAt); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to scan trip")
			return nil, fmt.Errorf("failed to scan saved trip: %w", err)
		}
		if err := json.Unmarshal(payload, &trip.Itinerary); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to decode itinerary")
			return nil, fmt.Errorf("failed to decode itinerary for trip %s: %w", trip.ID, err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("failed to iterate saved trips: %w", err)
	}

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	span.SetStatus(codes.Ok, "Trips listed")
	return trips, nil
}
