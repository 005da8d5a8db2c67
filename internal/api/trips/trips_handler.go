package trips

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/internal/api"
	"github.com/dora-travel/dora-planner/internal/api/auth"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Handler serves the authenticated trips endpoints.
type Handler struct {
	tripsService Service
	logger       *slog.Logger
}

// NewHandler creates the trips HTTP handler.
func NewHandler(tripsService Service, logger *slog.Logger) *Handler {
	return &Handler{
		tripsService: tripsService,
		logger:       logger,
	}
}

// Convert handles POST /api/trips/convert/{sessionID}. It runs behind
// Authenticate.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripsHandler").Start(r.Context(), "Convert", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/trips/convert/{sessionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Convert"))

	userID, ok := h.userIDFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Missing user context")
		return
	}

	sessionIDStr := chi.URLParam(r, "sessionID")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		l.WarnContext(ctx, "Invalid session ID format", slog.String("session_id", sessionIDStr))
		span.SetStatus(codes.Error, "Invalid session ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	span.SetAttributes(attribute.String("session.id", sessionID.String()))

	trip, err := h.tripsService.ConvertSession(ctx, userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrSessionNotFound):
			span.SetStatus(codes.Error, "Session not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Session not found or expired")
		case errors.Is(err, types.ErrStorageUnavailable):
			l.ErrorContext(ctx, "Session storage unavailable", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Storage unavailable")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Session storage unavailable")
		default:
			l.ErrorContext(ctx, "Failed to convert session", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Conversion failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save trip")
		}
		return
	}

	span.SetStatus(codes.Ok, "Session converted")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"trip_id": trip.ID,
		"message": "Trip preferences saved successfully",
	})
}

// List handles GET /api/trips. It runs behind Authenticate.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripsHandler").Start(r.Context(), "List", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/trips"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "List"))

	userID, ok := h.userIDFromContext(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Missing user context")
		return
	}

	trips, err := h.tripsService.List(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list trips", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Listing failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list trips")
		return
	}

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	span.SetStatus(codes.Ok, "Trips listed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"trips": trips,
	})
}

func (h *Handler) userIDFromContext(w http.ResponseWriter, r *http.Request, l *slog.Logger) (uuid.UUID, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		l.ErrorContext(r.Context(), "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		l.ErrorContext(r.Context(), "Invalid user ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}
