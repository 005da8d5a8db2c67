package itinerary

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/internal/api"
	"github.com/dora-travel/dora-planner/internal/api/session"
	"github.com/dora-travel/dora-planner/internal/types"
)

// Handler serves itinerary generation and session lookup endpoints.
type Handler struct {
	itineraryService Service
	sessionService   session.Service
	logger           *slog.Logger
}

// NewHandler creates the itinerary HTTP handler.
func NewHandler(itineraryService Service, sessionService session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		itineraryService: itineraryService,
		sessionService:   sessionService,
		logger:           logger,
	}
}

// Generate handles POST /api/generate-itinerary. It validates the trip
// request, assembles the itinerary, stores it under a fresh session and
// returns both together.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "Generate", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/generate-itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Generate"))

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode trip request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		l.WarnContext(ctx, "Trip request rejected", slog.Any("error", err))
		span.SetStatus(codes.Error, "Validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("trip.theme", string(req.TravelTheme)))

	itinerary, err := h.itineraryService.Generate(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	sess, err := h.sessionService.Create(ctx, *itinerary)
	if err != nil {
		l.ErrorContext(ctx, "Failed to store itinerary session", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session storage failed")
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Session storage unavailable")
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID.String()))
	span.SetStatus(codes.Ok, "Itinerary generated")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ItineraryResponse{
		SessionID: sess.ID,
		Itinerary: sess.Itinerary,
	})
}

// GetBySession handles GET /api/itinerary/{sessionID}.
func (h *Handler) GetBySession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetBySession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary/{sessionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetBySession"))

	sessionID, ok := h.sessionIDFromURL(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Invalid session ID")
		return
	}
	span.SetAttributes(attribute.String("session.id", sessionID.String()))

	sess, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		h.writeSessionError(w, r, l, span, err)
		return
	}

	span.SetStatus(codes.Ok, "Session fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ItineraryResponse{
		SessionID: sess.ID,
		Itinerary: sess.Itinerary,
	})
}

// PrepareAuth handles POST /api/prepare-auth/{sessionID}. It extends the
// session so it survives the client's trip through the login flow.
func (h *Handler) PrepareAuth(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "PrepareAuth", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/prepare-auth/{sessionID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PrepareAuth"))

	sessionID, ok := h.sessionIDFromURL(w, r, l)
	if !ok {
		span.SetStatus(codes.Error, "Invalid session ID")
		return
	}
	span.SetAttributes(attribute.String("session.id", sessionID.String()))

	sess, err := h.sessionService.Extend(ctx, sessionID)
	if err != nil {
		h.writeSessionError(w, r, l, span, err)
		return
	}

	span.SetStatus(codes.Ok, "Session extended")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Session extended for authentication",
		"session_id": sess.ID,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) sessionIDFromURL(w http.ResponseWriter, r *http.Request, l *slog.Logger) (uuid.UUID, bool) {
	sessionIDStr := chi.URLParam(r, "sessionID")
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		l.WarnContext(r.Context(), "Invalid session ID format", slog.String("session_id", sessionIDStr))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}
	return sessionID, true
}

func (h *Handler) writeSessionError(w http.ResponseWriter, r *http.Request, l *slog.Logger, span trace.Span, err error) {
	switch {
	case errors.Is(err, types.ErrSessionNotFound):
		span.SetStatus(codes.Error, "Session not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "Session not found or expired")
	case errors.Is(err, types.ErrStorageUnavailable):
		l.ErrorContext(r.Context(), "Session storage unavailable", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Storage unavailable")
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Session storage unavailable")
	default:
		l.ErrorContext(r.Context(), "Session operation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
