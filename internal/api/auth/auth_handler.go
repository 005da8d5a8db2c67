package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/dora-travel/dora-planner/internal/api"
	"github.com/dora-travel/dora-planner/internal/types"
)

const minPasswordLength = 8

// RegisterRequest is the wire shape of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the wire shape of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by both register and login.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *types.User `json:"user"`
}

// Handler serves the auth endpoints.
type Handler struct {
	authService Service
	logger      *slog.Logger
}

// NewHandler creates the auth HTTP handler.
func NewHandler(authService Service, logger *slog.Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Register", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/auth/register"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Register"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode register request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if !strings.Contains(req.Email, "@") {
		span.SetStatus(codes.Error, "Invalid email")
		api.ErrorResponse(w, r, http.StatusBadRequest, "A valid email address is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		span.SetStatus(codes.Error, "Password too short")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, token, err := h.authService.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrEmailExists) {
			span.SetStatus(codes.Error, "Email already registered")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		l.ErrorContext(ctx, "Failed to register user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Registration failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	span.SetStatus(codes.Ok, "User registered")
	api.WriteJSONResponse(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Login", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/auth/login"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode login request", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			span.SetStatus(codes.Error, "Invalid credentials")
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		l.ErrorContext(ctx, "Failed to log user in", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Login failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to log in")
		return
	}

	span.SetStatus(codes.Ok, "User logged in")
	api.WriteJSONResponse(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me handles GET /api/auth/me. It runs behind Authenticate.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "Me", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/auth/me"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Me"))

	userIDStr, ok := GetUserIDFromContext(ctx)
	if !ok || userIDStr == "" {
		l.ErrorContext(ctx, "User ID not found in context")
		span.SetStatus(codes.Error, "Missing user context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		l.ErrorContext(ctx, "Invalid user ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid user ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			span.SetStatus(codes.Error, "User not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to fetch user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Fetch failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	span.SetStatus(codes.Ok, "User fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}
