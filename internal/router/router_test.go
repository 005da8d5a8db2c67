package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-travel/dora-planner/config"
	"github.com/dora-travel/dora-planner/internal/api/auth"
	"github.com/dora-travel/dora-planner/internal/api/itinerary"
	"github.com/dora-travel/dora-planner/internal/api/narration"
	"github.com/dora-travel/dora-planner/internal/api/session"
	"github.com/dora-travel/dora-planner/internal/api/trips"
	"github.com/dora-travel/dora-planner/internal/types"
)

// memSessionRepo is an in-memory stand-in for the Redis session store.
type memSessionRepo struct {
	mu   sync.Mutex
	data map[uuid.UUID]types.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{data: make(map[uuid.UUID]types.Session)}
}

func (m *memSessionRepo) Put(_ context.Context, sess *types.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sess.ID] = *sess
	return nil
}

func (m *memSessionRepo) Get(_ context.Context, id uuid.UUID) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	return &sess, nil
}

func (m *memSessionRepo) Update(_ context.Context, sess *types.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[sess.ID]; !ok {
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, sess.ID)
	}
	m.data[sess.ID] = *sess
	return nil
}

// memUserRepo is an in-memory stand-in for the Postgres user store.
type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*types.User
	byID    map[uuid.UUID]*types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*types.User),
		byID:    make(map[uuid.UUID]*types.User),
	}
}

func (m *memUserRepo) CreateUser(_ context.Context, email, name, passwordHash string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[email]; exists {
		return nil, fmt.Errorf("%w: %s", types.ErrEmailExists, email)
	}
	user := &types.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.byEmail[email] = user
	m.byID[user.ID] = user
	return user, nil
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUserNotFound, email)
	}
	return user, nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUserNotFound, id)
	}
	return user, nil
}

// memTripsRepo is an in-memory stand-in for the Postgres trips store.
type memTripsRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID][]types.SavedTrip
}

func newMemTripsRepo() *memTripsRepo {
	return &memTripsRepo{trips: make(map[uuid.UUID][]types.SavedTrip)}
}

func (m *memTripsRepo) SaveTrip(_ context.Context, userID uuid.UUID, it types.Itinerary) (*types.SavedTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip := types.SavedTrip{
		ID:        uuid.New(),
		UserID:    userID,
		Itinerary: it,
		Status:    trips.StatusSaved,
		CreatedAt: time.Now().UTC(),
	}
	m.trips[userID] = append([]types.SavedTrip{trip}, m.trips[userID]...)
	return &trip, nil
}

func (m *memTripsRepo) ListTrips(_ context.Context, userID uuid.UUID) ([]types.SavedTrip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.SavedTrip{}, m.trips[userID]...), nil
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authCfg := config.AuthConfig{
		SecretKey:   "router-test-secret",
		Issuer:      "dora-planner",
		TokenExpiry: time.Hour,
	}

	sessionService := session.NewServiceImpl(newMemSessionRepo(), 30*time.Minute, logger)
	narrationService := narration.NewServiceImpl(nil, 0, time.Minute, logger)
	itineraryService := itinerary.NewServiceImpl(narrationService, logger)
	authService := auth.NewServiceImpl(newMemUserRepo(), authCfg, logger)
	tripsService := trips.NewServiceImpl(newMemTripsRepo(), sessionService, logger)

	return SetupRouter(&Config{
		ItineraryHandler:       itinerary.NewHandler(itineraryService, sessionService, logger),
		AuthHandler:            auth.NewHandler(authService, logger),
		TripsHandler:           trips.NewHandler(tripsService, logger),
		AuthenticateMiddleware: auth.Authenticate(logger, authCfg),
	})
}

func doJSON(t *testing.T, r chi.Router, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func tripRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"user_name":         "Maya",
		"origin_city":       "San Francisco",
		"destinations":      []string{"Tokyo, Japan"},
		"start_date":        "2026-05-01",
		"end_date":          "2026-05-05",
		"travel_theme":      "Family",
		"party_size":        2,
		"budget_per_person": 2000,
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/health", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRouter_GenerateFetchAndExtendFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/generate-itinerary", tripRequestBody(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var generated types.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
	require.NotEqual(t, uuid.Nil, generated.SessionID)
	assert.Equal(t, "Tokyo, Japan", generated.Trip.Destination)
	assert.Len(t, generated.Flights, 3)
	assert.Len(t, generated.Accommodations, 3)
	assert.Len(t, generated.ItineraryDays, 5)
	assert.Len(t, generated.DestinationInfo.PackingTips, 5)
	assert.Len(t, generated.DestinationInfo.CulturalNotes, 5)

	rec = doJSON(t, r, http.MethodGet, "/api/itinerary/"+generated.SessionID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	firstFetch := rec.Body.Bytes()

	var fetched types.ItineraryResponse
	require.NoError(t, json.Unmarshal(firstFetch, &fetched))
	assert.Equal(t, generated.SessionID, fetched.SessionID)
	assert.Equal(t, generated.Trip, fetched.Trip)

	// Repeated reads serve the same stored itinerary, byte for byte.
	rec = doJSON(t, r, http.MethodGet, "/api/itinerary/"+generated.SessionID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, firstFetch, rec.Body.Bytes())

	rec = doJSON(t, r, http.MethodPost, "/api/prepare-auth/"+generated.SessionID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var extended map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &extended))
	assert.Equal(t, true, extended["success"])
	assert.NotEmpty(t, extended["message"])
	assert.NotEmpty(t, extended["expires_at"])

	// Extending touches only the expiry, never the itinerary.
	rec = doJSON(t, r, http.MethodGet, "/api/itinerary/"+generated.SessionID.String(), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, firstFetch, rec.Body.Bytes())
}

func TestRouter_UnknownSessionReturnsNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/itinerary/"+uuid.NewString(), nil, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestRouter_InvalidTripRequestRejected(t *testing.T) {
	r := newTestRouter(t)

	body := tripRequestBody()
	body["party_size"] = 0
	rec := doJSON(t, r, http.MethodPost, "/api/generate-itinerary", body, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/trips", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterConvertAndListFlow(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/generate-itinerary", tripRequestBody(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var generated types.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))

	rec = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "maya@example.com",
		"name":     "Maya",
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var registered auth.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.AccessToken)
	require.NotNil(t, registered.User)

	// A duplicate registration is a client error.
	rec = doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "maya@example.com",
		"name":     "Maya",
		"password": "correct-horse",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/auth/me", nil, registered.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var me types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "maya@example.com", me.Email)

	rec = doJSON(t, r, http.MethodPost, "/api/trips/convert/"+generated.SessionID.String(), nil, registered.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var converted struct {
		TripID  uuid.UUID `json:"trip_id"`
		Message string    `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &converted))
	require.NotEqual(t, uuid.Nil, converted.TripID)
	assert.NotEmpty(t, converted.Message)

	// The session survives conversion.
	rec = doJSON(t, r, http.MethodGet, "/api/itinerary/"+generated.SessionID.String(), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/trips", nil, registered.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Trips []types.SavedTrip `json:"trips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Trips, 1)
	assert.Equal(t, converted.TripID, listed.Trips[0].ID)
	assert.Equal(t, registered.User.ID, listed.Trips[0].UserID)
	assert.Equal(t, trips.StatusSaved, listed.Trips[0].Status)
}

func TestRouter_ConvertUnknownSessionReturnsNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "noah@example.com",
		"name":     "Noah",
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var registered auth.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = doJSON(t, r, http.MethodPost, "/api/trips/convert/"+uuid.NewString(), nil, registered.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
