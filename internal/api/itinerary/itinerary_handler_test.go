package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dora-travel/dora-planner/internal/types"
)

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) Generate(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	it, _ := args.Get(0).(*types.Itinerary)
	return it, args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, itinerary types.Itinerary) (*types.Session, error) {
	args := m.Called(ctx, itinerary)
	sess, _ := args.Get(0).(*types.Session)
	return sess, args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	args := m.Called(ctx, id)
	sess, _ := args.Get(0).(*types.Session)
	return sess, args.Error(1)
}

func (m *MockSessionService) Extend(ctx context.Context, id uuid.UUID) (*types.Session, error) {
	args := m.Called(ctx, id)
	sess, _ := args.Get(0).(*types.Session)
	return sess, args.Error(1)
}

func newTestRouter(itinerarySvc Service, sessionSvc *MockSessionService) *chi.Mux {
	h := NewHandler(itinerarySvc, sessionSvc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/generate-itinerary", h.Generate)
	r.Get("/api/itinerary/{sessionID}", h.GetBySession)
	r.Post("/api/prepare-auth/{sessionID}", h.PrepareAuth)
	return r
}

func testItinerary() *types.Itinerary {
	return &types.Itinerary{
		User:            types.UserSummary{Name: "Maya", Currency: "USD", Theme: types.ThemeFamily, PartySize: 2, BudgetPerPerson: 2000},
		Trip:            types.TripSummary{Origin: "San Francisco", Destination: "Tokyo, Japan", DurationDays: 5},
		DestinationInfo: testInfo,
	}
}

func TestGenerateEndpoint_ReturnsSessionAndItinerary(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	it := testItinerary()
	sess := &types.Session{ID: uuid.New(), Itinerary: *it, ExpiresAt: time.Now().Add(30 * time.Minute)}

	itinerarySvc.On("Generate", mock.Anything, mock.AnythingOfType("types.TripRequest")).Return(it, nil).Once()
	sessionSvc.On("Create", mock.Anything, *it).Return(sess, nil).Once()

	body, err := json.Marshal(tokyoRequest())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-itinerary", bytes.NewReader(body))
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sess.ID, resp.SessionID)
	assert.Equal(t, "Maya", resp.User.Name)
	assert.Equal(t, "Tokyo, Japan", resp.Trip.Destination)
	itinerarySvc.AssertExpectations(t)
	sessionSvc.AssertExpectations(t)
}

func TestGenerateEndpoint_RejectsInvalidRequest(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	invalid := tokyoRequest()
	invalid.Destinations = nil
	body, err := json.Marshal(invalid)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-itinerary", bytes.NewReader(body))
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	itinerarySvc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerateEndpoint_StorageOutageReturns503(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	it := testItinerary()
	itinerarySvc.On("Generate", mock.Anything, mock.Anything).Return(it, nil).Once()
	sessionSvc.On("Create", mock.Anything, *it).Return(nil, types.ErrStorageUnavailable).Once()

	body, err := json.Marshal(tokyoRequest())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-itinerary", bytes.NewReader(body))
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetEndpoint_UnknownSessionReturns404(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	id := uuid.New()
	sessionSvc.On("Get", mock.Anything, id).Return(nil, types.ErrSessionNotFound).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+id.String(), nil)
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestGetEndpoint_MalformedSessionIDReturns400(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/not-a-uuid", nil)
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	sessionSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetEndpoint_ReturnsStoredItinerary(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	sess := &types.Session{ID: uuid.New(), Itinerary: *testItinerary()}
	sessionSvc.On("Get", mock.Anything, sess.ID).Return(sess, nil).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/"+sess.ID.String(), nil)
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ItineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sess.ID, resp.SessionID)
	assert.Equal(t, "Welcome to Tokyo.", resp.DestinationInfo.Introduction)
}

func TestPrepareAuthEndpoint_ExtendsSession(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	sess := &types.Session{ID: uuid.New(), ExpiresAt: time.Now().Add(30 * time.Minute).UTC()}
	sessionSvc.On("Extend", mock.Anything, sess.ID).Return(sess, nil).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prepare-auth/"+sess.ID.String(), nil)
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["message"])
	assert.Equal(t, sess.ID.String(), resp["session_id"])
}

func TestPrepareAuthEndpoint_ExpiredSessionReturns404(t *testing.T) {
	itinerarySvc := new(MockItineraryService)
	sessionSvc := new(MockSessionService)

	id := uuid.New()
	sessionSvc.On("Extend", mock.Anything, id).Return(nil, types.ErrSessionNotFound).Once()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prepare-auth/"+id.String(), nil)
	newTestRouter(itinerarySvc, sessionSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
