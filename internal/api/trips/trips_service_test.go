package trips

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dora-travel/dora-planner/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveTrip(ctx context.Context, userID uuid.UUID, itinerary types.Itinerary) (*types.SavedTrip, error) {
	args := m.Called(ctx, userID, itinerary)
	trip, _ := args.Get(0).(*types.SavedTrip)
	return trip, args.Error(1)
}

func (m *MockRepository) ListTrips(ctx context.Context, userID uuid.UUID) ([]types.SavedTrip, error) {
	args := m.Called(ctx, userID)
	trips, _ := args.Get(0).([]types.SavedTrip)
	return trips, args.Error(1)
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

func TestConvertSession_SavesSessionItinerary(t *testing.T) {
	repo := new(MockRepository)
	sessions := new(MockSessionService)
	svc := NewServiceImpl(repo, sessions, testLogger())

	userID := uuid.New()
	sess := &types.Session{ID: uuid.New(), Itinerary: sampleItinerary()}
	saved := &types.SavedTrip{ID: uuid.New(), UserID: userID, Itinerary: sess.Itinerary, Status: StatusSaved}

	sessions.On("Get", mock.Anything, sess.ID).Return(sess, nil).Once()
	repo.On("SaveTrip", mock.Anything, userID, sess.Itinerary).Return(saved, nil).Once()

	trip, err := svc.ConvertSession(context.Background(), userID, sess.ID)

	require.NoError(t, err)
	assert.Equal(t, saved.ID, trip.ID)
	assert.Equal(t, "Tokyo, Japan", trip.Itinerary.Trip.Destination)
	repo.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestConvertSession_ExpiredSessionIsNotSaved(t *testing.T) {
	repo := new(MockRepository)
	sessions := new(MockSessionService)
	svc := NewServiceImpl(repo, sessions, testLogger())

	sessionID := uuid.New()
	sessions.On("Get", mock.Anything, sessionID).Return(nil, types.ErrSessionNotFound).Once()

	_, err := svc.ConvertSession(context.Background(), uuid.New(), sessionID)

	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	repo.AssertNotCalled(t, "SaveTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_ReturnsRepositoryTrips(t *testing.T) {
	repo := new(MockRepository)
	sessions := new(MockSessionService)
	svc := NewServiceImpl(repo, sessions, testLogger())

	userID := uuid.New()
	repo.On("ListTrips", mock.Anything, userID).
		Return([]types.SavedTrip{{ID: uuid.New(), UserID: userID, Status: StatusSaved}}, nil).Once()

	trips, err := svc.List(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, trips, 1)
}
