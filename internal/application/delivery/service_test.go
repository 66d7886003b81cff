package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// MockDeliveryRepository is a mock implementation of delivery.Repository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) UpsertAssignment(ctx context.Context, a delivery.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDeliveryRepository) ListAssignments(ctx context.Context, limit int) ([]delivery.Assignment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.Assignment), args.Error(1)
}

func (m *MockDeliveryRepository) LatestLocation(ctx context.Context, driverID string) (*delivery.Location, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Location), args.Error(1)
}

func newTestService(repo *MockDeliveryRepository) *Service {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_AssignDriver(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDeliveryRepository)
	svc := newTestService(repo)

	driver := "d-1"
	repo.On("UpsertAssignment", ctx, delivery.Assignment{
		OrderID:    "o-1",
		DriverID:   &driver,
		Status:     delivery.AssignmentAssigned,
		AssignedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}).Return(nil)

	resp, err := svc.AssignDriver(ctx, "o-1", AssignDriverRequest{DriverID: " d-1 "})
	require.NoError(t, err)
	assert.Equal(t, "assigned", resp.Status)
	require.NotNil(t, resp.DriverID)
	assert.Equal(t, "d-1", *resp.DriverID)
	repo.AssertExpectations(t)
}

func TestService_AssignDriver_EmptyDriverUnassigns(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDeliveryRepository)
	svc := newTestService(repo)

	repo.On("UpsertAssignment", ctx, mock.MatchedBy(func(a delivery.Assignment) bool {
		return a.DriverID == nil && a.Status == delivery.AssignmentUnassigned
	})).Return(nil)

	resp, err := svc.AssignDriver(ctx, "o-1", AssignDriverRequest{})
	require.NoError(t, err)
	assert.Equal(t, "unassigned", resp.Status)
	assert.Nil(t, resp.DriverID)
}

func TestService_AssignDriver_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing order id", func(t *testing.T) {
		repo := new(MockDeliveryRepository)
		_, err := newTestService(repo).AssignDriver(ctx, "  ", AssignDriverRequest{DriverID: "d"})
		assert.ErrorIs(t, err, ErrMissingOrderID)
		repo.AssertNotCalled(t, "UpsertAssignment", mock.Anything, mock.Anything)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockDeliveryRepository)
		repo.On("UpsertAssignment", ctx, mock.Anything).Return(errors.New("db down"))
		_, err := newTestService(repo).AssignDriver(ctx, "o-1", AssignDriverRequest{DriverID: "d"})
		assert.EqualError(t, err, "db down")
	})
}

func TestService_ListAssignments(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDeliveryRepository)
	svc := newTestService(repo)

	repo.On("ListAssignments", ctx, MaxAssignments).Return([]delivery.Assignment{
		{OrderID: "o-2", Status: delivery.AssignmentUnassigned},
		{OrderID: "o-1", Status: delivery.AssignmentAssigned},
	}, nil)

	list, err := svc.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o-2", list[0].OrderID)
}

func TestService_DriverLocation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDeliveryRepository)
	svc := newTestService(repo)

	captured := time.Date(2024, 5, 1, 9, 59, 0, 0, time.UTC)
	repo.On("LatestLocation", ctx, "d-1").Return(&delivery.Location{DriverID: "d-1", Lat: 12.1, Lng: 15.04, CapturedAt: captured}, nil)
	repo.On("LatestLocation", ctx, "d-2").Return(nil, shared.ErrNotFound)

	loc, err := svc.DriverLocation(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 12.1, loc.Lat)
	assert.Equal(t, captured, loc.CapturedAt)

	_, err = svc.DriverLocation(ctx, "d-2")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
