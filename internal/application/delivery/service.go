// Package delivery assigns drivers to orders and reports driver positions.
package delivery

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// MaxAssignments bounds the assignment listing
const MaxAssignments = 1000

// ErrMissingOrderID is returned when an assignment names no order
var ErrMissingOrderID = shared.NewDomainError("INVALID_ORDER_ID", "order_id is required")

// AssignDriverRequest assigns or unassigns the driver of an order.
// An empty DriverID unassigns.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id" binding:"omitempty,max=64"`
}

// AssignmentResponse is an assignment as returned to the dashboard
type AssignmentResponse struct {
	OrderID    string    `json:"order_id"`
	DriverID   *string   `json:"driver_id"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
}

// LocationResponse is a driver position
type LocationResponse struct {
	DriverID   string    `json:"driver_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	CapturedAt time.Time `json:"captured_at"`
}

// Service manages delivery assignments
type Service struct {
	repo   delivery.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new delivery Service
func NewService(repo delivery.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// AssignDriver upserts the assignment of an order
func (s *Service) AssignDriver(ctx context.Context, orderID string, req AssignDriverRequest) (*AssignmentResponse, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	a := delivery.NewAssignment(orderID, req.DriverID, s.now().UTC())
	if err := s.repo.UpsertAssignment(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery assignment saved",
		zap.String("order_id", orderID),
		zap.String("status", string(a.Status)),
	)
	return toAssignmentResponse(a), nil
}

// ListAssignments returns the most recent assignments, newest first
func (s *Service) ListAssignments(ctx context.Context) ([]AssignmentResponse, error) {
	assignments, err := s.repo.ListAssignments(ctx, MaxAssignments)
	if err != nil {
		return nil, err
	}
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, *toAssignmentResponse(a))
	}
	return out, nil
}

// DriverLocation returns the latest position of a driver.
// A driver that never reported yields shared.ErrNotFound.
func (s *Service) DriverLocation(ctx context.Context, driverID string) (*LocationResponse, error) {
	loc, err := s.repo.LatestLocation(ctx, driverID)
	if errors.Is(err, shared.ErrNotFound) || (err == nil && loc == nil) {
		return nil, shared.ErrNotFound.WithMessage("Driver has not reported a location")
	}
	if err != nil {
		return nil, err
	}
	return &LocationResponse{
		DriverID:   loc.DriverID,
		Lat:        loc.Lat,
		Lng:        loc.Lng,
		CapturedAt: loc.CapturedAt,
	}, nil
}

func toAssignmentResponse(a delivery.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		OrderID:    a.OrderID,
		DriverID:   a.DriverID,
		Status:     string(a.Status),
		AssignedAt: a.AssignedAt,
	}
}

