// Package delivery models driver assignments and driver positions.
package delivery

import (
	"context"
	"strings"
	"time"
)

// AssignmentStatus is the state of a delivery assignment
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentUnassigned AssignmentStatus = "unassigned"
)

// Assignment links an order to at most one driver. OrderID is unique.
type Assignment struct {
	OrderID    string
	DriverID   *string
	Status     AssignmentStatus
	AssignedAt time.Time
}

// NewAssignment builds the assignment for an order. An empty driver id
// unassigns the order.
func NewAssignment(orderID, driverID string, now time.Time) Assignment {
	a := Assignment{OrderID: orderID, Status: AssignmentUnassigned, AssignedAt: now}
	if d := strings.TrimSpace(driverID); d != "" {
		a.DriverID = &d
		a.Status = AssignmentAssigned
	}
	return a
}

// Location is a captured driver position
type Location struct {
	DriverID   string
	Lat        float64
	Lng        float64
	CapturedAt time.Time
}

// Repository persists assignments and reads driver positions
type Repository interface {
	UpsertAssignment(ctx context.Context, a Assignment) error
	ListAssignments(ctx context.Context, limit int) ([]Assignment, error)
	LatestLocation(ctx context.Context, driverID string) (*Location, error)
}
