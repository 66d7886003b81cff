package monitoring

import "github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"

// EventSnapshotTaken is published after each periodic snapshot
const EventSnapshotTaken = "MonitoringSnapshot"

const (
	aggregateType = "Monitoring"
	aggregateID   = "store"
)

// SnapshotTaken carries a computed snapshot
type SnapshotTaken struct {
	shared.BaseDomainEvent
	Snapshot Snapshot `json:"snapshot"`
}

// NewSnapshotTaken creates a SnapshotTaken event
func NewSnapshotTaken(s Snapshot) *SnapshotTaken {
	return &SnapshotTaken{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSnapshotTaken, aggregateType, aggregateID),
		Snapshot:        s,
	}
}
