package cache

import (
	"context"
	"sync"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

// InMemoryIdempotencyStore keeps delivery claims in process memory. Claims
// are not shared between instances, so it only fits single-instance
// deployments and local development.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	expiry  map[string]time.Time
	now     func() time.Time
	stop    context.CancelFunc
	stopped chan struct{}
}

// NewInMemoryIdempotencyStore starts a sweeper that drops expired claims
// every sweepInterval, five minutes when zero.
func NewInMemoryIdempotencyStore(sweepInterval time.Duration) *InMemoryIdempotencyStore {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &InMemoryIdempotencyStore{
		expiry:  make(map[string]time.Time),
		now:     time.Now,
		stop:    cancel,
		stopped: make(chan struct{}),
	}
	go s.sweepEvery(ctx, sweepInterval)
	return s
}

// MarkProcessed claims key unless a live claim exists
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, held := s.expiry[key]; held && now.Before(until) {
		return false, nil
	}
	s.expiry[key] = now.Add(ttl)
	return true, nil
}

// Forget drops the claim on key
func (s *InMemoryIdempotencyStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.expiry, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper and waits for it. Later calls are no-ops.
func (s *InMemoryIdempotencyStore) Close() error {
	s.stop()
	<-s.stopped
	return nil
}

// Size is the number of claims held, expired ones included until swept
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiry)
}

func (s *InMemoryIdempotencyStore) sweepEvery(ctx context.Context, interval time.Duration) {
	defer close(s.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, until := range s.expiry {
		if !now.Before(until) {
			delete(s.expiry, key)
		}
	}
}
