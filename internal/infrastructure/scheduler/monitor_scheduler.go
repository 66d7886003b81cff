package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrSchedulerNotRunning is returned when triggering a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler is not running")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)

// Collector computes and reports one monitoring snapshot
type Collector interface {
	Collect(ctx context.Context) error
}

// MonitorScheduler runs a Collector at a fixed interval
type MonitorScheduler struct {
	collector Collector
	logger    *zap.Logger
	config    MonitorSchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// MonitorSchedulerConfig holds configuration for the monitor scheduler
type MonitorSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval between two collections
	Interval time.Duration

	// RunTimeout is the maximum time for one collection
	RunTimeout time.Duration

	// RunOnStart collects once immediately instead of waiting a full interval
	RunOnStart bool
}

// DefaultMonitorSchedulerConfig returns default configuration
func DefaultMonitorSchedulerConfig() MonitorSchedulerConfig {
	return MonitorSchedulerConfig{
		Enabled:    true,
		Interval:   5 * time.Minute,
		RunTimeout: 1 * time.Minute,
		RunOnStart: true,
	}
}

// Validate checks the configuration
func (c MonitorSchedulerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidConfig)
	}
	if c.RunTimeout <= 0 {
		return fmt.Errorf("%w: run timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// NewMonitorScheduler creates a new monitor scheduler
func NewMonitorScheduler(collector Collector, logger *zap.Logger, config MonitorSchedulerConfig) *MonitorScheduler {
	return &MonitorScheduler{
		collector: collector,
		logger:    logger,
		config:    config,
	}
}

// Start starts the periodic collection
func (s *MonitorScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Monitor scheduler is disabled")
		return nil
	}
	if err := s.config.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Monitor scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *MonitorScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Monitor scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Monitor scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *MonitorScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.execute(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Monitor loop stopping")
			return
		case <-ticker.C:
			s.execute(ctx)
		}
	}
}

// execute runs one collection. A failure is logged and the loop keeps going.
func (s *MonitorScheduler) execute(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Monitoring collection panicked", zap.Any("panic", r))
		}
	}()

	if err := s.collector.Collect(runCtx); err != nil {
		s.logger.Error("Monitoring collection failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Monitoring collection completed", zap.Duration("duration", time.Since(start)))
}

// TriggerImmediate runs a collection now, outside the regular interval
func (s *MonitorScheduler) TriggerImmediate(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate monitoring collection")

	go func() {
		defer s.wg.Done()
		s.execute(ctx)
	}()
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *MonitorScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
