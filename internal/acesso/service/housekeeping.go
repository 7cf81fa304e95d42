package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gruas/acesso/internal/acesso/metrics"
	"github.com/gruas/acesso/internal/acesso/store"
)

// HousekeepingService periodically deletes decision records older than the
// retention window.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	now    func() time.Time
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to 1 hour and retention to 90 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs cleanup now and then every Interval. Call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop blocks until an in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.Logger.Error("failed to delete expired decisions", "error", err)
	}
}

// RunOnce deletes expired records and reports how many went.
func (s *HousekeepingService) RunOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.Retention)
	n, err := s.Store.Decisions().DeleteDecisionsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	metrics.AuditRecordsPurged.Add(float64(n))
	s.Logger.Info("housekeeping cleanup completed", "deleted", n, "cutoff", cutoff)
	return n, nil
}
