package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/observability"
)

const (
	JobOccupancy = "daily-occupancy"
	JobSnapshot  = "kpi-snapshot"

	defaultJobTimeout = 2 * time.Minute
)

// Locker takes cluster-wide named locks.
type Locker interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
}

// OccupancyInitializer rolls the bed occupancy forward to today.
type OccupancyInitializer interface {
	InitializeToday(ctx context.Context) (*domain.DailyBedOccupancy, bool, error)
}

// SnapshotCapturer stores a copy of the dashboard KPIs.
type SnapshotCapturer interface {
	Enabled() bool
	Capture(ctx context.Context) (*domain.KPISnapshot, error)
}

// Scheduler runs the daily jobs.
type Scheduler struct {
	cron       *cron.Cron
	occupancy  OccupancyInitializer
	snapshots  SnapshotCapturer
	locker     Locker
	lockTTL    time.Duration
	jobTimeout time.Duration
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// SchedulerDependencies bundles what the jobs need.
type SchedulerDependencies struct {
	Occupancy  OccupancyInitializer
	Snapshots  SnapshotCapturer
	Locker     Locker
	LockTTL    time.Duration
	JobTimeout time.Duration
	Location   *time.Location
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewScheduler builds a scheduler whose specs are read in the given location.
func NewScheduler(deps SchedulerDependencies) *Scheduler {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := deps.JobTimeout
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		occupancy:  deps.Occupancy,
		snapshots:  deps.Snapshots,
		locker:     deps.Locker,
		lockTTL:    deps.LockTTL,
		jobTimeout: timeout,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// Register adds both jobs using standard five-field cron specs.
func (s *Scheduler) Register(occupancySpec, snapshotSpec string) error {
	if _, err := s.cron.AddFunc(occupancySpec, s.job(JobOccupancy, s.RunOccupancy)); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(snapshotSpec, s.job(JobSnapshot, s.RunSnapshot)); err != nil {
		return err
	}
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

// RunOccupancy initializes today's occupancy record.
func (s *Scheduler) RunOccupancy(ctx context.Context) error {
	if s.occupancy == nil {
		return nil
	}
	_, _, err := s.occupancy.InitializeToday(ctx)
	return err
}

// RunSnapshot stores today's KPI snapshot when a snapshot store is configured.
func (s *Scheduler) RunSnapshot(ctx context.Context) error {
	if s.snapshots == nil || !s.snapshots.Enabled() {
		s.logger.Debug("kpi snapshot store disabled, skipping job")
		return nil
	}
	_, err := s.snapshots.Capture(ctx)
	return err
}

func (s *Scheduler) job(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		_ = s.RunLocked(ctx, name, run)
	}
}

// RunLocked executes run when this replica wins the job lock. A lock error is
// logged and the job still runs, so a Redis outage does not stop the daily jobs.
func (s *Scheduler) RunLocked(ctx context.Context, name string, run func(context.Context) error) error {
	if s.locker != nil {
		acquired, err := s.locker.AcquireLock(ctx, name, s.lockTTL)
		switch {
		case err != nil:
			s.logger.Warn("job lock unavailable, running unlocked", zap.String("job", name), zap.Error(err))
		case !acquired:
			s.logger.Info("job already taken by another replica", zap.String("job", name))
			return nil
		}
	}

	start := time.Now()
	err := run(ctx)
	s.metrics.RecordJobRun(name, err == nil)
	if err != nil {
		s.logger.Error("job failed", zap.String("job", name), zap.Duration("duration", time.Since(start)), zap.Error(err))
		return err
	}
	s.logger.Info("job finished", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	return nil
}
