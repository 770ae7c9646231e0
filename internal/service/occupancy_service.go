package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/events"
	"github.com/spec-kit/hospital-analytics/internal/repository"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

// OccupancyService maintains the daily bed occupancy roll-up.
type OccupancyService struct {
	occupancy  repository.OccupancyRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
}

// OccupancyDependencies bundles requirements for the occupancy service.
type OccupancyDependencies struct {
	OccupancyRepo repository.OccupancyRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	Location      *time.Location
	Clock         func() time.Time
}

// NewOccupancyService constructs the service.
func NewOccupancyService(deps OccupancyDependencies) *OccupancyService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyService{
		occupancy:  deps.OccupancyRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		loc:        loc,
		now:        clock,
	}
}

// InitializeToday creates today's record seeded with yesterday's occupancy count.
// It reports false when today's record already existed.
func (s *OccupancyService) InitializeToday(ctx context.Context) (*domain.DailyBedOccupancy, bool, error) {
	today := analytics.StartOfDay(s.now().In(s.loc))

	existing, err := s.lookupDay(ctx, today)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	previous := 0
	yesterday, err := s.lookupDay(ctx, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, false, err
	}
	if yesterday != nil {
		previous = yesterday.OccupancyCount
	}

	record := &domain.DailyBedOccupancy{
		Date:           today,
		OccupancyCount: previous,
	}
	if err := s.occupancy.Create(ctx, record); err != nil {
		return nil, false, apperrors.MapError("bed occupancy", err)
	}

	day := today.Format("2006-01-02")
	s.logger.Info("daily occupancy initialized", zap.String("date", day), zap.Int("occupancy", previous))
	publishEvent(ctx, s.dispatcher, s.logger, s.now, events.Event{
		Type:    events.EventOccupancyInitialized,
		Subject: "occupancy:" + day,
		Payload: events.OccupancyInitializedPayload{Date: day, OccupancyCount: previous},
	})
	return record, true, nil
}

// lookupDay returns nil without error when the day has no record.
func (s *OccupancyService) lookupDay(ctx context.Context, day time.Time) (*domain.DailyBedOccupancy, error) {
	record, err := s.occupancy.GetByDate(ctx, day)
	if err == nil {
		return record, nil
	}
	if err = apperrors.MapError("bed occupancy", err); apperrors.IsNotFound(err) {
		return nil, nil
	}
	return nil, err
}
