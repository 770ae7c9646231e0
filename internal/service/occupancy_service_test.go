package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/events"
)

func TestInitializeTodaySeedsFromYesterday(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	today := time.Date(2026, time.October, 15, 0, 0, 0, 0, loc)
	repo := &fakeOccupancy{items: []domain.DailyBedOccupancy{
		{Date: today.AddDate(0, 0, -1), OccupancyCount: 42},
	}}
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventOccupancyInitialized, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})
	svc := NewOccupancyService(OccupancyDependencies{
		OccupancyRepo: repo,
		Dispatcher:    dispatcher,
		Location:      loc,
		Clock:         fixedClock(time.Date(2026, time.October, 15, 3, 0, 0, 0, time.UTC)),
	})

	record, created, err := svc.InitializeToday(context.Background())
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, record.Date.Equal(today))
	assert.Equal(t, 42, record.OccupancyCount)
	require.Len(t, published, 1)
	assert.Equal(t, "occupancy:2026-10-15", published[0].Subject)

	again, created, err := svc.InitializeToday(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 42, again.OccupancyCount)
	assert.Len(t, repo.items, 2)
	assert.Len(t, published, 1)
}

func TestInitializeTodayWithoutHistory(t *testing.T) {
	repo := &fakeOccupancy{}
	svc := NewOccupancyService(OccupancyDependencies{
		OccupancyRepo: repo,
		Clock:         fixedClock(time.Date(2026, time.October, 15, 18, 30, 0, 0, time.UTC)),
	})

	record, created, err := svc.InitializeToday(context.Background())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Zero(t, record.OccupancyCount)
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), record.Date)
}
