package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/repository"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

// KPISource computes the current dashboard KPIs.
type KPISource interface {
	DashboardKPIs(ctx context.Context) (DashboardKPIs, error)
}

// SnapshotService persists daily copies of the dashboard KPIs.
type SnapshotService struct {
	source    KPISource
	snapshots repository.SnapshotRepository
	logger    *zap.Logger
}

// NewSnapshotService constructs the service. A nil repository disables snapshots.
func NewSnapshotService(source KPISource, snapshots repository.SnapshotRepository, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{source: source, snapshots: snapshots, logger: logger}
}

// Enabled reports whether a snapshot store is configured.
func (s *SnapshotService) Enabled() bool {
	return s.snapshots != nil
}

// Capture computes the KPIs and stores them.
func (s *SnapshotService) Capture(ctx context.Context) (*domain.KPISnapshot, error) {
	if !s.Enabled() {
		return nil, apperrors.NewUnavailable("kpi snapshot store not configured")
	}
	kpis, err := s.source.DashboardKPIs(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.KPISnapshot{
		ID:                   uuid.NewString(),
		CapturedAt:           kpis.CapturedAt,
		PeriodLabel:          kpis.RevenuePeriod,
		PatientsCurrent:      int64(kpis.Patients.Current),
		PatientsPrevious:     int64(kpis.Patients.Previous),
		RevenueCurrent:       kpis.Revenue.Current,
		RevenuePrevious:      kpis.Revenue.Previous,
		SatisfactionCurrent:  kpis.Satisfaction.Current,
		SatisfactionPrevious: kpis.Satisfaction.Previous,
		SatisfactionPeriod:   kpis.Satisfaction.Period,
	}
	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return nil, apperrors.MapError("kpi snapshot", err)
	}
	s.logger.Info("kpi snapshot stored", zap.String("snapshot_id", snapshot.ID), zap.String("period", snapshot.PeriodLabel))
	return snapshot, nil
}

// History lists stored snapshots, newest first.
func (s *SnapshotService) History(ctx context.Context, limit int) ([]domain.KPISnapshot, error) {
	if !s.Enabled() {
		return nil, apperrors.NewUnavailable("kpi snapshot store not configured")
	}
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	snapshots, err := s.snapshots.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.MapError("kpi snapshots", err)
	}
	return snapshots, nil
}
