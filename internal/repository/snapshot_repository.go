package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// SnapshotRepository persists daily KPI snapshots in Postgres.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *domain.KPISnapshot) error
	ListRecent(ctx context.Context, limit int) ([]domain.KPISnapshot, error)
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository constructs repository.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *domain.KPISnapshot) error {
	const query = `
        INSERT INTO kpi_snapshots (id, captured_at, period_label, patients_current, patients_previous,
            revenue_current, revenue_previous, satisfaction_current, satisfaction_previous, satisfaction_period)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		snapshot.ID,
		snapshot.CapturedAt,
		snapshot.PeriodLabel,
		snapshot.PatientsCurrent,
		snapshot.PatientsPrevious,
		snapshot.RevenueCurrent,
		snapshot.RevenuePrevious,
		snapshot.SatisfactionCurrent,
		snapshot.SatisfactionPrevious,
		snapshot.SatisfactionPeriod,
	).Scan(&snapshot.CreatedAt)
}

func (r *snapshotRepository) ListRecent(ctx context.Context, limit int) ([]domain.KPISnapshot, error) {
	const query = `
        SELECT id, captured_at, period_label, patients_current, patients_previous,
               revenue_current, revenue_previous, satisfaction_current, satisfaction_previous,
               satisfaction_period, created_at
        FROM kpi_snapshots ORDER BY captured_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.KPISnapshot{}
	for rows.Next() {
		var s domain.KPISnapshot
		if err := rows.Scan(
			&s.ID,
			&s.CapturedAt,
			&s.PeriodLabel,
			&s.PatientsCurrent,
			&s.PatientsPrevious,
			&s.RevenueCurrent,
			&s.RevenuePrevious,
			&s.SatisfactionCurrent,
			&s.SatisfactionPrevious,
			&s.SatisfactionPeriod,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
