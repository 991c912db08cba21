package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) MonthOccupancy(ctx context.Context, monthStart time.Time) (portsrepo.MonthOccupancy, error) {
	monthEnd := monthStart.AddDate(0, 1, 0)
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE EXISTS (
		           SELECT 1 FROM allocations a
		           WHERE a.shift_id = s.shift_id AND a.status = 'confirmed'
		       )) AS occupied
		FROM shifts s
		WHERE s.shift_date >= $1 AND s.shift_date < $2 AND s.status <> 'cancelled';
	`
	occ := portsrepo.MonthOccupancy{Month: monthStart}
	if err := r.db.QueryRow(ctx, query, monthStart, monthEnd).Scan(&occ.TotalShifts, &occ.OccupiedShifts); err != nil {
		return portsrepo.MonthOccupancy{}, fmt.Errorf("failed to compute month occupancy: %w", err)
	}
	return occ, nil
}

func (r *PgxReportingRepository) SeatUsage(ctx context.Context, from, to time.Time) (portsrepo.SeatUsage, error) {
	query := `
		SELECT COALESCE(SUM(s.capacity), 0) AS total_seats,
		       COALESCE(SUM((
		           SELECT COUNT(*) FROM allocations a
		           WHERE a.shift_id = s.shift_id AND a.status = 'confirmed'
		       )), 0) AS filled_seats
		FROM shifts s
		WHERE s.shift_date >= $1 AND s.shift_date <= $2 AND s.status <> 'cancelled';
	`
	var usage portsrepo.SeatUsage
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&usage.TotalSeats, &usage.FilledSeats); err != nil {
		return portsrepo.SeatUsage{}, fmt.Errorf("failed to compute seat usage: %w", err)
	}
	return usage, nil
}

func (r *PgxReportingRepository) TotalPointsDistributed(ctx context.Context) (string, error) {
	var total string
	query := `SELECT COALESCE(SUM(total_points), 0)::text FROM monthly_scores;`
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return "", fmt.Errorf("failed to sum distributed points: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) TopWorkerName(ctx context.Context) (string, error) {
	var name string
	query := `
		SELECT u.name
		FROM workers w
		JOIN users u ON u.user_id = w.user_id AND u.deleted_at IS NULL
		ORDER BY w.total_points DESC, u.name ASC
		LIMIT 1;
	`
	err := r.db.QueryRow(ctx, query).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find top worker: %w", err)
	}
	return name, nil
}
