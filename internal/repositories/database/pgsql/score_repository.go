package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/models"
)

type PgxScoreRepository struct {
	db *pgxpool.Pool
}

func newPgxScoreRepository(db *pgxpool.Pool) portsrepo.ScoreRepositoryFacade {
	return &PgxScoreRepository{db: db}
}

var _ portsrepo.ScoreRepositoryFacade = (*PgxScoreRepository)(nil)

func toDomainScore(m models.MonthlyScore) domain.MonthlyScore {
	return domain.MonthlyScore{
		ScoreID:            m.ScoreID,
		WorkerID:           m.WorkerID,
		ReferenceMonth:     m.ReferenceMonth,
		Sales:              m.Sales,
		ReferralsFocus:     m.ReferralsFocus,
		ReferralsSecondary: m.ReferralsSecondary,
		ReferralsOther:     m.ReferralsOther,
		HighValueSales:     m.HighValueSales,
		PlaquesFocus:       m.PlaquesFocus,
		PlaquesSecondary:   m.PlaquesSecondary,
		PlaquesOther:       m.PlaquesOther,
		SalesPoints:        m.SalesPoints,
		ReferralPoints:     m.ReferralPoints,
		PlaquePoints:       m.PlaquePoints,
		TotalPoints:        m.TotalPoints,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const scoreColumns = `score_id, worker_id, reference_month, sales, referrals_focus, referrals_secondary, referrals_other, high_value_sales, plaques_focus, plaques_secondary, plaques_other, sales_points, referral_points, plaque_points, total_points, created_at, created_by, last_updated_at, last_updated_by`

func scanScore(row pgx.Row) (*models.MonthlyScore, error) {
	var m models.MonthlyScore
	err := row.Scan(
		&m.ScoreID,
		&m.WorkerID,
		&m.ReferenceMonth,
		&m.Sales,
		&m.ReferralsFocus,
		&m.ReferralsSecondary,
		&m.ReferralsOther,
		&m.HighValueSales,
		&m.PlaquesFocus,
		&m.PlaquesSecondary,
		&m.PlaquesOther,
		&m.SalesPoints,
		&m.ReferralPoints,
		&m.PlaquePoints,
		&m.TotalPoints,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxScoreRepository) FindScoreByID(ctx context.Context, scoreID string) (*domain.MonthlyScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM monthly_scores WHERE score_id = $1;`

	m, err := scanScore(r.db.QueryRow(ctx, query, scoreID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find score by ID %s: %w", scoreID, err)
	}

	score := toDomainScore(*m)
	return &score, nil
}

func (r *PgxScoreRepository) FindScore(ctx context.Context, workerID string, month time.Time) (*domain.MonthlyScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM monthly_scores WHERE worker_id = $1 AND reference_month = $2;`

	m, err := scanScore(r.db.QueryRow(ctx, query, workerID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find score: %w", err)
	}

	score := toDomainScore(*m)
	return &score, nil
}

// ListScoresByMonth returns the month's scores in insertion order; the
// ranking's stable tie-breaking relies on that order.
func (r *PgxScoreRepository) ListScoresByMonth(ctx context.Context, month time.Time) ([]domain.MonthlyScore, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM monthly_scores
		WHERE reference_month = $1
		ORDER BY created_at ASC, score_id ASC;
	`
	return r.queryScores(ctx, query, month)
}

func (r *PgxScoreRepository) ListScoresByWorker(ctx context.Context, workerID string) ([]domain.MonthlyScore, error) {
	query := `
		SELECT ` + scoreColumns + `
		FROM monthly_scores
		WHERE worker_id = $1
		ORDER BY reference_month DESC;
	`
	return r.queryScores(ctx, query, workerID)
}

func (r *PgxScoreRepository) queryScores(ctx context.Context, query string, args ...any) ([]domain.MonthlyScore, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	var scores []domain.MonthlyScore
	for rows.Next() {
		m, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		scores = append(scores, toDomainScore(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score rows: %w", err)
	}
	return scores, nil
}

func (r *PgxScoreRepository) SumTotalsByWorker(ctx context.Context, from, to time.Time) ([]domain.WorkerRanking, error) {
	query := `
		SELECT worker_id, SUM(total_points) AS total
		FROM monthly_scores
		WHERE reference_month >= $1 AND reference_month <= $2
		GROUP BY worker_id
		ORDER BY total DESC, MIN(created_at) ASC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.WorkerRanking
	for rows.Next() {
		var t domain.WorkerRanking
		if err := rows.Scan(&t.WorkerID, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate total rows: %w", err)
	}
	return totals, nil
}

func (r *PgxScoreRepository) SaveScore(ctx context.Context, score domain.MonthlyScore) error {
	query := `
		INSERT INTO monthly_scores (score_id, worker_id, reference_month, sales, referrals_focus, referrals_secondary, referrals_other, high_value_sales, plaques_focus, plaques_secondary, plaques_other, sales_points, referral_points, plaque_points, total_points, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (worker_id, reference_month) DO UPDATE SET
			sales = EXCLUDED.sales,
			referrals_focus = EXCLUDED.referrals_focus,
			referrals_secondary = EXCLUDED.referrals_secondary,
			referrals_other = EXCLUDED.referrals_other,
			high_value_sales = EXCLUDED.high_value_sales,
			plaques_focus = EXCLUDED.plaques_focus,
			plaques_secondary = EXCLUDED.plaques_secondary,
			plaques_other = EXCLUDED.plaques_other,
			sales_points = EXCLUDED.sales_points,
			referral_points = EXCLUDED.referral_points,
			plaque_points = EXCLUDED.plaque_points,
			total_points = EXCLUDED.total_points,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		score.ScoreID,
		score.WorkerID,
		score.ReferenceMonth,
		score.Sales,
		score.ReferralsFocus,
		score.ReferralsSecondary,
		score.ReferralsOther,
		score.HighValueSales,
		score.PlaquesFocus,
		score.PlaquesSecondary,
		score.PlaquesOther,
		score.SalesPoints,
		score.ReferralPoints,
		score.PlaquePoints,
		score.TotalPoints,
		score.CreatedAt,
		score.CreatedBy,
		score.LastUpdatedAt,
		score.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

func (r *PgxScoreRepository) DeleteScore(ctx context.Context, scoreID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM monthly_scores WHERE score_id = $1;`, scoreID)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyMonthlyRanking writes the recomputed scores and the worker rank/total
// assignments in one transaction.
func (r *PgxScoreRepository) ApplyMonthlyRanking(ctx context.Context, scores []domain.MonthlyScore, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	scoreQuery := `
		UPDATE monthly_scores
		SET sales_points = $2, referral_points = $3, plaque_points = $4, total_points = $5, last_updated_at = $6, last_updated_by = $7
		WHERE score_id = $1;
	`
	for _, score := range scores {
		if _, err := tx.Exec(ctx, scoreQuery,
			score.ScoreID, score.SalesPoints, score.ReferralPoints, score.PlaquePoints, score.TotalPoints, at, updatedBy,
		); err != nil {
			return fmt.Errorf("failed to update score %s: %w", score.ScoreID, err)
		}
	}

	if err := applyWorkerRankings(ctx, tx, rankings, updatedBy, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ranking: %w", err)
	}
	return nil
}

// ApplyAccumulatedRanking writes rank/total assignments computed over a
// multi-month window in one transaction.
func (r *PgxScoreRepository) ApplyAccumulatedRanking(ctx context.Context, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := applyWorkerRankings(ctx, tx, rankings, updatedBy, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ranking: %w", err)
	}
	return nil
}

func applyWorkerRankings(ctx context.Context, tx pgx.Tx, rankings []domain.WorkerRanking, updatedBy string, at time.Time) error {
	query := `
		UPDATE workers
		SET rank = $2, total_points = $3, last_updated_at = $4, last_updated_by = $5
		WHERE worker_id = $1;
	`
	for _, ranking := range rankings {
		if _, err := tx.Exec(ctx, query, ranking.WorkerID, ranking.Rank, ranking.Total, at, updatedBy); err != nil {
			return fmt.Errorf("failed to update worker %s rank: %w", ranking.WorkerID, err)
		}
	}
	return nil
}
