package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	"github.com/plantaohub/plantao_backend/internal/models"
)

type PgxWorkerRepository struct {
	db *pgxpool.Pool
}

func newPgxWorkerRepository(db *pgxpool.Pool) portsrepo.WorkerRepository {
	return &PgxWorkerRepository{db: db}
}

var _ portsrepo.WorkerRepository = (*PgxWorkerRepository)(nil)

func toDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID:     m.WorkerID,
		UserID:       m.UserID,
		Rank:         m.Rank,
		TotalPoints:  m.TotalPoints,
		MonthlyQuota: m.MonthlyQuota,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const workerColumns = `worker_id, user_id, rank, total_points, monthly_quota, created_at, created_by, last_updated_at, last_updated_by`

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var m models.Worker
	err := row.Scan(
		&m.WorkerID,
		&m.UserID,
		&m.Rank,
		&m.TotalPoints,
		&m.MonthlyQuota,
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

func (r *PgxWorkerRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1;`

	m, err := scanWorker(r.db.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker by ID %s: %w", workerID, err)
	}

	worker := toDomainWorker(*m)
	return &worker, nil
}

func (r *PgxWorkerRepository) FindWorkerByUserID(ctx context.Context, userID string) (*domain.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE user_id = $1;`

	m, err := scanWorker(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker by user ID %s: %w", userID, err)
	}

	worker := toDomainWorker(*m)
	return &worker, nil
}

// FindWorkerByName matches the user name behind the worker record,
// case-insensitively. The first match by name wins.
func (r *PgxWorkerRepository) FindWorkerByName(ctx context.Context, name string) (*domain.Worker, error) {
	query := `
		SELECT w.worker_id, w.user_id, w.rank, w.total_points, w.monthly_quota,
		       w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
		FROM workers w
		JOIN users u ON u.user_id = w.user_id AND u.deleted_at IS NULL
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY u.name
		LIMIT 1;
	`
	m, err := scanWorker(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker by name: %w", err)
	}

	worker := toDomainWorker(*m)
	return &worker, nil
}

func (r *PgxWorkerRepository) ListRankedWorkers(ctx context.Context) ([]portsrepo.RankedWorker, error) {
	query := `
		SELECT w.worker_id, w.user_id, w.rank, w.total_points, w.monthly_quota,
		       w.created_at, w.created_by, w.last_updated_at, w.last_updated_by,
		       u.name
		FROM workers w
		JOIN users u ON u.user_id = w.user_id AND u.deleted_at IS NULL
		WHERE w.rank IS NOT NULL
		ORDER BY w.rank ASC, u.name ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked workers: %w", err)
	}
	defer rows.Close()

	var ranked []portsrepo.RankedWorker
	for rows.Next() {
		var m models.Worker
		var name string
		err := rows.Scan(
			&m.WorkerID,
			&m.UserID,
			&m.Rank,
			&m.TotalPoints,
			&m.MonthlyQuota,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ranked worker row: %w", err)
		}
		ranked = append(ranked, portsrepo.RankedWorker{Worker: toDomainWorker(m), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ranked worker rows: %w", err)
	}
	return ranked, nil
}
