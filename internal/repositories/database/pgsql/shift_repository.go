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

type PgxShiftRepository struct {
	BaseRepository
}

func newPgxShiftRepository(db *pgxpool.Pool) portsrepo.ShiftRepositoryWithTx {
	return &PgxShiftRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ShiftRepositoryWithTx = (*PgxShiftRepository)(nil)

func toDomainShift(m models.Shift) domain.Shift {
	return domain.Shift{
		ShiftID:  m.ShiftID,
		Date:     m.Date,
		Period:   domain.ShiftPeriod(m.Period),
		Status:   domain.ShiftStatus(m.Status),
		Capacity: m.Capacity,
		Notes:    m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainAllocation(m models.Allocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		ShiftID:      m.ShiftID,
		WorkerID:     m.WorkerID,
		Status:       domain.AllocationStatus(m.Status),
		Origin:       domain.AllocationOrigin(m.Origin),
		ConfirmedAt:  m.ConfirmedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const shiftColumns = `shift_id, shift_date, period, status, capacity, notes, created_at, created_by, last_updated_at, last_updated_by`
const allocationColumns = `allocation_id, shift_id, worker_id, status, origin, confirmed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanShift(row pgx.Row) (*models.Shift, error) {
	var m models.Shift
	err := row.Scan(
		&m.ShiftID,
		&m.Date,
		&m.Period,
		&m.Status,
		&m.Capacity,
		&m.Notes,
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

func scanAllocation(row pgx.Row) (*models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.ShiftID,
		&m.WorkerID,
		&m.Status,
		&m.Origin,
		&m.ConfirmedAt,
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

func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE shift_id = $1;`

	m, err := scanShift(r.Pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shift by ID %s: %w", shiftID, err)
	}

	shift := toDomainShift(*m)
	return &shift, nil
}

func (r *PgxShiftRepository) ListShiftsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE shift_date >= $1 AND shift_date <= $2
		ORDER BY shift_date ASC, period ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		m, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift row: %w", err)
		}
		shifts = append(shifts, toDomainShift(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift rows: %w", err)
	}
	return shifts, nil
}

// SaveShifts inserts the shifts, silently skipping (date, period) slots that
// already exist. Returns the number actually inserted.
func (r *PgxShiftRepository) SaveShifts(ctx context.Context, shifts []domain.Shift) (int, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		INSERT INTO shifts (shift_id, shift_date, period, status, capacity, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (shift_date, period) DO NOTHING;
	`
	created := 0
	for _, s := range shifts {
		tag, err := tx.Exec(ctx, query,
			s.ShiftID,
			s.Date,
			string(s.Period),
			string(s.Status),
			s.Capacity,
			s.Notes,
			s.CreatedAt,
			s.CreatedBy,
			s.LastUpdatedAt,
			s.LastUpdatedBy,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert shift %s/%s: %w", s.Date.Format("2006-01-02"), s.Period, err)
		}
		created += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit shift generation: %w", err)
	}
	return created, nil
}

func (r *PgxShiftRepository) UpdateShift(ctx context.Context, shift domain.Shift) error {
	query := `
		UPDATE shifts
		SET status = $2, capacity = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE shift_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		shift.ShiftID,
		string(shift.Status),
		shift.Capacity,
		shift.Notes,
		shift.LastUpdatedAt,
		shift.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteShift removes a shift, refusing while any allocation references it.
func (r *PgxShiftRepository) DeleteShift(ctx context.Context, shiftID string) error {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM allocations WHERE shift_id = $1;`, shiftID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count allocations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: shift has allocations", apperrors.ErrConflict)
	}

	tag, err := r.Pool.Exec(ctx, `DELETE FROM shifts WHERE shift_id = $1;`, shiftID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxShiftRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE allocation_id = $1;`

	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}

	allocation := toDomainAllocation(*m)
	return &allocation, nil
}

func (r *PgxShiftRepository) CountConfirmedByShift(ctx context.Context, shiftID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM allocations WHERE shift_id = $1 AND status = 'confirmed';`
	if err := r.Pool.QueryRow(ctx, query, shiftID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count confirmed allocations: %w", err)
	}
	return count, nil
}

func (r *PgxShiftRepository) FindConfirmedAllocation(ctx context.Context, shiftID, workerID string) (*domain.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE shift_id = $1 AND worker_id = $2 AND status = 'confirmed';`

	m, err := scanAllocation(r.Pool.QueryRow(ctx, query, shiftID, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find confirmed allocation: %w", err)
	}

	allocation := toDomainAllocation(*m)
	return &allocation, nil
}

func (r *PgxShiftRepository) HasConfirmedOnDate(ctx context.Context, workerID string, date time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM allocations a
			JOIN shifts s ON s.shift_id = a.shift_id
			WHERE a.worker_id = $1 AND a.status = 'confirmed' AND s.shift_date = $2
		);
	`
	if err := r.Pool.QueryRow(ctx, query, workerID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check same-day allocations: %w", err)
	}
	return exists, nil
}

func (r *PgxShiftRepository) CountConfirmedInRange(ctx context.Context, workerID string, from, to time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM allocations a
		JOIN shifts s ON s.shift_id = a.shift_id
		WHERE a.worker_id = $1 AND a.status = 'confirmed'
		  AND s.shift_date >= $2 AND s.shift_date < $3;
	`
	if err := r.Pool.QueryRow(ctx, query, workerID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count allocations in range: %w", err)
	}
	return count, nil
}

func (r *PgxShiftRepository) ListConfirmedByShifts(ctx context.Context, shiftIDs []string) (map[string][]domain.Allocation, error) {
	byShift := make(map[string][]domain.Allocation, len(shiftIDs))
	if len(shiftIDs) == 0 {
		return byShift, nil
	}

	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE shift_id = ANY($1) AND status = 'confirmed'
		ORDER BY confirmed_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		byShift[m.ShiftID] = append(byShift[m.ShiftID], toDomainAllocation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocation rows: %w", err)
	}
	return byShift, nil
}

func (r *PgxShiftRepository) ListWorkerAllocationsFrom(ctx context.Context, workerID string, from time.Time) ([]domain.Allocation, map[string]domain.Shift, error) {
	query := `
		SELECT a.allocation_id, a.shift_id, a.worker_id, a.status, a.origin, a.confirmed_at,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		       s.shift_id, s.shift_date, s.period, s.status, s.capacity, s.notes,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM allocations a
		JOIN shifts s ON s.shift_id = a.shift_id
		WHERE a.worker_id = $1 AND a.status = 'confirmed' AND s.shift_date >= $2
		ORDER BY s.shift_date ASC, s.period ASC;
	`
	rows, err := r.Pool.Query(ctx, query, workerID, from)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list worker allocations: %w", err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	shifts := make(map[string]domain.Shift)
	for rows.Next() {
		var a models.Allocation
		var s models.Shift
		err := rows.Scan(
			&a.AllocationID, &a.ShiftID, &a.WorkerID, &a.Status, &a.Origin, &a.ConfirmedAt,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
			&s.ShiftID, &s.Date, &s.Period, &s.Status, &s.Capacity, &s.Notes,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan worker allocation row: %w", err)
		}
		allocations = append(allocations, toDomainAllocation(a))
		shifts[s.ShiftID] = toDomainShift(s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate worker allocation rows: %w", err)
	}
	return allocations, shifts, nil
}

// CreateAllocation inserts the allocation inside one transaction, re-checking
// capacity with the shift row locked so concurrent claims cannot oversubscribe
// a shift.
func (r *PgxShiftRepository) CreateAllocation(ctx context.Context, allocation domain.Allocation) (domain.ShiftStatus, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var capacity int
	err = tx.QueryRow(ctx, `SELECT capacity FROM shifts WHERE shift_id = $1 FOR UPDATE;`, allocation.ShiftID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock shift row: %w", err)
	}

	var confirmed int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM allocations WHERE shift_id = $1 AND status = 'confirmed';`, allocation.ShiftID).Scan(&confirmed)
	if err != nil {
		return "", fmt.Errorf("failed to count confirmed allocations: %w", err)
	}
	if confirmed >= capacity {
		return "", fmt.Errorf("%w: shift is already full", apperrors.ErrConflict)
	}

	insertQuery := `
		INSERT INTO allocations (allocation_id, shift_id, worker_id, status, origin, confirmed_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertQuery,
		allocation.AllocationID,
		allocation.ShiftID,
		allocation.WorkerID,
		string(allocation.Status),
		string(allocation.Origin),
		allocation.ConfirmedAt,
		allocation.CreatedAt,
		allocation.CreatedBy,
		allocation.LastUpdatedAt,
		allocation.LastUpdatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert allocation: %w", err)
	}

	newStatus := domain.StatusForOccupancy(confirmed+1, capacity)
	_, err = tx.Exec(ctx, `UPDATE shifts SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE shift_id = $1;`,
		allocation.ShiftID, string(newStatus), allocation.LastUpdatedAt, allocation.LastUpdatedBy)
	if err != nil {
		return "", fmt.Errorf("failed to update shift status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit allocation: %w", err)
	}
	return newStatus, nil
}

// CancelAllocation marks the allocation cancelled and reopens the shift when
// its confirmed count falls below capacity.
func (r *PgxShiftRepository) CancelAllocation(ctx context.Context, allocationID string, cancelledBy string, at time.Time) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var shiftID string
	err = tx.QueryRow(ctx, `
		UPDATE allocations
		SET status = 'cancelled', last_updated_at = $2, last_updated_by = $3
		WHERE allocation_id = $1 AND status = 'confirmed'
		RETURNING shift_id;
	`, allocationID, at, cancelledBy).Scan(&shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to cancel allocation: %w", err)
	}

	if err := r.reopenShift(ctx, tx, shiftID, cancelledBy, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return nil
}

// DeleteAllocation hard-deletes the allocation and reopens the shift.
func (r *PgxShiftRepository) DeleteAllocation(ctx context.Context, allocationID, deletedBy string, at time.Time) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var shiftID string
	err = tx.QueryRow(ctx, `DELETE FROM allocations WHERE allocation_id = $1 RETURNING shift_id;`, allocationID).Scan(&shiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	if err := r.reopenShift(ctx, tx, shiftID, deletedBy, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit allocation removal: %w", err)
	}
	return nil
}

// reopenShift recomputes the shift status after a seat frees up: below
// capacity the shift goes back to open, at capacity it stays filled.
func (r *PgxShiftRepository) reopenShift(ctx context.Context, tx pgx.Tx, shiftID, updatedBy string, at time.Time) error {
	var capacity int
	var status string
	err := tx.QueryRow(ctx, `SELECT capacity, status FROM shifts WHERE shift_id = $1 FOR UPDATE;`, shiftID).Scan(&capacity, &status)
	if err != nil {
		return fmt.Errorf("failed to lock shift row: %w", err)
	}
	if status == string(domain.ShiftCancelled) {
		return nil
	}

	var confirmed int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM allocations WHERE shift_id = $1 AND status = 'confirmed';`, shiftID).Scan(&confirmed)
	if err != nil {
		return fmt.Errorf("failed to count confirmed allocations: %w", err)
	}

	newStatus := domain.ShiftFilled
	if confirmed < capacity {
		newStatus = domain.ShiftOpen
	}
	_, err = tx.Exec(ctx, `UPDATE shifts SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE shift_id = $1;`,
		shiftID, string(newStatus), at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update shift status: %w", err)
	}
	return nil
}
