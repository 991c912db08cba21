package repositories

import (
	"context"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// ShiftReader defines read operations for shift data.
type ShiftReader interface {
	// FindShiftByID retrieves a shift by its unique identifier.
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)

	// ListShiftsByDateRange retrieves shifts whose date falls in [from, to],
	// ordered by date then period.
	ListShiftsByDateRange(ctx context.Context, from, to time.Time) ([]domain.Shift, error)
}

// ShiftWriter defines write operations for shift data.
type ShiftWriter interface {
	// SaveShifts inserts shifts, skipping (date, period) slots that already
	// exist. Returns the number actually created.
	SaveShifts(ctx context.Context, shifts []domain.Shift) (int, error)

	// UpdateShift updates status, capacity and notes of a shift.
	UpdateShift(ctx context.Context, shift domain.Shift) error

	// DeleteShift removes a shift. Returns apperrors.ErrConflict when any
	// allocation (of any status) references it.
	DeleteShift(ctx context.Context, shiftID string) error
}

// AllocationReader defines read operations for allocation data.
type AllocationReader interface {
	// FindAllocationByID retrieves an allocation by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.Allocation, error)

	// CountConfirmedByShift counts confirmed allocations of a shift.
	CountConfirmedByShift(ctx context.Context, shiftID string) (int, error)

	// FindConfirmedAllocation retrieves the confirmed allocation of a worker
	// on a shift, or apperrors.ErrNotFound.
	FindConfirmedAllocation(ctx context.Context, shiftID, workerID string) (*domain.Allocation, error)

	// HasConfirmedOnDate reports whether the worker holds a confirmed
	// allocation for any shift on the given calendar date.
	HasConfirmedOnDate(ctx context.Context, workerID string, date time.Time) (bool, error)

	// CountConfirmedInRange counts the worker's confirmed allocations whose
	// shift date falls in [from, to).
	CountConfirmedInRange(ctx context.Context, workerID string, from, to time.Time) (int, error)

	// ListConfirmedByShifts retrieves confirmed allocations for the given
	// shifts, grouped by shift ID.
	ListConfirmedByShifts(ctx context.Context, shiftIDs []string) (map[string][]domain.Allocation, error)

	// ListWorkerAllocationsFrom retrieves a worker's confirmed allocations for
	// shifts on or after the given date, with the shifts, ordered by date.
	ListWorkerAllocationsFrom(ctx context.Context, workerID string, from time.Time) ([]domain.Allocation, map[string]domain.Shift, error)
}

// AllocationWriter defines the transactional allocation mutations. Each method
// is a single all-or-nothing database transaction.
type AllocationWriter interface {
	// CreateAllocation inserts a confirmed allocation after re-verifying, with
	// the shift row locked, that confirmed seats remain below capacity, then
	// recomputes the shift status. Returns apperrors.ErrConflict (wrapped)
	// when the re-verification finds the shift full.
	CreateAllocation(ctx context.Context, allocation domain.Allocation) (domain.ShiftStatus, error)

	// CancelAllocation marks an allocation cancelled and reopens the shift
	// when its confirmed count falls below capacity.
	CancelAllocation(ctx context.Context, allocationID string, cancelledBy string, at time.Time) error

	// DeleteAllocation hard-deletes an allocation (manager removal) and
	// reopens the shift.
	DeleteAllocation(ctx context.Context, allocationID, deletedBy string, at time.Time) error
}

// ShiftRepositoryFacade combines the shift and allocation interfaces.
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
	AllocationReader
	AllocationWriter
}

// ShiftRepositoryWithTx extends ShiftRepositoryFacade with transaction capabilities.
type ShiftRepositoryWithTx interface {
	ShiftRepositoryFacade
	TransactionManager
}
