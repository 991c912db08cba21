package services

import (
	"context"
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
	"github.com/plantaohub/plantao_backend/internal/dto"
)

// ShiftWithAllocations pairs a shift with its confirmed allocations.
type ShiftWithAllocations struct {
	Shift       domain.Shift
	Allocations []domain.Allocation
}

// ShiftSvcFacade exposes the shift allocation workflow.
type ShiftSvcFacade interface {
	// ListShifts lists shifts in [from, to] with confirmed allocations attached.
	ListShifts(ctx context.Context, from, to time.Time) ([]ShiftWithAllocations, error)

	// GenerateMonth bulk-creates the month's shifts, skipping the configured
	// rest weekday and slots that already exist. Manager-only.
	GenerateMonth(ctx context.Context, actorID string, year, month int, originIP string) (created, existing int, err error)

	// ClaimShift runs the claim gate sequence for the worker behind
	// actorUserID and, on success, atomically creates the allocation.
	ClaimShift(ctx context.Context, actorUserID, shiftID, originIP string) (*domain.Allocation, error)

	// AssignWorker is the manager path: it places workerID on the shift,
	// checking existence, duplicate, same-day and capacity only.
	AssignWorker(ctx context.Context, actorID, shiftID, workerID, originIP string) (*domain.Allocation, error)

	// CancelAllocation cancels an allocation. Workers may cancel only their
	// own, and only for shifts strictly in the future; managers may cancel any.
	CancelAllocation(ctx context.Context, actorID, allocationID, originIP string) error

	// RemoveAllocation hard-deletes a worker's confirmed allocation on a
	// shift. Manager-only.
	RemoveAllocation(ctx context.Context, actorID, shiftID, workerID, originIP string) error

	// MyShifts lists the acting worker's upcoming allocations.
	MyShifts(ctx context.Context, actorUserID string) ([]domain.Allocation, map[string]domain.Shift, error)

	// AvailableShifts lists claimable shifts with at least one free seat in
	// [from, to].
	AvailableShifts(ctx context.Context, actorUserID string, from, to time.Time) ([]ShiftWithAllocations, error)

	// UpdateShift updates status/capacity/notes. Manager-only.
	UpdateShift(ctx context.Context, actorID, shiftID string, req dto.UpdateShiftRequest, originIP string) (*domain.Shift, error)

	// DeleteShift removes a shift without allocations. Manager-only.
	DeleteShift(ctx context.Context, actorID, shiftID, originIP string) error
}
