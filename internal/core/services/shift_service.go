package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	"github.com/plantaohub/plantao_backend/internal/core/domain"
	portsrepo "github.com/plantaohub/plantao_backend/internal/core/ports/repositories"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/middleware"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// generatedPeriods are the day slots the month generator creates.
var generatedPeriods = []domain.ShiftPeriod{domain.PeriodMorning, domain.PeriodAfternoon}

// ShiftService runs the shift lifecycle and the gated claim workflow.
type ShiftService struct {
	shiftRepo  portsrepo.ShiftRepositoryWithTx
	workerRepo portsrepo.WorkerRepository
	userRepo   portsrepo.UserRepository
	settings   portssvc.SettingSvcFacade
	audit      portssvc.AuditSvcFacade
	notifier   portssvc.Notifier
	now        func() time.Time
}

// ShiftServiceOption customizes a ShiftService.
type ShiftServiceOption func(*ShiftService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) ShiftServiceOption {
	return func(s *ShiftService) {
		s.now = now
	}
}

// NewShiftService creates a new ShiftService.
func NewShiftService(
	shiftRepo portsrepo.ShiftRepositoryWithTx,
	workerRepo portsrepo.WorkerRepository,
	userRepo portsrepo.UserRepository,
	settings portssvc.SettingSvcFacade,
	audit portssvc.AuditSvcFacade,
	notifier portssvc.Notifier,
	opts ...ShiftServiceOption,
) *ShiftService {
	s := &ShiftService{
		shiftRepo:  shiftRepo,
		workerRepo: workerRepo,
		userRepo:   userRepo,
		settings:   settings,
		audit:      audit,
		notifier:   notifier,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ShiftSvcFacade = (*ShiftService)(nil)

// CheckClaimWindow decides whether a worker of the given rank may claim a
// shift dated shiftDate at instant now. Shifts in the current month carry no
// window restriction. Next-month shifts open on the policy's opening day:
// before it every claim is rejected, on it rank R within the stagger limit may
// claim from hour openingHour+(R-1), ranks beyond the limit carry no hour
// restriction. Anything past next month is always rejected.
func CheckClaimWindow(now, shiftDate time.Time, rank int, policy domain.SchedulePolicy) error {
	if utils.SameMonth(shiftDate, now) {
		return nil
	}

	nextMonth := utils.AddMonths(utils.MonthStart(now), 1)
	if !utils.SameMonth(shiftDate, nextMonth) {
		return fmt.Errorf("%w: claims are open only for the current and next month", apperrors.ErrConflict)
	}

	switch {
	case now.Day() < policy.OpeningDay:
		return fmt.Errorf("%w: next-month claims open on day %d", apperrors.ErrConflict, policy.OpeningDay)
	case now.Day() > policy.OpeningDay:
		return nil
	}

	// Opening day: only the top ranks enter on a staggered hourly schedule.
	if rank > policy.StaggerLimit {
		return nil
	}
	allowedHour := policy.OpeningHour + rank - 1
	if now.Hour() < allowedHour {
		return fmt.Errorf("%w: rank %d may claim from %02d:00 today", apperrors.ErrConflict, rank, allowedHour)
	}
	return nil
}

// ClaimShift runs the ordered claim gates for the worker behind actorUserID
// and, when every gate passes, creates the allocation atomically.
func (s *ShiftService) ClaimShift(ctx context.Context, actorUserID, shiftID, originIP string) (*domain.Allocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, worker, err := requireWorker(ctx, s.userRepo, s.workerRepo, actorUserID)
	if err != nil {
		middleware.CountClaimAttempt("rejected")
		return nil, err
	}

	allocation, err := s.claim(ctx, worker, shiftID)
	if err != nil {
		middleware.CountClaimAttempt("rejected")
		return nil, err
	}
	middleware.CountClaimAttempt("granted")

	logger.Info("Shift claimed",
		slog.String("shift_id", shiftID),
		slog.String("worker_id", worker.WorkerID),
	)
	s.audit.Record(ctx, actorUserID, "shift.claim", "allocations", allocation.AllocationID,
		map[string]string{"shiftID": shiftID, "workerID": worker.WorkerID}, originIP)
	s.notifier.Publish(ctx, "shift.claimed", map[string]string{"shiftID": shiftID, "workerID": worker.WorkerID})

	return allocation, nil
}

// claim evaluates the gate sequence and inserts the allocation.
func (s *ShiftService) claim(ctx context.Context, worker *domain.Worker, shiftID string) (*domain.Allocation, error) {
	now := s.now()

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: shift not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load shift: %w", err)
	}
	if !shift.Status.Claimable() {
		return nil, fmt.Errorf("%w: shift is not open for claims", apperrors.ErrConflict)
	}

	confirmed, err := s.shiftRepo.CountConfirmedByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to count allocations: %w", err)
	}
	if confirmed >= shift.Capacity {
		return nil, fmt.Errorf("%w: shift is already full", apperrors.ErrConflict)
	}

	if _, err := s.shiftRepo.FindConfirmedAllocation(ctx, shiftID, worker.WorkerID); err == nil {
		return nil, fmt.Errorf("%w: you already hold this shift", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing allocation: %w", err)
	}

	taken, err := s.shiftRepo.HasConfirmedOnDate(ctx, worker.WorkerID, shift.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check same-day allocations: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: you already hold a shift on this date", apperrors.ErrConflict)
	}

	monthStart := utils.MonthStart(shift.Date)
	inMonth, err := s.shiftRepo.CountConfirmedInRange(ctx, worker.WorkerID, monthStart, utils.AddMonths(monthStart, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to count monthly allocations: %w", err)
	}
	if inMonth >= worker.MonthlyQuota {
		return nil, fmt.Errorf("%w: monthly quota of %d shifts reached", apperrors.ErrConflict, worker.MonthlyQuota)
	}

	if utils.DateOnly(shift.Date).Before(utils.DateOnly(now)) {
		return nil, fmt.Errorf("%w: shift date has already passed", apperrors.ErrConflict)
	}

	policy, err := s.settings.SchedulePolicy(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckClaimWindow(now, shift.Date, worker.EffectiveRank(domain.UnrankedFallback), policy); err != nil {
		return nil, err
	}

	return s.insertAllocation(ctx, shift, worker.WorkerID, worker.UserID, domain.OriginClaimed, now)
}

// AssignWorker is the manager path: existence, duplicate, same-day and
// capacity gates only.
func (s *ShiftService) AssignWorker(ctx context.Context, actorID, shiftID, workerID, originIP string) (*domain.Allocation, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	worker, err := s.workerRepo.FindWorkerByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: worker not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load worker: %w", err)
	}

	if _, err := s.shiftRepo.FindConfirmedAllocation(ctx, shiftID, workerID); err == nil {
		return nil, fmt.Errorf("%w: worker already holds this shift", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing allocation: %w", err)
	}

	taken, err := s.shiftRepo.HasConfirmedOnDate(ctx, workerID, shift.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check same-day allocations: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: worker already holds a shift on this date", apperrors.ErrConflict)
	}

	confirmed, err := s.shiftRepo.CountConfirmedByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to count allocations: %w", err)
	}
	if confirmed >= shift.Capacity {
		return nil, fmt.Errorf("%w: shift is already full", apperrors.ErrConflict)
	}

	allocation, err := s.insertAllocation(ctx, shift, worker.WorkerID, actor.UserID, domain.OriginAssigned, now)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, "shift.assign", "allocations", allocation.AllocationID,
		map[string]string{"shiftID": shiftID, "workerID": workerID}, originIP)
	s.notifier.Publish(ctx, "shift.assigned", map[string]string{"shiftID": shiftID, "workerID": workerID})
	return allocation, nil
}

// insertAllocation builds the confirmed allocation and hands it to the
// repository, which re-verifies capacity under a row lock.
func (s *ShiftService) insertAllocation(ctx context.Context, shift *domain.Shift, workerID, createdBy string, origin domain.AllocationOrigin, now time.Time) (*domain.Allocation, error) {
	allocation := domain.Allocation{
		AllocationID: uuid.NewString(),
		ShiftID:      shift.ShiftID,
		WorkerID:     workerID,
		Status:       domain.AllocationConfirmed,
		Origin:       origin,
		ConfirmedAt:  now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if _, err := s.shiftRepo.CreateAllocation(ctx, allocation); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to create allocation",
			slog.String("error", err.Error()), slog.String("shift_id", shift.ShiftID))
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}
	return &allocation, nil
}

// CancelAllocation cancels an allocation. Workers may cancel only their own,
// and only for shifts strictly in the future; managers may cancel any.
func (s *ShiftService) CancelAllocation(ctx context.Context, actorID, allocationID, originIP string) error {
	now := s.now()

	allocation, err := s.shiftRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return err
	}
	if allocation.Status != domain.AllocationConfirmed {
		return fmt.Errorf("%w: allocation is already cancelled", apperrors.ErrConflict)
	}

	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if !actor.Type.IsManagerial() {
		worker, err := s.workerRepo.FindWorkerByUserID(ctx, actorID)
		if err != nil || worker.WorkerID != allocation.WorkerID {
			return fmt.Errorf("%w: you may only cancel your own allocations", apperrors.ErrForbidden)
		}
		shift, err := s.shiftRepo.FindShiftByID(ctx, allocation.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to load shift: %w", err)
		}
		if !utils.DateOnly(shift.Date).After(utils.DateOnly(now)) {
			return fmt.Errorf("%w: only future shifts can be cancelled", apperrors.ErrConflict)
		}
	}

	if err := s.shiftRepo.CancelAllocation(ctx, allocationID, actorID, now); err != nil {
		return fmt.Errorf("failed to cancel allocation: %w", err)
	}

	s.audit.Record(ctx, actorID, "shift.cancel_allocation", "allocations", allocationID,
		map[string]string{"shiftID": allocation.ShiftID, "workerID": allocation.WorkerID}, originIP)
	s.notifier.Publish(ctx, "shift.cancelled", map[string]string{"shiftID": allocation.ShiftID})
	return nil
}

// RemoveAllocation hard-deletes a worker's confirmed allocation. Manager-only.
func (s *ShiftService) RemoveAllocation(ctx context.Context, actorID, shiftID, workerID, originIP string) error {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return err
	}

	allocation, err := s.shiftRepo.FindConfirmedAllocation(ctx, shiftID, workerID)
	if err != nil {
		return err
	}
	if err := s.shiftRepo.DeleteAllocation(ctx, allocation.AllocationID, actorID, s.now()); err != nil {
		return fmt.Errorf("failed to remove allocation: %w", err)
	}

	s.audit.Record(ctx, actorID, "shift.remove_allocation", "allocations", allocation.AllocationID,
		map[string]string{"shiftID": shiftID, "workerID": workerID}, originIP)
	s.notifier.Publish(ctx, "shift.cancelled", map[string]string{"shiftID": shiftID})
	return nil
}

// GenerateMonth bulk-creates the month's shifts. Manager-only.
func (s *ShiftService) GenerateMonth(ctx context.Context, actorID string, year, month int, originIP string) (int, int, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return 0, 0, err
	}
	now := s.now()

	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month must be between 1 and 12", apperrors.ErrValidation)
	}
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if monthStart.Before(utils.MonthStart(now)) {
		return 0, 0, fmt.Errorf("%w: cannot generate shifts for a past month", apperrors.ErrConflict)
	}

	policy, err := s.settings.SchedulePolicy(ctx)
	if err != nil {
		return 0, 0, err
	}

	var shifts []domain.Shift
	for day := monthStart; day.Month() == time.Month(month); day = day.AddDate(0, 0, 1) {
		if int(day.Weekday()) == policy.RestWeekday {
			continue
		}
		for _, period := range generatedPeriods {
			shifts = append(shifts, domain.Shift{
				ShiftID:  uuid.NewString(),
				Date:     day,
				Period:   period,
				Status:   domain.ShiftOpen,
				Capacity: policy.ShiftCapacity,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     actor.UserID,
					LastUpdatedAt: now,
					LastUpdatedBy: actor.UserID,
				},
			})
		}
	}

	created, err := s.shiftRepo.SaveShifts(ctx, shifts)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to generate shifts: %w", err)
	}
	existing := len(shifts) - created

	s.audit.Record(ctx, actorID, "shift.generate_month", "shifts", monthStart.Format("2006-01"),
		map[string]int{"created": created, "existing": existing}, originIP)
	s.notifier.Publish(ctx, "shifts.generated", map[string]string{"month": monthStart.Format("2006-01")})
	return created, existing, nil
}

// ListShifts lists shifts in [from, to] with confirmed allocations attached.
func (s *ShiftService) ListShifts(ctx context.Context, from, to time.Time) ([]portssvc.ShiftWithAllocations, error) {
	shifts, err := s.shiftRepo.ListShiftsByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return s.attachAllocations(ctx, shifts)
}

// AvailableShifts lists claimable shifts with at least one free seat.
func (s *ShiftService) AvailableShifts(ctx context.Context, actorUserID string, from, to time.Time) ([]portssvc.ShiftWithAllocations, error) {
	if _, _, err := requireWorker(ctx, s.userRepo, s.workerRepo, actorUserID); err != nil {
		return nil, err
	}

	today := utils.DateOnly(s.now())
	if from.Before(today) {
		from = today
	}

	all, err := s.ListShifts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	available := make([]portssvc.ShiftWithAllocations, 0, len(all))
	for _, entry := range all {
		if entry.Shift.Status.Claimable() && len(entry.Allocations) < entry.Shift.Capacity {
			available = append(available, entry)
		}
	}
	return available, nil
}

// MyShifts lists the acting worker's upcoming allocations.
func (s *ShiftService) MyShifts(ctx context.Context, actorUserID string) ([]domain.Allocation, map[string]domain.Shift, error) {
	_, worker, err := requireWorker(ctx, s.userRepo, s.workerRepo, actorUserID)
	if err != nil {
		return nil, nil, err
	}
	return s.shiftRepo.ListWorkerAllocationsFrom(ctx, worker.WorkerID, utils.DateOnly(s.now()))
}

// UpdateShift updates status, capacity and notes. Manager-only.
func (s *ShiftService) UpdateShift(ctx context.Context, actorID, shiftID string, req dto.UpdateShiftRequest, originIP string) (*domain.Shift, error) {
	actor, err := requireManagerial(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.shiftRepo.CountConfirmedByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to count allocations: %w", err)
	}

	if req.Capacity != nil {
		if *req.Capacity < confirmed {
			return nil, fmt.Errorf("%w: capacity cannot drop below %d confirmed allocations", apperrors.ErrConflict, confirmed)
		}
		shift.Capacity = *req.Capacity
		shift.Status = domain.StatusForOccupancy(confirmed, shift.Capacity)
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	shift.LastUpdatedAt = now
	shift.LastUpdatedBy = actor.UserID

	if err := s.shiftRepo.UpdateShift(ctx, *shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	s.audit.Record(ctx, actorID, "shift.update", "shifts", shiftID, req, originIP)
	s.notifier.Publish(ctx, "shift.updated", map[string]string{"shiftID": shiftID})
	return shift, nil
}

// DeleteShift removes a shift without allocations. Manager-only.
func (s *ShiftService) DeleteShift(ctx context.Context, actorID, shiftID, originIP string) error {
	if _, err := requireManagerial(ctx, s.userRepo, actorID); err != nil {
		return err
	}
	if err := s.shiftRepo.DeleteShift(ctx, shiftID); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, "shift.delete", "shifts", shiftID, nil, originIP)
	s.notifier.Publish(ctx, "shift.deleted", map[string]string{"shiftID": shiftID})
	return nil
}

// attachAllocations pairs shifts with their confirmed allocations.
func (s *ShiftService) attachAllocations(ctx context.Context, shifts []domain.Shift) ([]portssvc.ShiftWithAllocations, error) {
	ids := make([]string, len(shifts))
	for i := range shifts {
		ids[i] = shifts[i].ShiftID
	}
	byShift, err := s.shiftRepo.ListConfirmedByShifts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	out := make([]portssvc.ShiftWithAllocations, len(shifts))
	for i := range shifts {
		out[i] = portssvc.ShiftWithAllocations{
			Shift:       shifts[i],
			Allocations: byShift[shifts[i].ShiftID],
		}
	}
	return out, nil
}
