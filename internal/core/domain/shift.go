package domain

import "time"

// ShiftPeriod is the slot of the day a shift covers.
type ShiftPeriod string

const (
	PeriodMorning   ShiftPeriod = "morning"
	PeriodAfternoon ShiftPeriod = "afternoon"
	PeriodEvening   ShiftPeriod = "evening"
	PeriodOvernight ShiftPeriod = "overnight"
)

// IsValid reports whether p is one of the known periods.
func (p ShiftPeriod) IsValid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodOvernight:
		return true
	}
	return false
}

// ShiftStatus tracks how occupied a shift is.
type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftPartial   ShiftStatus = "partial"
	ShiftFilled    ShiftStatus = "filled"
	ShiftCancelled ShiftStatus = "cancelled"
)

// Claimable reports whether workers may still claim the shift.
func (s ShiftStatus) Claimable() bool {
	return s == ShiftOpen || s == ShiftPartial
}

// StatusForOccupancy derives the shift status from a confirmed-seat count.
func StatusForOccupancy(confirmed, capacity int) ShiftStatus {
	if confirmed >= capacity {
		return ShiftFilled
	}
	if confirmed > 0 {
		return ShiftPartial
	}
	return ShiftOpen
}

// Shift is a date+period slot requiring worker coverage.
// Invariant: the count of confirmed allocations never exceeds Capacity.
type Shift struct {
	ShiftID  string      `json:"shiftID"` // Primary Key (UUID)
	Date     time.Time   `json:"date"`    // Calendar date (midnight UTC)
	Period   ShiftPeriod `json:"period"`
	Status   ShiftStatus `json:"status"`
	Capacity int         `json:"capacity"`
	Notes    string      `json:"notes,omitempty"`
	AuditFields
}

// AllocationStatus is the lifecycle state of an allocation.
type AllocationStatus string

const (
	AllocationConfirmed AllocationStatus = "confirmed"
	AllocationCancelled AllocationStatus = "cancelled"
)

// AllocationOrigin records how an allocation came to exist.
type AllocationOrigin string

const (
	OriginClaimed  AllocationOrigin = "claimed"  // self-claimed by the worker
	OriginAssigned AllocationOrigin = "assigned" // placed by a manager
)

// Allocation binds one worker to one shift.
// Invariants: at most one confirmed allocation per (worker, shift) pair and
// at most one per (worker, calendar date).
type Allocation struct {
	AllocationID string           `json:"allocationID"` // Primary Key (UUID)
	ShiftID      string           `json:"shiftID"`
	WorkerID     string           `json:"workerID"`
	Status       AllocationStatus `json:"status"`
	Origin       AllocationOrigin `json:"origin"`
	ConfirmedAt  time.Time        `json:"confirmedAt"`
	AuditFields
}
