package models

import "time"

// Shift represents a row of the shifts table.
type Shift struct {
	ShiftID  string    `db:"shift_id"`
	Date     time.Time `db:"shift_date"`
	Period   string    `db:"period"`
	Status   string    `db:"status"`
	Capacity int       `db:"capacity"`
	Notes    string    `db:"notes"`
	AuditFields
}

// Allocation represents a row of the allocations table.
type Allocation struct {
	AllocationID string    `db:"allocation_id"`
	ShiftID      string    `db:"shift_id"`
	WorkerID     string    `db:"worker_id"`
	Status       string    `db:"status"`
	Origin       string    `db:"origin"`
	ConfirmedAt  time.Time `db:"confirmed_at"`
	AuditFields
}
