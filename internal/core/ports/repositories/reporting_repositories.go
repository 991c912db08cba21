package repositories

import (
	"context"
	"time"
)

// MonthOccupancy summarizes shift coverage for one calendar month.
type MonthOccupancy struct {
	Month          time.Time `json:"month"`
	TotalShifts    int       `json:"totalShifts"`
	OccupiedShifts int       `json:"occupiedShifts"` // shifts with at least one confirmed allocation
}

// SeatUsage summarizes confirmed seats against available seats in a date range.
type SeatUsage struct {
	TotalSeats  int `json:"totalSeats"`
	FilledSeats int `json:"filledSeats"`
}

// ReportingRepository runs the aggregate queries behind the reporting
// endpoints.
type ReportingRepository interface {
	// MonthOccupancy computes shift occupancy for the month starting at monthStart.
	MonthOccupancy(ctx context.Context, monthStart time.Time) (MonthOccupancy, error)

	// SeatUsage computes seat usage for shifts dated in [from, to].
	SeatUsage(ctx context.Context, from, to time.Time) (SeatUsage, error)

	// TotalPointsDistributed sums every score total ever recorded.
	TotalPointsDistributed(ctx context.Context) (string, error)

	// TopWorkerName returns the name of the worker with the highest
	// cumulative total, or "" when there are no workers.
	TopWorkerName(ctx context.Context) (string, error)
}
