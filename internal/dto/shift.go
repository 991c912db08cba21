package dto

import (
	"time"

	"github.com/plantaohub/plantao_backend/internal/core/domain"
)

// ListShiftsParams filters a shift listing by date. Dates use YYYY-MM-DD.
type ListShiftsParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// GenerateMonthRequest asks for bulk creation of a month of shifts.
type GenerateMonthRequest struct {
	Year  int `json:"year" binding:"required,min=2000,max=2200"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// GenerateMonthResponse reports how the generation went.
type GenerateMonthResponse struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
}

// AssignWorkerRequest names the worker a manager places on a shift.
type AssignWorkerRequest struct {
	WorkerID string `json:"workerID" binding:"required"`
}

// UpdateShiftRequest defines the manager-updatable shift fields. Pointers
// distinguish omitted fields from zero values.
type UpdateShiftRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=open partial filled cancelled"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1"`
	Notes    *string `json:"notes"`
}

// AllocationResponse is the public representation of an allocation.
type AllocationResponse struct {
	AllocationID string    `json:"allocationID"`
	ShiftID      string    `json:"shiftID"`
	WorkerID     string    `json:"workerID"`
	Status       string    `json:"status"`
	Origin       string    `json:"origin"`
	ConfirmedAt  time.Time `json:"confirmedAt"`
}

// ToAllocationResponse converts a domain.Allocation to its response DTO.
func ToAllocationResponse(a *domain.Allocation) AllocationResponse {
	return AllocationResponse{
		AllocationID: a.AllocationID,
		ShiftID:      a.ShiftID,
		WorkerID:     a.WorkerID,
		Status:       string(a.Status),
		Origin:       string(a.Origin),
		ConfirmedAt:  a.ConfirmedAt,
	}
}

// ShiftResponse is the public representation of a shift, optionally with its
// confirmed allocations attached.
type ShiftResponse struct {
	ShiftID     string               `json:"shiftID"`
	Date        string               `json:"date"` // YYYY-MM-DD
	Period      string               `json:"period"`
	Status      string               `json:"status"`
	Capacity    int                  `json:"capacity"`
	SeatsTaken  int                  `json:"seatsTaken"`
	Notes       string               `json:"notes,omitempty"`
	Allocations []AllocationResponse `json:"allocations,omitempty"`
}

// ToShiftResponse converts a domain.Shift and its confirmed allocations.
func ToShiftResponse(s *domain.Shift, allocations []domain.Allocation) ShiftResponse {
	resp := ShiftResponse{
		ShiftID:  s.ShiftID,
		Date:     s.Date.Format("2006-01-02"),
		Period:   string(s.Period),
		Status:   string(s.Status),
		Capacity: s.Capacity,
		Notes:    s.Notes,
	}
	for i := range allocations {
		resp.Allocations = append(resp.Allocations, ToAllocationResponse(&allocations[i]))
	}
	resp.SeatsTaken = len(resp.Allocations)
	return resp
}

// ListShiftsResponse wraps a shift listing.
type ListShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// MyShiftEntry pairs an allocation with its shift for the worker's agenda.
type MyShiftEntry struct {
	Allocation AllocationResponse `json:"allocation"`
	Shift      ShiftResponse      `json:"shift"`
}

// MyShiftsResponse wraps the worker's upcoming allocations.
type MyShiftsResponse struct {
	Entries []MyShiftEntry `json:"allocations"`
}
