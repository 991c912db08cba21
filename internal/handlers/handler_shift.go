package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plantaohub/plantao_backend/internal/apperrors"
	portssvc "github.com/plantaohub/plantao_backend/internal/core/ports/services"
	"github.com/plantaohub/plantao_backend/internal/dto"
	"github.com/plantaohub/plantao_backend/internal/utils"
)

// defaultListWindowDays bounds the shift listings when no range is given.
const defaultListWindowDays = 60

// shiftHandler handles the shift and allocation endpoints.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
}

func newShiftHandler(ss portssvc.ShiftSvcFacade) *shiftHandler {
	return &shiftHandler{shiftService: ss}
}

// registerShiftRoutes registers routes related to shifts and allocations.
func registerShiftRoutes(rg *gin.RouterGroup, shiftService portssvc.ShiftSvcFacade) {
	h := newShiftHandler(shiftService)

	shifts := rg.Group("/shifts")
	{
		shifts.GET("", h.listShifts)
		shifts.GET("/month/:year/:month", h.listMonth)
		shifts.GET("/mine", h.myShifts)
		shifts.GET("/available", h.availableShifts)
		shifts.POST("/generate-month", h.generateMonth)
		shifts.POST("/:shiftID/claim", h.claimShift)
		shifts.POST("/:shiftID/assign", h.assignWorker)
		shifts.DELETE("/allocations/:allocationID", h.cancelAllocation)
		shifts.DELETE("/:shiftID/allocations", h.removeAllocation)
		shifts.PUT("/:shiftID", h.updateShift)
		shifts.DELETE("/:shiftID", h.deleteShift)
	}
}

// parseRange reads the from/to query params, defaulting to the next
// defaultListWindowDays days.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	var params dto.ListShiftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return time.Time{}, time.Time{}, err
	}

	from := utils.DateOnly(time.Now())
	to := from.AddDate(0, 0, defaultListWindowDays)
	var err error
	if params.From != "" {
		if from, err = utils.ParseDate(params.From); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if params.To != "" {
		if to, err = utils.ParseDate(params.To); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("'to' precedes 'from'")
	}
	return from, to, nil
}

func toShiftListResponse(entries []portssvc.ShiftWithAllocations) dto.ListShiftsResponse {
	resp := dto.ListShiftsResponse{Shifts: make([]dto.ShiftResponse, len(entries))}
	for i, entry := range entries {
		resp.Shifts[i] = dto.ToShiftResponse(&entry.Shift, entry.Allocations)
	}
	return resp
}

func (h *shiftHandler) listShifts(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.shiftService.ListShifts(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Shifts", toShiftListResponse(entries))
}

func (h *shiftHandler) listMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondBindError(c, fmt.Errorf("invalid year"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		respondBindError(c, fmt.Errorf("invalid month"))
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	entries, err := h.shiftService.ListShifts(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Shifts", toShiftListResponse(entries))
}

func (h *shiftHandler) myShifts(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	allocations, shifts, err := h.shiftService.MyShifts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MyShiftsResponse{Entries: make([]dto.MyShiftEntry, 0, len(allocations))}
	for i := range allocations {
		shift, found := shifts[allocations[i].ShiftID]
		if !found {
			continue
		}
		resp.Entries = append(resp.Entries, dto.MyShiftEntry{
			Allocation: dto.ToAllocationResponse(&allocations[i]),
			Shift:      dto.ToShiftResponse(&shift, nil),
		})
	}
	respondOK(c, "Your shifts", resp)
}

func (h *shiftHandler) availableShifts(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	from, to, err := parseRange(c)
	if err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.shiftService.AvailableShifts(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Available shifts", toShiftListResponse(entries))
}

func (h *shiftHandler) generateMonth(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.GenerateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, existing, err := h.shiftService.GenerateMonth(c.Request.Context(), userID, req.Year, req.Month, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("Generated %d shifts (%d already existed)", created, existing),
		dto.GenerateMonthResponse{Created: created, Existing: existing})
}

func (h *shiftHandler) claimShift(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	allocation, err := h.shiftService.ClaimShift(c.Request.Context(), userID, c.Param("shiftID"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Shift claimed", dto.ToAllocationResponse(allocation))
}

func (h *shiftHandler) assignWorker(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.AssignWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	allocation, err := h.shiftService.AssignWorker(c.Request.Context(), userID, c.Param("shiftID"), req.WorkerID, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Worker assigned", dto.ToAllocationResponse(allocation))
}

func (h *shiftHandler) cancelAllocation(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.shiftService.CancelAllocation(c.Request.Context(), userID, c.Param("allocationID"), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Allocation cancelled", nil)
}

func (h *shiftHandler) removeAllocation(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	workerID := c.Query("workerID")
	if workerID == "" {
		respondError(c, fmt.Errorf("%w: workerID query parameter is required", apperrors.ErrValidation))
		return
	}

	if err := h.shiftService.RemoveAllocation(c.Request.Context(), userID, c.Param("shiftID"), workerID, c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Allocation removed", nil)
}

func (h *shiftHandler) updateShift(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	shift, err := h.shiftService.UpdateShift(c.Request.Context(), userID, c.Param("shiftID"), req, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Shift updated", dto.ToShiftResponse(shift, nil))
}

func (h *shiftHandler) deleteShift(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.shiftService.DeleteShift(c.Request.Context(), userID, c.Param("shiftID"), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Shift deleted", nil)
}
