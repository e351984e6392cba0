package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// AttendanceController handles the attendance sheet lifecycle for slot
// occurrences: drafts, submission and reopening.
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// GetSheet loads the merged attendance view of one occurrence
func (c *AttendanceController) GetSheet(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	date, ok := parseDateParam(ctx, "date")
	if !ok {
		return
	}

	sheet, err := c.attendanceService.LoadSheet(ctx, slotID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(sheet, "Attendance sheet loaded"))
}

// SaveMark stores one draft mark for an open occurrence
func (c *AttendanceController) SaveMark(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	date, ok := parseDateParam(ctx, "date")
	if !ok {
		return
	}
	var req dto.SaveMarkRequest
	if !bindJSON(ctx, &req) {
		return
	}

	mark, err := c.attendanceService.SaveMark(ctx, slotID, date, req.SubjectKey, req.Outcome)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(mark, "Mark saved"))
}

// Submit locks the occurrence's attendance
func (c *AttendanceController) Submit(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	date, ok := parseDateParam(ctx, "date")
	if !ok {
		return
	}
	var req dto.SubmitAttendanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	actor := middleware.CurrentUser(ctx)
	if actor == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.attendanceService.Submit(ctx, slotID, date, actor.ID, req.Marks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(result.Record, "Attendance submitted").WithWarnings(result.Warnings))
}

// Reopen unlocks a submitted occurrence (managers only)
func (c *AttendanceController) Reopen(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	date, ok := parseDateParam(ctx, "date")
	if !ok {
		return
	}

	if err := c.attendanceService.Reopen(ctx, middleware.CurrentUser(ctx), slotID, date); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Attendance reopened"})
}
