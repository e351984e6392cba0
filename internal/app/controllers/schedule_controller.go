package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// ScheduleController handles the weekly slot template and enrollments
type ScheduleController struct {
	scheduleService services.ScheduleService
}

// NewScheduleController creates a new schedule controller
func NewScheduleController(scheduleService services.ScheduleService) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// CreateSlot creates a weekly template slot
func (c *ScheduleController) CreateSlot(ctx *gin.Context) {
	var req dto.SlotRequest
	if !bindJSON(ctx, &req) {
		return
	}
	slot, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.scheduleService.CreateSlot(ctx, slot); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(slot, "Slot created"))
}

// GetSlot retrieves a slot with its roster
func (c *ScheduleController) GetSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	slot, err := c.scheduleService.GetSlot(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(slot, "Slot retrieved"))
}

// ListSlots retrieves the active weekly template
func (c *ScheduleController) ListSlots(ctx *gin.Context) {
	slots, err := c.scheduleService.ListSlots(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(slots, "Slots retrieved"))
}

// UpdateSlot updates a slot's placement and state
func (c *ScheduleController) UpdateSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SlotRequest
	if !bindJSON(ctx, &req) {
		return
	}
	slot, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	slot.ID = id

	if err := c.scheduleService.UpdateSlot(ctx, slot); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(slot, "Slot updated"))
}

// DeleteSlot removes a slot and its enrollments
func (c *ScheduleController) DeleteSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSlot(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Slot deleted"})
}

// Enroll adds a participant to a slot's roster
func (c *ScheduleController) Enroll(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if !bindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.scheduleService.Enroll(ctx, slotID, req.ParticipantID, req.Waitlisted, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(enrollment, "Participant enrolled"))
}

// Unenroll removes an enrollment
func (c *ScheduleController) Unenroll(ctx *gin.Context) {
	enrollmentID, ok := parseIDParam(ctx, "enrollmentId")
	if !ok {
		return
	}

	if err := c.scheduleService.Unenroll(ctx, enrollmentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Enrollment removed"})
}
