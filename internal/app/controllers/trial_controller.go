package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// TrialController handles trial bookings
type TrialController struct {
	trialService services.TrialService
}

// NewTrialController creates a new trial controller
func NewTrialController(trialService services.TrialService) *TrialController {
	return &TrialController{
		trialService: trialService,
	}
}

// Create books a trial attendance
func (c *TrialController) Create(ctx *gin.Context) {
	var req dto.CreateTrialRequest
	if !bindJSON(ctx, &req) {
		return
	}
	trial, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.trialService.Create(ctx, trial); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(trial, "Trial booked"))
}

// GetByID retrieves a trial booking
func (c *TrialController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	trial, err := c.trialService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(trial, "Trial retrieved"))
}

// GetByCode retrieves a trial booking by its public code
func (c *TrialController) GetByCode(ctx *gin.Context) {
	code, err := uuid.Parse(ctx.Param("code"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid code").
			WithField("code").
			WithDetails("code must be a UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	trial, err := c.trialService.GetByCode(ctx, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(trial, "Trial retrieved"))
}

// UpdateStatus moves a trial through its lifecycle
func (c *TrialController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateTrialStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.trialService.UpdateStatus(ctx, id, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Trial status updated"})
}

// Delete removes a trial booking
func (c *TrialController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.trialService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Trial deleted"})
}
