package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// OccurrenceController serves the resolved day view
type OccurrenceController struct {
	occurrenceService services.OccurrenceService
}

// NewOccurrenceController creates a new occurrence controller
func NewOccurrenceController(occurrenceService services.OccurrenceService) *OccurrenceController {
	return &OccurrenceController{
		occurrenceService: occurrenceService,
	}
}

// GetDay resolves one calendar date: occurrences with rosters, occupancy
// per occurrence and vacancy aggregated per time block. Defaults to
// today; an offeringId query narrows the result.
func (c *OccurrenceController) GetDay(ctx *gin.Context) {
	date, ok := parseDateQuery(ctx, "date", helpers.Today())
	if !ok {
		return
	}

	var offeringID *int64
	if raw := ctx.Query("offeringId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offeringId").
				WithField("offeringId").
				WithDetails("offeringId must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		offeringID = &id
	}

	day, err := c.occurrenceService.GetDaySchedule(ctx, date, offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(day, "Day schedule resolved"))
}

// GetOccurrence resolves a single slot occurrence with its roster
func (c *OccurrenceController) GetOccurrence(ctx *gin.Context) {
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	date, ok := parseDateParam(ctx, "date")
	if !ok {
		return
	}

	occ, err := c.occurrenceService.GetOccurrence(ctx, slotID, date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(occ, "Occurrence resolved"))
}
