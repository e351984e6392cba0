package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// AuditorController surfaces past occurrences with unsubmitted
// attendance.
type AuditorController struct {
	auditorService services.AuditorService
}

// NewAuditorController creates a new auditor controller
func NewAuditorController(auditorService services.AuditorService) *AuditorController {
	return &AuditorController{
		auditorService: auditorService,
	}
}

// GetPending scans ?from= .. ?to= (defaulting to the last seven days)
// for occurrences whose attendance was never submitted.
func (c *AuditorController) GetPending(ctx *gin.Context) {
	today := helpers.Today()

	from, ok := parseDateQuery(ctx, "from", today.AddDate(0, 0, -7))
	if !ok {
		return
	}
	to, ok := parseDateQuery(ctx, "to", today)
	if !ok {
		return
	}

	pending, err := c.auditorService.PendingOccurrences(ctx, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(pending, "Pending occurrences retrieved"))
}
