package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// OfferingController handles class offering management
type OfferingController struct {
	offeringService services.OfferingService
}

// NewOfferingController creates a new offering controller
func NewOfferingController(offeringService services.OfferingService) *OfferingController {
	return &OfferingController{
		offeringService: offeringService,
	}
}

// Create creates a new offering
func (c *OfferingController) Create(ctx *gin.Context) {
	var req dto.OfferingRequest
	if !bindJSON(ctx, &req) {
		return
	}
	offering, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.offeringService.CreateOffering(ctx, offering); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(offering, "Offering created"))
}

// GetByID retrieves an offering
func (c *OfferingController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	offering, err := c.offeringService.GetOfferingByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(offering, "Offering retrieved"))
}

// GetAll retrieves all offerings
func (c *OfferingController) GetAll(ctx *gin.Context) {
	offerings, err := c.offeringService.GetAllOfferings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(offerings, "Offerings retrieved"))
}

// Update updates an offering
func (c *OfferingController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.OfferingRequest
	if !bindJSON(ctx, &req) {
		return
	}
	offering, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	offering.ID = id

	if err := c.offeringService.UpdateOffering(ctx, offering); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(offering, "Offering updated"))
}

// Delete deletes an offering
func (c *OfferingController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.offeringService.DeleteOffering(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Offering deleted"})
}
