package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// CreditController handles credit drop-ins
type CreditController struct {
	creditService services.CreditService
}

// NewCreditController creates a new credit controller
func NewCreditController(creditService services.CreditService) *CreditController {
	return &CreditController{
		creditService: creditService,
	}
}

// Create records a credit drop-in
func (c *CreditController) Create(ctx *gin.Context) {
	var req dto.CreateCreditRequest
	if !bindJSON(ctx, &req) {
		return
	}
	credit, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.creditService.Create(ctx, credit); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(credit, "Credit drop-in recorded"))
}

// GetByID retrieves a credit usage
func (c *CreditController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	credit, err := c.creditService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(credit, "Credit usage retrieved"))
}

// Delete removes a credit usage
func (c *CreditController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.creditService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Credit usage deleted"})
}
