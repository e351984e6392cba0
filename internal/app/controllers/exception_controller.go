package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// ExceptionController handles the reschedule workflow
type ExceptionController struct {
	exceptionService services.ExceptionService
}

// NewExceptionController creates a new exception controller
func NewExceptionController(exceptionService services.ExceptionService) *ExceptionController {
	return &ExceptionController{
		exceptionService: exceptionService,
	}
}

// Create files a pending reschedule request
func (c *ExceptionController) Create(ctx *gin.Context) {
	var req dto.CreateExceptionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	exc, err := req.ToModel()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.exceptionService.Create(ctx, exc); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(exc, "Reschedule request filed"))
}

// List retrieves exceptions, optionally filtered by ?status=
func (c *ExceptionController) List(ctx *gin.Context) {
	var status *models.ExceptionStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ExceptionStatus(raw)
		if !s.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status").
				WithField("status").
				WithDetails("status must be pending, approved or rejected")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &s
	}

	exceptions, err := c.exceptionService.List(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(exceptions, "Exceptions retrieved"))
}

// GetByID retrieves a reschedule exception
func (c *ExceptionController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exc, err := c.exceptionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(exc, "Exception retrieved"))
}

// Approve approves a pending exception
func (c *ExceptionController) Approve(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exc, err := c.exceptionService.Approve(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(exc, "Exception approved"))
}

// Reject rejects a pending exception, keeping it on file
func (c *ExceptionController) Reject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exc, err := c.exceptionService.Reject(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(exc, "Exception rejected"))
}

// GetDestination resolves the occurrence an exception moves into
func (c *ExceptionController) GetDestination(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	occ, err := c.exceptionService.ResolveDestination(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(occ, "Destination occurrence resolved"))
}

// Cancel withdraws a request, deleting it outright
func (c *ExceptionController) Cancel(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.exceptionService.Cancel(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Exception cancelled"})
}
