package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// ParticipantController handles studio member management
type ParticipantController struct {
	participantService services.ParticipantService
}

// NewParticipantController creates a new participant controller
func NewParticipantController(participantService services.ParticipantService) *ParticipantController {
	return &ParticipantController{
		participantService: participantService,
	}
}

// Create creates a new participant
func (c *ParticipantController) Create(ctx *gin.Context) {
	var req dto.ParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}
	participant := req.ToModel()

	if err := c.participantService.CreateParticipant(ctx, participant); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(participant, "Participant created"))
}

// GetByID retrieves a participant
func (c *ParticipantController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participant, err := c.participantService.GetParticipantByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(participant, "Participant retrieved"))
}

// GetAll retrieves all participants
func (c *ParticipantController) GetAll(ctx *gin.Context) {
	participants, err := c.participantService.GetAllParticipants(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(participants, "Participants retrieved"))
}

// Update updates a participant's details and status flags
func (c *ParticipantController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ParticipantRequest
	if !bindJSON(ctx, &req) {
		return
	}
	participant := req.ToModel()
	participant.ID = id

	if err := c.participantService.UpdateParticipant(ctx, participant); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(participant, "Participant updated"))
}

// Delete permanently deletes a participant (managers only)
func (c *ParticipantController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.participantService.DeleteParticipant(ctx, middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Participant deleted"})
}
