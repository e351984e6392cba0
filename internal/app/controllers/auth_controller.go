package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/middleware"
)

// AuthController handles staff authentication
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login authenticates a staff account and returns an access token
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.Token,
			TokenType:   "Bearer",
			ExpiresIn:   result.ExpiresIn,
		},
		User: result.User,
	}, "Login successful"))
}

// CreateStaff registers a new staff account (managers only)
func (c *AuthController) CreateStaff(ctx *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindJSON(ctx, &req) {
		return
	}

	account := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
		RoleType: req.RoleType,
	}
	if err := c.authService.CreateStaff(ctx, middleware.CurrentUser(ctx), account, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(account, "Staff account created"))
}
