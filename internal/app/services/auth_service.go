package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/auth"
	"github.com/emre/studioclass/internal/pkg/logger"
)

// LoginResult carries the authenticated account and its access token.
type LoginResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
}

// AuthService handles staff authentication and account management.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateStaff(ctx context.Context, actor *models.User, account *models.User, plainPassword string) error
}

type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login authenticates a staff account and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for a missing account and a wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to record login timestamp")
	}

	return &LoginResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

// CreateStaff registers a new staff account. Managers only.
func (s *authServiceImpl) CreateStaff(ctx context.Context, actor *models.User, account *models.User, plainPassword string) error {
	if actor == nil || actor.RoleType != models.RoleManager {
		return apperrors.NewForbiddenError("only managers can create staff accounts")
	}
	if len(plainPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidationFailed)
	}
	if account.RoleType != models.RoleReceptionist && account.RoleType != models.RoleManager {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, account.RoleType)
	}

	hashed, err := auth.HashPassword(plainPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	account.Password = hashed
	account.IsActive = true

	return s.userRepo.Create(ctx, account)
}
