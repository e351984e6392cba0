package auth

import (
	"context"
	"errors"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// AuthorizationService answers capability questions for staff accounts.
// Receptionists run the day-to-day desk; managers additionally hold the
// destructive capabilities.
type AuthorizationService struct {
	userRepo *repositories.UserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
	}
}

// GetUserInfo returns the staff account behind a token's user ID
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CanReopenAttendance reports whether the user may unlock a submitted
// attendance record.
func (s *AuthorizationService) CanReopenAttendance(user *models.User) bool {
	return user != nil && user.RoleType == models.RoleManager
}

// CanDeleteParticipant reports whether the user may permanently delete a
// participant and everything cascading from it.
func (s *AuthorizationService) CanDeleteParticipant(user *models.User) bool {
	return user != nil && user.RoleType == models.RoleManager
}

// CanManageStaff reports whether the user may create or deactivate other
// staff accounts.
func (s *AuthorizationService) CanManageStaff(user *models.User) bool {
	return user != nil && user.RoleType == models.RoleManager
}

// ValidateCanReopenAttendance returns ErrPermissionDenied unless the user
// holds the reopen capability.
func (s *AuthorizationService) ValidateCanReopenAttendance(user *models.User) error {
	if !s.CanReopenAttendance(user) {
		return apperrors.NewForbiddenError("only managers can reopen a submitted attendance record")
	}
	return nil
}

// ValidateCanDeleteParticipant returns ErrPermissionDenied unless the user
// holds the delete capability.
func (s *AuthorizationService) ValidateCanDeleteParticipant(user *models.User) error {
	if !s.CanDeleteParticipant(user) {
		return apperrors.NewForbiddenError("only managers can delete a participant")
	}
	return nil
}
