package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Sentinel
// errors carry the status; a CustomError wrapping one contributes its
// message.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	var custom *apperrors.CustomError
	var details interface{}
	if errors.As(err, &custom) && custom.Details != nil {
		details = custom.Details
	}

	respond := func(status int, code dto.ErrorCode) {
		detail := dto.NewErrorDetail(code, message)
		if details != nil {
			detail = detail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(detail))
	}

	switch {
	// Missing resources
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrOfferingNotFound),
		errors.Is(err, apperrors.ErrSlotNotFound),
		errors.Is(err, apperrors.ErrInstructorNotFound),
		errors.Is(err, apperrors.ErrParticipantNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrExceptionNotFound),
		errors.Is(err, apperrors.ErrTrialNotFound),
		errors.Is(err, apperrors.ErrCreditNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound)

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken)
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeAccountDisabled)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeUnauthorized)

	// Scheduling conflicts
	case errors.Is(err, apperrors.ErrDuplicateException):
		respond(http.StatusConflict, dto.ErrorCodeDuplicateException)
	case errors.Is(err, apperrors.ErrNoOpReschedule):
		respond(http.StatusBadRequest, dto.ErrorCodeNoOpReschedule)
	case errors.Is(err, apperrors.ErrParticipantIneligible):
		respond(http.StatusUnprocessableEntity, dto.ErrorCodeParticipantIneligible)
	case errors.Is(err, apperrors.ErrDestinationUnavailable):
		respond(http.StatusUnprocessableEntity, dto.ErrorCodeDestinationUnavailable)
	case errors.Is(err, apperrors.ErrDestinationSlotGone):
		// Rescheduling onto a slot that no longer exists is a conflict
		// with the current schedule, not a window violation.
		respond(http.StatusConflict, dto.ErrorCodeDestinationGone)
	case errors.Is(err, apperrors.ErrExceptionNotPending):
		respond(http.StatusConflict, dto.ErrorCodeExceptionNotPending)
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(http.StatusConflict, dto.ErrorCodeAlreadyEnrolled)

	// Attendance state machine
	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		respond(http.StatusConflict, dto.ErrorCodeAlreadySubmitted)
	case errors.Is(err, apperrors.ErrNotSubmitted):
		respond(http.StatusNotFound, dto.ErrorCodeNotSubmitted)
	case errors.Is(err, apperrors.ErrFutureDate):
		respond(http.StatusBadRequest, dto.ErrorCodeFutureDate)

	// Generic buckets
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists)
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
