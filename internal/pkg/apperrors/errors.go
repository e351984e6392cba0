package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Schedule errors
var (
	ErrOfferingNotFound    = errors.New("offering not found")
	ErrSlotNotFound        = errors.New("schedule slot not found")
	ErrInstructorNotFound  = errors.New("instructor not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrAlreadyEnrolled     = errors.New("participant is already enrolled in this slot")
)

// Reschedule exception errors
var (
	ErrExceptionNotFound      = errors.New("reschedule exception not found")
	ErrExceptionNotPending    = errors.New("exception is no longer pending")
	ErrDuplicateException     = errors.New("an open exception already exists for this occurrence")
	ErrNoOpReschedule         = errors.New("destination equals origin")
	ErrParticipantIneligible  = errors.New("participant is not eligible for rescheduling")
	ErrDestinationUnavailable = errors.New("destination is outside the offering's availability windows")
	ErrDestinationSlotGone    = errors.New("destination slot no longer exists")
)

// Trial and credit errors
var (
	ErrTrialNotFound  = errors.New("trial booking not found")
	ErrCreditNotFound = errors.New("credit usage not found")
)

// Attendance errors
var (
	ErrAlreadySubmitted = errors.New("attendance already submitted for this occurrence")
	ErrNotSubmitted     = errors.New("attendance has not been submitted for this occurrence")
	ErrFutureDate       = errors.New("attendance cannot be submitted for a future date")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validations with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
