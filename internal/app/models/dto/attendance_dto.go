package dto

import "github.com/emre/studioclass/internal/app/models"

// SaveMarkRequest represents one draft attendance mark
type SaveMarkRequest struct {
	SubjectKey string                   `json:"subjectKey" binding:"required"`
	Outcome    models.AttendanceOutcome `json:"outcome" binding:"required,oneof=present absent"`
}

// SubmitAttendanceRequest represents locking an occurrence's attendance.
// Marks override any stored drafts; roster entries missing from both
// default to absent.
type SubmitAttendanceRequest struct {
	Marks map[string]models.AttendanceOutcome `json:"marks"`
}
