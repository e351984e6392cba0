package models

import (
	"time"
)

// RoleType defines the staff role type
type RoleType string

const (
	RoleReceptionist RoleType = "RECEPTIONIST" // Front-desk staff: schedules, drafts, submission
	RoleManager      RoleType = "MANAGER"      // Studio manager: everything, including reopen/delete
)

// User defines the staff account model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"desk@studio.example"`           // Staff email address
	Password    string     `json:"-" db:"password"`                                          // Hashed password (excluded from JSON)
	FullName    string     `json:"fullName" db:"full_name" example:"Selin Aydin"`            // Staff member's display name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"RECEPTIONIST"`           // Staff role
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the account is active
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the account was created
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}
