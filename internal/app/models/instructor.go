package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID   int64  `json:"id" db:"id" example:"1"`                     // Unique identifier for the instructor
	Name string `json:"name" db:"full_name" example:"Ayse Karaca"` // Display name shown on schedules
}
