package repositories

import (
	"time"

	"github.com/hind-bass/student-work-tracker/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	UserID    *uint   `json:"user_id"`
	Search    *string `json:"search"`
	Semester  *string `json:"semester"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "name", "code", "created_at"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type AssignmentFilters struct {
	UserID    *uint                      `json:"user_id"`
	CourseID  *uint                      `json:"course_id"`
	Status    *models.AssignmentStatus   `json:"status"`
	Priority  *models.AssignmentPriority `json:"priority"`
	Search    *string                    `json:"search"`
	DueFrom   *time.Time                 `json:"due_from"`
	DueTo     *time.Time                 `json:"due_to"`
	Overdue   bool                       `json:"overdue"` // only open assignments past due
	Now       time.Time                  `json:"now"`     // reference time for Overdue
	Limit     int                        `json:"limit"`
	Offset    int                        `json:"offset"`
	SortBy    string                     `json:"sort_by"`    // "due_date", "priority", "title", "created_at"
	SortOrder string                     `json:"sort_order"` // "asc", "desc"
}
