package models

import (
	"fmt"
	"time"
)

type AssignmentStatus string

const (
	StatusTodo       AssignmentStatus = "todo"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
	StatusCancelled  AssignmentStatus = "cancelled"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status excludes the assignment from
// overdue and upcoming computations.
func (s AssignmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s AssignmentStatus) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

type AssignmentPriority string

const (
	PriorityLow    AssignmentPriority = "low"
	PriorityMedium AssignmentPriority = "medium"
	PriorityHigh   AssignmentPriority = "high"
	PriorityUrgent AssignmentPriority = "urgent"
)

func (p AssignmentPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p AssignmentPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// UrgencyLevel ranks how close an open assignment is to its due date.
type UrgencyLevel string

const (
	UrgencyOverdue  UrgencyLevel = "overdue"
	UrgencyCritical UrgencyLevel = "critical" // due within 1 day
	UrgencySoon     UrgencyLevel = "soon"     // due within 3 days
	UrgencyUpcoming UrgencyLevel = "upcoming" // due within 7 days
	UrgencyRelaxed  UrgencyLevel = "relaxed"
	UrgencyNone     UrgencyLevel = "none" // completed or cancelled
)

type Assignment struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	Title       string             `json:"title" gorm:"not null;size:255;index" validate:"required,assignment_title"`
	Description *string            `json:"description" gorm:"type:text" validate:"omitempty,max=5000"`
	DueDate     time.Time          `json:"due_date" gorm:"not null;index" validate:"required"`
	Priority    AssignmentPriority `json:"priority" gorm:"not null;size:20;default:medium;index" validate:"omitempty,oneof=low medium high urgent"`
	Status      AssignmentStatus   `json:"status" gorm:"not null;size:20;default:todo;index" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	Notes       *string            `json:"notes" gorm:"type:text"`

	// Progress tracking
	CompletionPercentage int      `json:"completion_percentage" gorm:"not null;default:0" validate:"completion_percentage"`
	EstimatedHours       *float64 `json:"estimated_hours" gorm:"type:decimal(5,2)" validate:"omitempty,positive_hours"`
	ActualHours          *float64 `json:"actual_hours" gorm:"type:decimal(5,2)" validate:"omitempty,positive_hours"`

	// Metadata
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Ownership
	CourseID uint `json:"course_id" gorm:"not null;index" validate:"required"`
	UserID   uint `json:"user_id" gorm:"not null;index" validate:"required"`

	// Relations
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// ApplyStatus changes the status and re-establishes the completion
// invariants. Entering completed forces the percentage to 100 and stamps
// CompletedAt with now; leaving completed clears the stamp but keeps the
// percentage where it was.
func (a *Assignment) ApplyStatus(status AssignmentStatus, now time.Time) {
	a.Status = status
	a.syncCompletion(now)
}

// ApplyCompletionPercentage sets the progress, clamped to [0, 100].
// Reaching 100 promotes the assignment to completed; dropping below 100
// never demotes an already completed assignment.
func (a *Assignment) ApplyCompletionPercentage(percentage int, now time.Time) {
	a.CompletionPercentage = clampPercentage(percentage)
	if a.CompletionPercentage == 100 && a.Status != StatusCompleted {
		a.Status = StatusCompleted
	}
	a.syncCompletion(now)
}

// syncCompletion is the single place where status, percentage and
// CompletedAt are reconciled.
func (a *Assignment) syncCompletion(now time.Time) {
	if a.Status == StatusCompleted {
		a.CompletionPercentage = 100
		if a.CompletedAt == nil {
			ts := now
			a.CompletedAt = &ts
		}
		return
	}
	a.CompletedAt = nil
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// IsOverdue reports whether the due date has passed. Completed and
// cancelled assignments are never overdue.
func (a *Assignment) IsOverdue(now time.Time) bool {
	if a.Status.IsTerminal() {
		return false
	}
	return a.DueDate.Before(now)
}

// DaysRemaining returns whole days until the due date, negative when the
// due date has passed.
func (a *Assignment) DaysRemaining(now time.Time) int {
	return int(a.DueDate.Sub(now).Hours() / 24)
}

// HoursRemaining returns whole hours until the due date, negative when
// the due date has passed.
func (a *Assignment) HoursRemaining(now time.Time) int {
	return int(a.DueDate.Sub(now).Hours())
}

// EstimatedTimeRemaining projects hours of work left from the estimate and
// the current progress. Nil when no estimate is set.
func (a *Assignment) EstimatedTimeRemaining() *float64 {
	if a.EstimatedHours == nil {
		return nil
	}
	remaining := *a.EstimatedHours * float64(100-a.CompletionPercentage) / 100
	return &remaining
}

// TimeDifference returns actual minus estimated hours, nil unless both are
// recorded. Positive means the work ran over the estimate.
func (a *Assignment) TimeDifference() *float64 {
	if a.EstimatedHours == nil || a.ActualHours == nil {
		return nil
	}
	diff := *a.ActualHours - *a.EstimatedHours
	return &diff
}

// IsOnSchedule reports whether actual hours stayed within the estimate,
// nil unless both are recorded.
func (a *Assignment) IsOnSchedule() *bool {
	diff := a.TimeDifference()
	if diff == nil {
		return nil
	}
	ok := *diff <= 0
	return &ok
}

// Urgency buckets open assignments by how close the due date is.
func (a *Assignment) Urgency(now time.Time) UrgencyLevel {
	if a.Status.IsTerminal() {
		return UrgencyNone
	}
	days := a.DaysRemaining(now)
	switch {
	case a.IsOverdue(now):
		return UrgencyOverdue
	case days <= 1:
		return UrgencyCritical
	case days <= 3:
		return UrgencySoon
	case days <= 7:
		return UrgencyUpcoming
	}
	return UrgencyRelaxed
}

// Summary renders a short human-readable line for activity feeds.
func (a *Assignment) Summary(now time.Time) string {
	if a.Status == StatusCompleted {
		return fmt.Sprintf("%s: completed", a.Title)
	}
	days := a.DaysRemaining(now)
	if a.IsOverdue(now) {
		return fmt.Sprintf("%s: overdue by %d day(s)", a.Title, -days)
	}
	return fmt.Sprintf("%s: due in %d day(s), %d%% done", a.Title, days, a.CompletionPercentage)
}
