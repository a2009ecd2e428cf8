package models

import "time"

const DefaultCourseColor = "#007bff"

type Course struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:255" validate:"required,min=2,max=255"`
	Code        string  `json:"code" gorm:"not null;size:50;uniqueIndex:idx_courses_code_user" validate:"required,course_code"`
	Color       string  `json:"color" gorm:"not null;size:7;default:#007bff" validate:"omitempty,hex_color"`
	Professor   *string `json:"professor" gorm:"size:255" validate:"omitempty,max=255"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=30"`
	Semester    *string `json:"semester" gorm:"size:50" validate:"omitempty,max=50"`

	// Metadata
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	// Ownership. The course code is only unique within one owner's catalog.
	UserID uint `json:"user_id" gorm:"not null;index;uniqueIndex:idx_courses_code_user" validate:"required"`

	// Relations
	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:CourseID"`

	// Computed fields (not stored)
	AssignmentsCount      int     `json:"assignments_count" gorm:"-"`
	TodoCount             int     `json:"todo_count" gorm:"-"`
	InProgressCount       int     `json:"in_progress_count" gorm:"-"`
	CompletedCount        int     `json:"completed_count" gorm:"-"`
	CancelledCount        int     `json:"cancelled_count" gorm:"-"`
	OverdueCount          int     `json:"overdue_count" gorm:"-"`
	CompletionPercentage  float64 `json:"completion_percentage" gorm:"-"`
	HasOverdueAssignments bool    `json:"has_overdue_assignments" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// ComputeRollups fills the derived counters from the loaded Assignments
// slice. Callers must preload Assignments first.
func (c *Course) ComputeRollups(now time.Time) {
	c.AssignmentsCount = len(c.Assignments)
	c.TodoCount = 0
	c.InProgressCount = 0
	c.CompletedCount = 0
	c.CancelledCount = 0
	c.OverdueCount = 0

	for i := range c.Assignments {
		a := &c.Assignments[i]
		switch a.Status {
		case StatusTodo:
			c.TodoCount++
		case StatusInProgress:
			c.InProgressCount++
		case StatusCompleted:
			c.CompletedCount++
		case StatusCancelled:
			c.CancelledCount++
		}
		if a.IsOverdue(now) {
			c.OverdueCount++
		}
	}

	c.HasOverdueAssignments = c.OverdueCount > 0
	c.CompletionPercentage = 0
	if c.AssignmentsCount > 0 {
		c.CompletionPercentage = roundFloat(float64(c.CompletedCount)/float64(c.AssignmentsCount)*100, 2)
	}
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
