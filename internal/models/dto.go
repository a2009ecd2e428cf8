package models

import "time"

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=180"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt,
	}
}

// ===== COURSE DTOs =====

type CourseCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Code        string  `json:"code" validate:"required,course_code"`
	Color       *string `json:"color" validate:"omitempty,hex_color"`
	Professor   *string `json:"professor" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=30"`
	Semester    *string `json:"semester" validate:"omitempty,max=50"`
}

type CourseUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Code        *string `json:"code" validate:"omitempty,course_code"`
	Color       *string `json:"color" validate:"omitempty,hex_color"`
	Professor   *string `json:"professor" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=30"`
	Semester    *string `json:"semester" validate:"omitempty,max=50"`
}

// ===== ASSIGNMENT DTOs =====

type AssignmentCreateRequest struct {
	Title                string             `json:"title" validate:"required,assignment_title"`
	Description          *string            `json:"description" validate:"omitempty,max=5000"`
	DueDate              time.Time          `json:"due_date" validate:"required"`
	Priority             AssignmentPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status               AssignmentStatus   `json:"status" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	Notes                *string            `json:"notes"`
	CompletionPercentage *int               `json:"completion_percentage" validate:"omitempty,completion_percentage"`
	EstimatedHours       *float64           `json:"estimated_hours" validate:"omitempty,positive_hours"`
	ActualHours          *float64           `json:"actual_hours" validate:"omitempty,positive_hours"`
	CourseID             uint               `json:"course_id" validate:"required"`
}

type AssignmentUpdateRequest struct {
	Title                *string             `json:"title" validate:"omitempty,assignment_title"`
	Description          *string             `json:"description" validate:"omitempty,max=5000"`
	DueDate              *time.Time          `json:"due_date"`
	Priority             *AssignmentPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status               *AssignmentStatus   `json:"status" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	Notes                *string             `json:"notes"`
	CompletionPercentage *int                `json:"completion_percentage" validate:"omitempty,completion_percentage"`
	EstimatedHours       *float64            `json:"estimated_hours" validate:"omitempty,positive_hours"`
	ActualHours          *float64            `json:"actual_hours" validate:"omitempty,positive_hours"`
	CourseID             *uint               `json:"course_id"`
}

type ChangeStatusRequest struct {
	Status AssignmentStatus `json:"status" validate:"required,oneof=todo in_progress completed cancelled"`
}

type UpdateProgressRequest struct {
	CompletionPercentage int `json:"completion_percentage" validate:"completion_percentage"`
}

// ===== PAGINATION & FILTERING =====

type ListAssignmentsParams struct {
	Page     int                `json:"page" validate:"min=0"`
	Size     int                `json:"size" validate:"min=1,max=100"`
	Status   AssignmentStatus   `json:"status" validate:"omitempty,oneof=todo in_progress completed cancelled"`
	Priority AssignmentPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	CourseID *uint              `json:"course_id"`
	Search   string             `json:"search"`
	DueFrom  *time.Time         `json:"due_from"`
	DueTo    *time.Time         `json:"due_to"`
	Overdue  bool               `json:"overdue"`
	SortBy   string             `json:"sort_by"`
	SortDir  string             `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

type ListCoursesParams struct {
	Page     int    `json:"page" validate:"min=0"`
	Size     int    `json:"size" validate:"min=1,max=100"`
	Search   string `json:"search"`
	Semester string `json:"semester"`
	SortBy   string `json:"sort_by"`
	SortDir  string `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

type PaginatedResponse struct {
	Content          interface{} `json:"content"`
	TotalElements    int64       `json:"total_elements"`
	TotalPages       int         `json:"total_pages"`
	Size             int         `json:"size"`
	Page             int         `json:"page"`
	First            bool        `json:"first"`
	Last             bool        `json:"last"`
	NumberOfElements int         `json:"number_of_elements"`
	Empty            bool        `json:"empty"`
}
