package services

import (
	"context"
	"time"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/validator"
)

// ===== RESPONSE TYPES =====

// AssignmentResponse decorates the stored assignment with the derived
// scheduling and time-tracking fields clients render directly.
type AssignmentResponse struct {
	*models.Assignment

	IsOverdue              bool                `json:"is_overdue"`
	DaysRemaining          int                 `json:"days_remaining"`
	HoursRemaining         int                 `json:"hours_remaining"`
	Urgency                models.UrgencyLevel `json:"urgency"`
	EstimatedTimeRemaining *float64            `json:"estimated_time_remaining,omitempty"`
	TimeDifference         *float64            `json:"time_difference,omitempty"`
	IsOnSchedule           *bool               `json:"is_on_schedule,omitempty"`
}

func NewAssignmentResponse(a *models.Assignment, now time.Time) *AssignmentResponse {
	return &AssignmentResponse{
		Assignment:             a,
		IsOverdue:              a.IsOverdue(now),
		DaysRemaining:          a.DaysRemaining(now),
		HoursRemaining:         a.HoursRemaining(now),
		Urgency:                a.Urgency(now),
		EstimatedTimeRemaining: a.EstimatedTimeRemaining(),
		TimeDifference:         a.TimeDifference(),
		IsOnSchedule:           a.IsOnSchedule(),
	}
}

// CourseResponse carries a course with its rollups already computed.
type CourseResponse struct {
	*models.Course
}

// CourseDetailsResponse adds the course's assignments, ordered by due
// date, each with derived fields.
type CourseDetailsResponse struct {
	*models.Course

	Assignments []*AssignmentResponse `json:"assignments"`
}

// ===== SERVICE INTERFACES =====

type CourseService interface {
	Create(ctx context.Context, userID uint, req *models.CourseCreateRequest) (*CourseResponse, error)
	GetByID(ctx context.Context, id, userID uint) (*CourseResponse, error)
	GetDetails(ctx context.Context, id, userID uint) (*CourseDetailsResponse, error)
	Update(ctx context.Context, id, userID uint, req *models.CourseUpdateRequest) (*CourseResponse, error)
	Delete(ctx context.Context, id, userID uint) error
	List(ctx context.Context, userID uint, params *models.ListCoursesParams) (*models.PaginatedResponse, error)
}

type AssignmentService interface {
	Create(ctx context.Context, userID uint, req *models.AssignmentCreateRequest) (*AssignmentResponse, error)
	GetByID(ctx context.Context, id, userID uint) (*AssignmentResponse, error)
	Update(ctx context.Context, id, userID uint, req *models.AssignmentUpdateRequest) (*AssignmentResponse, error)
	Delete(ctx context.Context, id, userID uint) error
	List(ctx context.Context, userID uint, params *models.ListAssignmentsParams) (*models.PaginatedResponse, error)

	// Workflow operations
	UpdateStatus(ctx context.Context, id, userID uint, req *models.ChangeStatusRequest) (*AssignmentResponse, error)
	UpdateProgress(ctx context.Context, id, userID uint, req *models.UpdateProgressRequest) (*AssignmentResponse, error)
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetByID(ctx context.Context, id uint) (*models.UserResponse, error)
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context, userID uint) (*DashboardStatsResponse, error)
	GetChartData(ctx context.Context, userID uint) (*ChartDataResponse, error)
}

type ExportService interface {
	ExportAssignments(ctx context.Context, userID uint) ([]byte, string, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager provides access to all services
type ServiceManager interface {
	Course() CourseService
	Assignment() AssignmentService
	User() UserService
	Dashboard() DashboardService
	Export() ExportService

	// Lifecycle management
	Initialize() error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Clock supplies the reference time for due-date computations. Tests
// substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }

// ValidationFailedError wraps field-level validation failures so the
// handler can return them verbatim.
type ValidationFailedError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationFailedError) Error() string {
	return e.Errors.Error()
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

func toValidationError(errs validator.ValidationErrors) error {
	if !errs.HasErrors() {
		return nil
	}
	return &ValidationFailedError{Errors: errs}
}

// buildPaginatedResponse assembles the standard page envelope.
func buildPaginatedResponse(content interface{}, total int64, page, size, count int) *models.PaginatedResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &models.PaginatedResponse{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             size,
		Page:             page,
		First:            page == 0,
		Last:             page >= totalPages-1,
		NumberOfElements: count,
		Empty:            count == 0,
	}
}
