package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hind-bass/student-work-tracker/internal/events"
	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
	"github.com/hind-bass/student-work-tracker/internal/validator"
)

type assignmentService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	clock          Clock
}

func NewAssignmentService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, clock Clock) AssignmentService {
	if clock == nil {
		clock = SystemClock()
	}
	return &assignmentService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		clock:          clock,
	}
}

func (s *assignmentService) Create(ctx context.Context, userID uint, req *models.AssignmentCreateRequest) (*AssignmentResponse, error) {
	s.logger.Info("Creating assignment", "user_id", userID, "course_id", req.CourseID, "title", req.Title)

	now := s.clock.Now()
	if errs := s.validator.GetBusinessValidator().ValidateAssignmentCreate(req, now); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	// The assignment inherits its owner from the course; creating under
	// another user's course is indistinguishable from a missing course.
	course, err := s.getOwnedCourse(ctx, req.CourseID, userID)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    models.PriorityMedium,
		Status:      models.StatusTodo,
		Notes:       req.Notes,
		CourseID:    course.ID,
		UserID:      userID,
	}
	if req.Priority != "" {
		assignment.Priority = req.Priority
	}
	if req.Status != "" {
		assignment.Status = req.Status
	}
	assignment.EstimatedHours = req.EstimatedHours
	assignment.ActualHours = req.ActualHours

	assignment.ApplyStatus(assignment.Status, now)
	if req.CompletionPercentage != nil {
		assignment.ApplyCompletionPercentage(*req.CompletionPercentage, now)
	}

	if err := s.repo.Assignment().Create(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created", "assignment_id", assignment.ID, "user_id", userID, "status", assignment.Status)

	if assignment.Status == models.StatusCompleted {
		s.publishCompleted(ctx, assignment)
	}

	assignment.Course = course
	return NewAssignmentResponse(assignment, now), nil
}

func (s *assignmentService) GetByID(ctx context.Context, id, userID uint) (*AssignmentResponse, error) {
	assignment, err := s.getOwnedAssignment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return NewAssignmentResponse(assignment, s.clock.Now()), nil
}

func (s *assignmentService) Update(ctx context.Context, id, userID uint, req *models.AssignmentUpdateRequest) (*AssignmentResponse, error) {
	s.logger.Info("Updating assignment", "assignment_id", id, "user_id", userID)

	if errs := s.validator.GetBusinessValidator().ValidateAssignmentUpdate(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	assignment, err := s.getOwnedAssignment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	wasCompleted := assignment.Status == models.StatusCompleted

	if req.CourseID != nil && *req.CourseID != assignment.CourseID {
		course, err := s.getOwnedCourse(ctx, *req.CourseID, userID)
		if err != nil {
			return nil, err
		}
		assignment.CourseID = course.ID
		assignment.Course = course
	}

	if req.Title != nil {
		assignment.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		assignment.Description = req.Description
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		assignment.Priority = *req.Priority
	}
	if req.Notes != nil {
		assignment.Notes = req.Notes
	}
	if req.EstimatedHours != nil {
		assignment.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		assignment.ActualHours = req.ActualHours
	}

	now := s.clock.Now()
	if req.Status != nil {
		assignment.ApplyStatus(*req.Status, now)
	}
	if req.CompletionPercentage != nil {
		assignment.ApplyCompletionPercentage(*req.CompletionPercentage, now)
	}
	assignment.UpdatedAt = &now

	if err := s.repo.Assignment().Update(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.logger.Info("Assignment updated", "assignment_id", id, "user_id", userID, "status", assignment.Status)

	if !wasCompleted && assignment.Status == models.StatusCompleted {
		s.publishCompleted(ctx, assignment)
	}

	return NewAssignmentResponse(assignment, now), nil
}

func (s *assignmentService) Delete(ctx context.Context, id, userID uint) error {
	s.logger.Info("Deleting assignment", "assignment_id", id, "user_id", userID)

	if _, err := s.getOwnedAssignment(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.Assignment().Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("Assignment deleted", "assignment_id", id, "user_id", userID)
	return nil
}

func (s *assignmentService) List(ctx context.Context, userID uint, params *models.ListAssignmentsParams) (*models.PaginatedResponse, error) {
	if errs := s.validator.GetBusinessValidator().Validate(params); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	now := s.clock.Now()
	filters := repositories.AssignmentFilters{
		UserID:    &userID,
		CourseID:  params.CourseID,
		DueFrom:   params.DueFrom,
		DueTo:     params.DueTo,
		Overdue:   params.Overdue,
		Now:       now,
		Limit:     params.Size,
		Offset:    params.Page * params.Size,
		SortBy:    params.SortBy,
		SortOrder: params.SortDir,
	}
	if params.Status != "" {
		filters.Status = &params.Status
	}
	if params.Priority != "" {
		filters.Priority = &params.Priority
	}
	if params.Search != "" {
		filters.Search = &params.Search
	}

	assignments, total, err := s.repo.Assignment().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]*AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, NewAssignmentResponse(a, now))
	}

	return buildPaginatedResponse(responses, total, params.Page, params.Size, len(responses)), nil
}

func (s *assignmentService) UpdateStatus(ctx context.Context, id, userID uint, req *models.ChangeStatusRequest) (*AssignmentResponse, error) {
	s.logger.Info("Changing assignment status", "assignment_id", id, "user_id", userID, "status", req.Status)

	if errs := s.validator.GetBusinessValidator().ValidateStatusChange(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	assignment, err := s.getOwnedAssignment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	wasCompleted := assignment.Status == models.StatusCompleted

	now := s.clock.Now()
	assignment.ApplyStatus(req.Status, now)
	assignment.UpdatedAt = &now

	if err := s.repo.Assignment().Update(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment status: %w", err)
	}

	if !wasCompleted && assignment.Status == models.StatusCompleted {
		s.publishCompleted(ctx, assignment)
	}

	return NewAssignmentResponse(assignment, now), nil
}

func (s *assignmentService) UpdateProgress(ctx context.Context, id, userID uint, req *models.UpdateProgressRequest) (*AssignmentResponse, error) {
	s.logger.Info("Updating assignment progress", "assignment_id", id, "user_id", userID, "completion_percentage", req.CompletionPercentage)

	assignment, err := s.getOwnedAssignment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	wasCompleted := assignment.Status == models.StatusCompleted

	now := s.clock.Now()
	assignment.ApplyCompletionPercentage(req.CompletionPercentage, now)
	assignment.UpdatedAt = &now

	if err := s.repo.Assignment().Update(ctx, nil, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment progress: %w", err)
	}

	if !wasCompleted && assignment.Status == models.StatusCompleted {
		s.publishCompleted(ctx, assignment)
	}

	return NewAssignmentResponse(assignment, now), nil
}

// getOwnedCourse resolves a course through the cached read and hides other
// users' courses behind not-found.
func (s *assignmentService) getOwnedCourse(ctx context.Context, id, userID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course.UserID != userID {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *assignmentService) getOwnedAssignment(ctx context.Context, id, userID uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByIDAndUser(ctx, nil, id, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return assignment, nil
}

func (s *assignmentService) publishCompleted(ctx context.Context, a *models.Assignment) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewEvent(events.TypeAssignmentCompleted, events.AssignmentCompletedEvent{
		AssignmentID: a.ID,
		CourseID:     a.CourseID,
		UserID:       a.UserID,
		Title:        a.Title,
		CompletedAt:  a.CompletedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
