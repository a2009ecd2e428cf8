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

type courseService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	clock          Clock
}

func NewCourseService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, clock Clock) CourseService {
	if clock == nil {
		clock = SystemClock()
	}
	return &courseService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
		clock:          clock,
	}
}

func (s *courseService) Create(ctx context.Context, userID uint, req *models.CourseCreateRequest) (*CourseResponse, error) {
	s.logger.Info("Creating course", "user_id", userID, "code", req.Code)

	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	exists, err := s.repo.Course().ExistsByCode(ctx, nil, code, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check course code: %w", err)
	}
	if exists {
		return nil, ErrCourseCodeExists
	}

	course := &models.Course{
		Name:   strings.TrimSpace(req.Name),
		Code:   code,
		Color:  models.DefaultCourseColor,
		UserID: userID,
	}
	if req.Color != nil {
		course.Color = *req.Color
	}
	course.Professor = req.Professor
	course.Description = req.Description
	course.Credits = req.Credits
	course.Semester = req.Semester

	if err := s.repo.Course().Create(ctx, nil, course); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrCourseCodeExists
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "user_id", userID)

	course.ComputeRollups(s.clock.Now())
	return &CourseResponse{Course: course}, nil
}

func (s *courseService) GetByID(ctx context.Context, id, userID uint) (*CourseResponse, error) {
	course, err := s.getOwnedCourse(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	course.ComputeRollups(s.clock.Now())
	return &CourseResponse{Course: course}, nil
}

func (s *courseService) GetDetails(ctx context.Context, id, userID uint) (*CourseDetailsResponse, error) {
	course, err := s.getOwnedCourse(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	course.ComputeRollups(now)

	assignments := make([]*AssignmentResponse, 0, len(course.Assignments))
	for i := range course.Assignments {
		assignments = append(assignments, NewAssignmentResponse(&course.Assignments[i], now))
	}

	return &CourseDetailsResponse{Course: course, Assignments: assignments}, nil
}

func (s *courseService) Update(ctx context.Context, id, userID uint, req *models.CourseUpdateRequest) (*CourseResponse, error) {
	s.logger.Info("Updating course", "course_id", id, "user_id", userID)

	if errs := s.validator.GetBusinessValidator().ValidateCourseUpdate(req); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	course, err := s.getOwnedCourse(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code != course.Code {
			exists, err := s.repo.Course().ExistsByCode(ctx, nil, code, userID, &id)
			if err != nil {
				return nil, fmt.Errorf("failed to check course code: %w", err)
			}
			if exists {
				return nil, ErrCourseCodeExists
			}
		}
		course.Code = code
	}
	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		course.Color = *req.Color
	}
	if req.Professor != nil {
		course.Professor = req.Professor
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Credits != nil {
		course.Credits = req.Credits
	}
	if req.Semester != nil {
		course.Semester = req.Semester
	}

	now := s.clock.Now()
	course.UpdatedAt = &now

	if err := s.repo.Course().Update(ctx, nil, course); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrCourseCodeExists
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id, "user_id", userID)

	course.ComputeRollups(now)
	return &CourseResponse{Course: course}, nil
}

// Delete removes the course and all of its assignments in one
// transaction.
func (s *courseService) Delete(ctx context.Context, id, userID uint) error {
	s.logger.Info("Deleting course", "course_id", id, "user_id", userID)

	course, err := s.getOwnedCourse(ctx, id, userID)
	if err != nil {
		return err
	}
	removed := int64(len(course.Assignments))

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Assignment().DeleteByCourse(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete course assignments: %w", err)
		}
		if err := txRepo.Course().Delete(ctx, nil, id); err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Course deleted", "course_id", id, "user_id", userID, "assignments_removed", removed)

	s.publishEvent(ctx, events.NewEvent(events.TypeCourseDeleted, events.CourseDeletedEvent{
		CourseID:         id,
		UserID:           userID,
		Code:             course.Code,
		AssignmentsCount: removed,
	}))

	return nil
}

func (s *courseService) List(ctx context.Context, userID uint, params *models.ListCoursesParams) (*models.PaginatedResponse, error) {
	if errs := s.validator.GetBusinessValidator().Validate(params); errs.HasErrors() {
		return nil, toValidationError(errs)
	}

	filters := repositories.CourseFilters{
		Limit:     params.Size,
		Offset:    params.Page * params.Size,
		SortBy:    params.SortBy,
		SortOrder: params.SortDir,
	}
	if params.Search != "" {
		filters.Search = &params.Search
	}
	if params.Semester != "" {
		filters.Semester = &params.Semester
	}

	courses, total, err := s.repo.Course().ListByUser(ctx, nil, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	now := s.clock.Now()
	responses := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		course.ComputeRollups(now)
		responses = append(responses, &CourseResponse{Course: course})
	}

	return buildPaginatedResponse(responses, total, params.Page, params.Size, len(responses)), nil
}

// getOwnedCourse loads the course with its assignments and hides other
// users' courses behind a not-found error.
func (s *courseService) getOwnedCourse(ctx context.Context, id, userID uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByIDWithAssignments(ctx, nil, id)
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

func (s *courseService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", event.Type, "error", err)
	}
}
