package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/hind-bass/student-work-tracker/internal/events"
	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/validator"
)

func newAssignmentServiceForTest(repo *mockRepository, publisher events.EventPublisher, now time.Time) AssignmentService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAssignmentService(repo, publisher, logger, validator.New(), fixedClock{now: now})
}

func TestAssignmentService_UpdateProgress(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("Reaching_100_Completes_And_Publishes", func(t *testing.T) {
		repo := newMockRepository()
		repo.assignment.getByIDAndUserFn = func(ctx context.Context, id, userID uint) (*models.Assignment, error) {
			return &models.Assignment{
				ID: 7, UserID: 1, CourseID: 3,
				Title:  "Final project",
				Status: models.StatusInProgress,
			}, nil
		}

		var saved *models.Assignment
		repo.assignment.updateFn = func(ctx context.Context, a *models.Assignment) error {
			saved = a
			return nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		resp, err := service.UpdateProgress(context.Background(), 7, 1, &models.UpdateProgressRequest{CompletionPercentage: 100})
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}

		if resp.Status != models.StatusCompleted {
			t.Errorf("Expected status completed, got %s", resp.Status)
		}
		if saved == nil || saved.CompletedAt == nil || !saved.CompletedAt.Equal(now) {
			t.Error("Expected CompletedAt stamped with the service clock")
		}
		if saved.UpdatedAt == nil || !saved.UpdatedAt.Equal(now) {
			t.Error("Expected UpdatedAt stamped with the service clock")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.TypeAssignmentCompleted {
			t.Errorf("Expected event type %s, got %s", events.TypeAssignmentCompleted, published[0].Type)
		}
		if published[0].Source != "student-work-tracker" {
			t.Errorf("Unexpected event source %s", published[0].Source)
		}
	})

	t.Run("Already_Completed_No_Duplicate_Event", func(t *testing.T) {
		completedAt := now.Add(-time.Hour)
		repo := newMockRepository()
		repo.assignment.getByIDAndUserFn = func(ctx context.Context, id, userID uint) (*models.Assignment, error) {
			return &models.Assignment{
				ID: 7, UserID: 1,
				Status:               models.StatusCompleted,
				CompletionPercentage: 100,
				CompletedAt:          &completedAt,
			}, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		if _, err := service.UpdateProgress(context.Background(), 7, 1, &models.UpdateProgressRequest{CompletionPercentage: 100}); err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}

		if got := len(publisher.GetPublishedEvents()); got != 0 {
			t.Errorf("Expected no events for an already completed assignment, got %d", got)
		}
	})
}

func TestAssignmentService_UpdateStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("Leaving_Completed_Clears_Stamp", func(t *testing.T) {
		completedAt := now.Add(-time.Hour)
		repo := newMockRepository()
		repo.assignment.getByIDAndUserFn = func(ctx context.Context, id, userID uint) (*models.Assignment, error) {
			return &models.Assignment{
				ID: 7, UserID: 1,
				Status:               models.StatusCompleted,
				CompletionPercentage: 100,
				CompletedAt:          &completedAt,
			}, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		resp, err := service.UpdateStatus(context.Background(), 7, 1, &models.ChangeStatusRequest{Status: models.StatusInProgress})
		if err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		if resp.CompletedAt != nil {
			t.Error("Expected CompletedAt cleared after leaving completed")
		}
		if got := len(publisher.GetPublishedEvents()); got != 0 {
			t.Errorf("Expected no events, got %d", got)
		}
	})

	t.Run("Other_Users_Assignment_Not_Found", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		_, err := service.UpdateStatus(context.Background(), 7, 2, &models.ChangeStatusRequest{Status: models.StatusTodo})
		if !errors.Is(err, ErrAssignmentNotFound) {
			t.Errorf("Expected ErrAssignmentNotFound, got %v", err)
		}
	})
}

func TestAssignmentService_Create(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	due := now.Add(72 * time.Hour)

	t.Run("Defaults_Applied", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 1, Name: "Algorithms", Code: "CS301"}, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		resp, err := service.Create(context.Background(), 1, &models.AssignmentCreateRequest{
			Title:    "Homework 1",
			DueDate:  due,
			CourseID: 3,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if resp.Status != models.StatusTodo {
			t.Errorf("Expected default status todo, got %s", resp.Status)
		}
		if resp.Priority != models.PriorityMedium {
			t.Errorf("Expected default priority medium, got %s", resp.Priority)
		}
		if resp.UserID != 1 {
			t.Errorf("Expected owner inherited from course, got %d", resp.UserID)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Expected no completion event for a todo assignment")
		}
	})

	t.Run("Course_Of_Another_User_Not_Found", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 1}, nil
		}
		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		_, err := service.Create(context.Background(), 2, &models.AssignmentCreateRequest{
			Title:    "Homework 1",
			DueDate:  due,
			CourseID: 3,
		})
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("Expected ErrCourseNotFound, got %v", err)
		}
	})

	t.Run("Created_Completed_Publishes_Event", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 1}, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newAssignmentServiceForTest(repo, publisher, now)

		hundred := 100
		resp, err := service.Create(context.Background(), 1, &models.AssignmentCreateRequest{
			Title:                "Already done",
			DueDate:              due,
			CourseID:             3,
			CompletionPercentage: &hundred,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if resp.Status != models.StatusCompleted {
			t.Errorf("Expected completed, got %s", resp.Status)
		}
		if len(publisher.GetPublishedEvents()) != 1 {
			t.Errorf("Expected 1 completion event, got %d", len(publisher.GetPublishedEvents()))
		}
	})
}
