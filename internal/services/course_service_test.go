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

func newCourseServiceForTest(repo *mockRepository, publisher events.EventPublisher, now time.Time) CourseService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewCourseService(repo, publisher, logger, validator.New(), fixedClock{now: now})
}

func TestCourseService_Create(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("Normalizes_Code", func(t *testing.T) {
		repo := newMockRepository()
		var created *models.Course
		repo.course.createFn = func(ctx context.Context, course *models.Course) error {
			created = course
			course.ID = 3
			return nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		resp, err := service.Create(context.Background(), 1, &models.CourseCreateRequest{
			Name: "Algorithms",
			Code: " cs301 ",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if created.Code != "CS301" {
			t.Errorf("Expected code normalized to CS301, got %s", created.Code)
		}
		if resp.Color != models.DefaultCourseColor {
			t.Errorf("Expected default color, got %s", resp.Color)
		}
	})

	t.Run("Duplicate_Code_Conflict", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.existsByCodeFn = func(ctx context.Context, code string, userID uint, excludeID *uint) (bool, error) {
			return code == "CS301", nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		_, err := service.Create(context.Background(), 1, &models.CourseCreateRequest{
			Name: "Algorithms",
			Code: "CS301",
		})
		if !errors.Is(err, ErrCourseCodeExists) {
			t.Errorf("Expected ErrCourseCodeExists, got %v", err)
		}
	})

	t.Run("Invalid_Request_Fails_Validation", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		_, err := service.Create(context.Background(), 1, &models.CourseCreateRequest{
			Name: "A",
			Code: "!",
		})
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Expected validation failure, got %v", err)
		}
	})
}

func TestCourseService_Delete(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("Cascades_And_Publishes", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDWithAssignmentsFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{
				ID: 3, UserID: 1, Code: "CS301",
				Assignments: []models.Assignment{{ID: 10}, {ID: 11}},
			}, nil
		}

		var deletedCourse uint
		var deletedByCourse uint
		repo.assignment.deleteByCourseFn = func(ctx context.Context, courseID uint) error {
			deletedByCourse = courseID
			return nil
		}
		repo.course.deleteFn = func(ctx context.Context, id uint) error {
			if deletedByCourse == 0 {
				t.Error("Expected assignments removed before the course")
			}
			deletedCourse = id
			return nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		if err := service.Delete(context.Background(), 3, 1); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if deletedByCourse != 3 || deletedCourse != 3 {
			t.Errorf("Expected cascade on course 3, got assignments=%d course=%d", deletedByCourse, deletedCourse)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeCourseDeleted {
			t.Fatalf("Expected a single %s event, got %v", events.TypeCourseDeleted, published)
		}
		payload, ok := published[0].Data.(events.CourseDeletedEvent)
		if !ok {
			t.Fatalf("Unexpected event payload %T", published[0].Data)
		}
		if payload.AssignmentsCount != 2 || payload.Code != "CS301" {
			t.Errorf("Unexpected payload %+v", payload)
		}
	})

	t.Run("Other_Users_Course_Not_Found", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDWithAssignmentsFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 2}, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		err := service.Delete(context.Background(), 3, 1)
		if !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("Expected ErrCourseNotFound, got %v", err)
		}
		if got := len(publisher.GetPublishedEvents()); got != 0 {
			t.Errorf("Expected no events, got %d", got)
		}
	})
}

func TestCourseService_Update(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("Code_Change_Checks_Uniqueness", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDWithAssignmentsFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 1, Name: "Algorithms", Code: "CS301"}, nil
		}
		var checkedExclude *uint
		repo.course.existsByCodeFn = func(ctx context.Context, code string, userID uint, excludeID *uint) (bool, error) {
			checkedExclude = excludeID
			return true, nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		newCode := "CS401"
		_, err := service.Update(context.Background(), 3, 1, &models.CourseUpdateRequest{Code: &newCode})
		if !errors.Is(err, ErrCourseCodeExists) {
			t.Errorf("Expected ErrCourseCodeExists, got %v", err)
		}
		if checkedExclude == nil || *checkedExclude != 3 {
			t.Error("Expected the course itself excluded from the uniqueness check")
		}
	})

	t.Run("Stamps_Modification_Time", func(t *testing.T) {
		repo := newMockRepository()
		repo.course.getByIDWithAssignmentsFn = func(ctx context.Context, id uint) (*models.Course, error) {
			return &models.Course{ID: 3, UserID: 1, Name: "Algorithms", Code: "CS301"}, nil
		}
		var saved *models.Course
		repo.course.updateFn = func(ctx context.Context, course *models.Course) error {
			saved = course
			return nil
		}

		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher, now)

		newName := "Advanced Algorithms"
		if _, err := service.Update(context.Background(), 3, 1, &models.CourseUpdateRequest{Name: &newName}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if saved == nil || saved.UpdatedAt == nil || !saved.UpdatedAt.Equal(now) {
			t.Error("Expected UpdatedAt stamped with the service clock")
		}
	})
}
