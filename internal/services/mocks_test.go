package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
)

// mockRepository wires configurable sub-repositories behind the
// Repository interface for service tests.
type mockRepository struct {
	user       *mockUserRepo
	course     *mockCourseRepo
	assignment *mockAssignmentRepo
	dashboard  *mockDashboardRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		user:       &mockUserRepo{},
		course:     &mockCourseRepo{},
		assignment: &mockAssignmentRepo{},
		dashboard:  &mockDashboardRepo{},
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return m.user }
func (m *mockRepository) Course() repositories.CourseRepository         { return m.course }
func (m *mockRepository) Assignment() repositories.AssignmentRepository { return m.assignment }
func (m *mockRepository) Dashboard() repositories.DashboardRepository   { return m.dashboard }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USER =====

type mockUserRepo struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

// ===== COURSE =====

type mockCourseRepo struct {
	createFn                 func(ctx context.Context, course *models.Course) error
	getByIDFn                func(ctx context.Context, id uint) (*models.Course, error)
	getByIDWithAssignmentsFn func(ctx context.Context, id uint) (*models.Course, error)
	updateFn                 func(ctx context.Context, course *models.Course) error
	deleteFn                 func(ctx context.Context, id uint) error
	listByUserFn             func(ctx context.Context, userID uint, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	existsByCodeFn           func(ctx context.Context, code string, userID uint, excludeID *uint) (bool, error)
}

func (m *mockCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if m.createFn != nil {
		return m.createFn(ctx, course)
	}
	course.ID = 1
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDWithAssignments(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	if m.getByIDWithAssignmentsFn != nil {
		return m.getByIDWithAssignmentsFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, course)
	}
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCourseRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, filters)
	}
	return nil, 0, nil
}

func (m *mockCourseRepo) ExistsByCode(ctx context.Context, tx *gorm.DB, code string, userID uint, excludeID *uint) (bool, error) {
	if m.existsByCodeFn != nil {
		return m.existsByCodeFn(ctx, code, userID, excludeID)
	}
	return false, nil
}

// ===== ASSIGNMENT =====

type mockAssignmentRepo struct {
	createFn              func(ctx context.Context, assignment *models.Assignment) error
	getByIDAndUserFn      func(ctx context.Context, id, userID uint) (*models.Assignment, error)
	updateFn              func(ctx context.Context, assignment *models.Assignment) error
	deleteFn              func(ctx context.Context, id uint) error
	deleteByCourseFn      func(ctx context.Context, courseID uint) error
	listFn                func(ctx context.Context, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error)
	findUpcomingFn        func(ctx context.Context, userID uint, now time.Time, limit int) ([]*models.Assignment, error)
	findRecentlyUpdatedFn func(ctx context.Context, userID uint, limit int) ([]*models.Assignment, error)
}

func (m *mockAssignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	if m.createFn != nil {
		return m.createFn(ctx, assignment)
	}
	assignment.ID = 1
	return nil
}

func (m *mockAssignmentRepo) GetByIDAndUser(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Assignment, error) {
	if m.getByIDAndUserFn != nil {
		return m.getByIDAndUserFn(ctx, id, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, assignment)
	}
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockAssignmentRepo) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error {
	if m.deleteByCourseFn != nil {
		return m.deleteByCourseFn(ctx, courseID)
	}
	return nil
}

func (m *mockAssignmentRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockAssignmentRepo) FindUpcoming(ctx context.Context, tx *gorm.DB, userID uint, now time.Time, limit int) ([]*models.Assignment, error) {
	if m.findUpcomingFn != nil {
		return m.findUpcomingFn(ctx, userID, now, limit)
	}
	return nil, nil
}

func (m *mockAssignmentRepo) FindRecentlyUpdated(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*models.Assignment, error) {
	if m.findRecentlyUpdatedFn != nil {
		return m.findRecentlyUpdatedFn(ctx, userID, limit)
	}
	return nil, nil
}

// ===== DASHBOARD =====

type mockDashboardRepo struct {
	statusCounts []repositories.StatusCountData
	courseCounts []repositories.CourseCountData
	overdueCount int64
	courseCount  int64
}

func (m *mockDashboardRepo) GetStatusCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]repositories.StatusCountData, error) {
	return m.statusCounts, nil
}

func (m *mockDashboardRepo) GetCourseCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]repositories.CourseCountData, error) {
	return m.courseCounts, nil
}

func (m *mockDashboardRepo) GetOverdueCount(ctx context.Context, tx *gorm.DB, userID uint, now time.Time) (int64, error) {
	return m.overdueCount, nil
}

func (m *mockDashboardRepo) GetCourseCount(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	return m.courseCount, nil
}

// fixedClock pins time for deterministic assertions.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
