package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/models"
)

// CourseRepository interface for course operations
type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	GetByIDWithAssignments(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error

	// List and search operations
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint, filters CourseFilters) ([]*models.Course, int64, error)

	// Validation and checks
	ExistsByCode(ctx context.Context, tx *gorm.DB, code string, userID uint, excludeID *uint) (bool, error)
}
