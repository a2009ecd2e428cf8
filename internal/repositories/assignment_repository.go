package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/models"
)

// AssignmentRepository interface for assignment operations
type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error

	// List and search operations
	List(ctx context.Context, tx *gorm.DB, filters AssignmentFilters) ([]*models.Assignment, int64, error)

	// Dashboard feeds
	FindUpcoming(ctx context.Context, tx *gorm.DB, userID uint, now time.Time, limit int) ([]*models.Assignment, error)
	FindRecentlyUpdated(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*models.Assignment, error)
}
