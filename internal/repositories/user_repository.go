package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/models"
)

// UserRepository interface for user operations
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}
