package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/cache"
	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}

// Create creates a new course and invalidates owner caches
func (c *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Course, fmt.Sprintf("user:%d:*", course.UserID))

	return nil
}

// GetByID retrieves a course by ID with caching
func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		err := c.getDB(tx).WithContext(ctx).First(&dbCourse, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get course: %w", err)
		}
		return &dbCourse, nil
	})

	if err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByIDWithAssignments retrieves a course with its assignments preloaded
func (c *CoursePostgreSQL) GetByIDWithAssignments(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course
	err := db.WithContext(ctx).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("assignments.due_date ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get course with assignments: %w", err)
	}

	return &course, nil
}

// Update updates a course and invalidates cache
func (c *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := c.getDB(tx)
	if err := db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"name":        course.Name,
		"code":        course.Code,
		"color":       course.Color,
		"professor":   course.Professor,
		"description": course.Description,
		"credits":     course.Credits,
		"semester":    course.Semester,
		"updated_at":  course.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID, course.UserID)

	return nil
}

// Delete hard deletes a course. Child assignments must already be removed
// in the same transaction; the service layer owns that ordering.
func (c *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := c.getDB(tx)

	var course models.Course
	if err := db.WithContext(ctx).Select("id, user_id").First(&course, id).Error; err != nil {
		return fmt.Errorf("failed to get course before delete: %w", err)
	}

	if err := db.WithContext(ctx).Delete(&models.Course{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, id, course.UserID)

	return nil
}

// list retrieves courses with filters and pagination
func (c *CoursePostgreSQL) list(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.getDB(tx).WithContext(ctx).Model(&models.Course{})

	query = c.helpers.ApplyCourseFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = c.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	err := query.Preload("Assignments").Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// ListByUser retrieves courses owned by a specific user
func (c *CoursePostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID uint, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	filters.UserID = &userID
	if filters.SortBy == "" {
		filters.SortBy = "name"
		filters.SortOrder = "asc"
	}
	return c.list(ctx, tx, filters)
}

// ExistsByCode checks if another course with the same code exists for the owner
func (c *CoursePostgreSQL) ExistsByCode(ctx context.Context, tx *gorm.DB, code string, userID uint, excludeID *uint) (bool, error) {
	query := c.getDB(tx).WithContext(ctx).
		Model(&models.Course{}).
		Where("code = ? AND user_id = ?", code, userID)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
