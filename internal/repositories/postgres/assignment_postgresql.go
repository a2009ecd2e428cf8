package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hind-bass/student-work-tracker/internal/cache"
	"github.com/hind-bass/student-work-tracker/internal/models"
	"github.com/hind-bass/student-work-tracker/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewAssignmentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (a *AssignmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

// Create creates a new assignment and invalidates owner caches
func (a *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	cache.InvalidateAssignmentCache(ctx, a.cacheManager, assignment.ID, assignment.UserID)

	return nil
}

// GetByIDAndUser retrieves an assignment scoped to its owner, with caching.
// The cached row embeds the preloaded course; course writes invalidate the
// owner's assignment reads so the embedded copy cannot go stale.
func (a *AssignmentPostgreSQL) GetByIDAndUser(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Assignment, error) {
	cacheKey := fmt.Sprintf("user:%d:id:%d", userID, id)
	var assignment models.Assignment

	err := a.cacheManager.Assignment.CacheOrExecute(ctx, cacheKey, &assignment, cache.AssignmentCacheConfig.TTL, func() (interface{}, error) {
		var dbAssignment models.Assignment
		err := a.getDB(tx).WithContext(ctx).
			Preload("Course").
			Where("id = ? AND user_id = ?", id, userID).
			First(&dbAssignment).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get assignment for user: %w", err)
		}
		return &dbAssignment, nil
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// Update persists all mutable assignment fields and invalidates cache
func (a *AssignmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Model(&models.Assignment{}).Where("id = ?", assignment.ID).Updates(map[string]interface{}{
		"title":                 assignment.Title,
		"description":           assignment.Description,
		"due_date":              assignment.DueDate,
		"priority":              assignment.Priority,
		"status":                assignment.Status,
		"notes":                 assignment.Notes,
		"completion_percentage": assignment.CompletionPercentage,
		"estimated_hours":       assignment.EstimatedHours,
		"actual_hours":          assignment.ActualHours,
		"completed_at":          assignment.CompletedAt,
		"course_id":             assignment.CourseID,
		"updated_at":            assignment.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	cache.InvalidateAssignmentCache(ctx, a.cacheManager, assignment.ID, assignment.UserID)

	return nil
}

// Delete hard deletes an assignment
func (a *AssignmentPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := a.getDB(tx)

	var assignment models.Assignment
	if err := db.WithContext(ctx).Select("id, user_id").First(&assignment, id).Error; err != nil {
		return fmt.Errorf("failed to get assignment before delete: %w", err)
	}

	if err := db.WithContext(ctx).Delete(&models.Assignment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	cache.InvalidateAssignmentCache(ctx, a.cacheManager, id, assignment.UserID)

	return nil
}

// DeleteByCourse removes all assignments of a course, used by the cascade delete
func (a *AssignmentPostgreSQL) DeleteByCourse(ctx context.Context, tx *gorm.DB, courseID uint) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.Assignment{}).Error; err != nil {
		return fmt.Errorf("failed to delete assignments for course: %w", err)
	}

	return nil
}

// List retrieves assignments with filters and pagination
func (a *AssignmentPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.AssignmentFilters) ([]*models.Assignment, int64, error) {
	query := a.getDB(tx).WithContext(ctx).Model(&models.Assignment{})

	query = a.helpers.ApplyAssignmentFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.SortBy == "" {
		filters.SortBy = "due_date"
		filters.SortOrder = "asc"
	}
	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var assignments []*models.Assignment
	err := query.Preload("Course").Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// FindUpcoming lists the next open assignments due at or after now
func (a *AssignmentPostgreSQL) FindUpcoming(ctx context.Context, tx *gorm.DB, userID uint, now time.Time, limit int) ([]*models.Assignment, error) {
	db := a.getDB(tx)
	var assignments []*models.Assignment

	err := db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ? AND status NOT IN ? AND due_date >= ?",
			userID, []models.AssignmentStatus{models.StatusCompleted, models.StatusCancelled}, now).
		Order("due_date ASC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming assignments: %w", err)
	}

	return assignments, nil
}

// FindRecentlyUpdated lists the most recently touched assignments for the
// activity feed, newest first with creation time as tiebreak
func (a *AssignmentPostgreSQL) FindRecentlyUpdated(ctx context.Context, tx *gorm.DB, userID uint, limit int) ([]*models.Assignment, error) {
	db := a.getDB(tx)
	var assignments []*models.Assignment

	err := db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("updated_at DESC NULLS LAST").
		Order("created_at DESC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent assignments: %w", err)
	}

	return assignments, nil
}
