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

type dashboardRepository struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardRepository(db *gorm.DB, redisClient *redis.Client) repositories.DashboardRepository {
	return &dashboardRepository{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *dashboardRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== GROUPED COUNTS =====

// GetStatusCounts returns per-status assignment counts with short-lived
// caching. Assignment writes invalidate the stats prefix for the owner.
func (r *dashboardRepository) GetStatusCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]repositories.StatusCountData, error) {
	cacheKey := fmt.Sprintf("user:%d:status_counts", userID)
	var results []repositories.StatusCountData

	err := r.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &results, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var counts []repositories.StatusCountData
		if err := r.getDB(tx).WithContext(ctx).
			Model(&models.Assignment{}).
			Select("status, COUNT(id) as count").
			Where("user_id = ?", userID).
			Group("status").
			Scan(&counts).Error; err != nil {
			return nil, fmt.Errorf("failed to get status counts: %w", err)
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *dashboardRepository) GetCourseCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]repositories.CourseCountData, error) {
	cacheKey := fmt.Sprintf("user:%d:course_counts", userID)
	var results []repositories.CourseCountData

	err := r.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &results, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var counts []repositories.CourseCountData
		if err := r.getDB(tx).WithContext(ctx).
			Table("assignments a").
			Select("c.id as course_id, c.name as course_name, c.code as course_code, c.color as color, COUNT(a.id) as count").
			Joins("JOIN courses c ON a.course_id = c.id").
			Where("a.user_id = ?", userID).
			Group("c.id, c.name, c.code, c.color").
			Order("c.name ASC").
			Scan(&counts).Error; err != nil {
			return nil, fmt.Errorf("failed to get course counts: %w", err)
		}
		return counts, nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// ===== SINGLE-VALUE METRICS =====

func (r *dashboardRepository) GetOverdueCount(ctx context.Context, tx *gorm.DB, userID uint, now time.Time) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Assignment{}).
		Where("user_id = ? AND status NOT IN ? AND due_date < ?",
			userID, []models.AssignmentStatus{models.StatusCompleted, models.StatusCancelled}, now).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get overdue count: %w", err)
	}

	return count, nil
}

func (r *dashboardRepository) GetCourseCount(ctx context.Context, tx *gorm.DB, userID uint) (int64, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get course count: %w", err)
	}

	return count, nil
}
