package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardRepository interface for per-user dashboard aggregation queries
type DashboardRepository interface {
	// Grouped counts
	GetStatusCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]StatusCountData, error)
	GetCourseCounts(ctx context.Context, tx *gorm.DB, userID uint) ([]CourseCountData, error)

	// Single-value metrics
	GetOverdueCount(ctx context.Context, tx *gorm.DB, userID uint, now time.Time) (int64, error)
	GetCourseCount(ctx context.Context, tx *gorm.DB, userID uint) (int64, error)
}

// Data structures for dashboard responses

type StatusCountData struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CourseCountData struct {
	CourseID   uint   `json:"course_id"`
	CourseName string `json:"course_name"`
	CourseCode string `json:"course_code"`
	Color      string `json:"color"`
	Count      int64  `json:"count"`
}
