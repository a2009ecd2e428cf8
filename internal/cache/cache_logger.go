package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateCourseCache invalidates all course-related caches for one owner.
// Cached assignment reads embed their course, so they are cleared too.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID, userID uint) {
	SafeDelete(ctx, cm.Course,
		fmt.Sprintf("id:%d", courseID),
		fmt.Sprintf("details:%d", courseID))

	SafeInvalidatePattern(ctx, cm.Course, fmt.Sprintf("user:%d:*", userID))
	SafeInvalidatePattern(ctx, cm.Assignment, fmt.Sprintf("user:%d:*", userID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("user:%d:*", userID))
}

// InvalidateAssignmentCache invalidates one assignment read and the owner's
// dashboard stats
func InvalidateAssignmentCache(ctx context.Context, cm *CacheManager, assignmentID, userID uint) {
	SafeDelete(ctx, cm.Assignment, fmt.Sprintf("user:%d:id:%d", userID, assignmentID))
	SafeInvalidatePattern(ctx, cm.Stats, fmt.Sprintf("user:%d:*", userID))
}
