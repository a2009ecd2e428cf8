package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheManager(client), mr
}

func TestInvalidateAssignmentCache(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	seed := map[*CacheHelper][]string{
		cm.Assignment: {"user:1:id:7", "user:1:id:8", "user:2:id:7"},
		cm.Stats:      {"user:1:status_counts", "user:2:status_counts"},
	}
	for helper, keys := range seed {
		for _, key := range keys {
			if err := helper.Set(ctx, key, cachedCourse{ID: 1}, time.Minute); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}
	}

	InvalidateAssignmentCache(ctx, cm, 7, 1)

	if mr.Exists("assignment:user:1:id:7") {
		t.Error("Expected the invalidated assignment read removed")
	}
	if !mr.Exists("assignment:user:1:id:8") {
		t.Error("Expected other assignment reads untouched")
	}
	if !mr.Exists("assignment:user:2:id:7") {
		t.Error("Expected other users' reads untouched")
	}
	if mr.Exists("stats:user:1:status_counts") {
		t.Error("Expected the owner's stats invalidated")
	}
	if !mr.Exists("stats:user:2:status_counts") {
		t.Error("Expected other users' stats untouched")
	}
}

func TestInvalidateCourseCache(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	seed := map[*CacheHelper][]string{
		cm.Course:     {"id:3", "details:3", "user:1:list", "user:2:list"},
		cm.Assignment: {"user:1:id:7", "user:2:id:9"},
		cm.Stats:      {"user:1:course_counts"},
	}
	for helper, keys := range seed {
		for _, key := range keys {
			if err := helper.Set(ctx, key, cachedCourse{ID: 1}, time.Minute); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}
	}

	InvalidateCourseCache(ctx, cm, 3, 1)

	for _, key := range []string{"course:id:3", "course:details:3", "course:user:1:list"} {
		if mr.Exists(key) {
			t.Errorf("Expected %s removed", key)
		}
	}
	// Cached assignment reads embed the course, so their owner's entries go too.
	if mr.Exists("assignment:user:1:id:7") {
		t.Error("Expected the owner's assignment reads invalidated with the course")
	}
	if mr.Exists("stats:user:1:course_counts") {
		t.Error("Expected the owner's stats invalidated")
	}
	if !mr.Exists("course:user:2:list") || !mr.Exists("assignment:user:2:id:9") {
		t.Error("Expected other users' entries untouched")
	}
}
