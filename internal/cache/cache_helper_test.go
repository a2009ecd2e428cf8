package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedCourse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "course:"), mr
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	original := cachedCourse{ID: 3, Name: "Algorithms"}
	if err := helper.Set(ctx, "3", original, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if !mr.Exists("course:3") {
		t.Error("Expected prefixed key course:3 in redis")
	}

	var got cachedCourse
	if err := helper.Get(ctx, "3", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != original {
		t.Errorf("Expected %+v, got %+v", original, got)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedCourse
	err := helper.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedCourse{ID: 3, Name: "Algorithms"}, nil
	}

	var first cachedCourse
	if err := helper.CacheOrExecute(ctx, "3", &first, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 fetch call, got %d", calls)
	}
	if first.Name != "Algorithms" {
		t.Errorf("Expected fetched value, got %+v", first)
	}

	// The write-back is asynchronous, wait for the key to land.
	deadline := time.After(2 * time.Second)
	for {
		var cached cachedCourse
		if err := helper.Get(ctx, "3", &cached); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("Cached value never appeared")
		case <-time.After(10 * time.Millisecond):
		}
	}

	var second cachedCourse
	if err := helper.CacheOrExecute(ctx, "3", &second, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected cache hit without a second fetch, got %d calls", calls)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"user:1:list", "user:1:details", "user:2:list"} {
		if err := helper.Set(ctx, key, cachedCourse{ID: 1}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "user:1:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if mr.Exists("course:user:1:list") || mr.Exists("course:user:1:details") {
		t.Error("Expected user 1 keys removed")
	}
	if !mr.Exists("course:user:2:list") {
		t.Error("Expected user 2 keys untouched")
	}
}

func TestCacheHelper_NilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "course:")
	ctx := context.Background()

	if err := helper.Set(ctx, "3", cachedCourse{ID: 3}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}
	if err := helper.Delete(ctx, "3"); err != nil {
		t.Errorf("Delete with nil client should be a no-op, got %v", err)
	}

	var got cachedCourse
	if err := helper.Get(ctx, "3", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}

	// The fallthrough path still fetches and fills dest.
	if err := helper.CacheOrExecute(ctx, "3", &got, time.Minute, func() (interface{}, error) {
		return cachedCourse{ID: 3, Name: "Algorithms"}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if got.Name != "Algorithms" {
		t.Errorf("Expected fetched value, got %+v", got)
	}
}
