package utility

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)

	if _, exists := cache.Get("missing"); exists {
		t.Error("Get key chưa set phải trả về exists=false")
	}

	cache.Set("k", "v")
	value, exists := cache.Get("k")
	if !exists {
		t.Fatal("Get key đã set phải trả về exists=true")
	}
	if value != "v" {
		t.Errorf("Get trả về %v, muốn \"v\"", value)
	}

	// Ghi đè giá trị cũ
	cache.Set("k", 42)
	value, _ = cache.Get("k")
	if value != 42 {
		t.Errorf("Set phải ghi đè giá trị cũ, được %v", value)
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := NewCache(10*time.Millisecond, 20*time.Millisecond)
	cache.Set("k", "v")

	// Sau chu kỳ cleanup, toàn bộ cache bị xóa
	time.Sleep(60 * time.Millisecond)
	if _, exists := cache.Get("k"); exists {
		t.Error("cleanup định kỳ phải xóa key khỏi cache")
	}
}
