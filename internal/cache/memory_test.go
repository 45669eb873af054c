package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zanybarlee/a8-manpower/internal/cache"
)

func TestMemory_SetThenGet(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	c.Set(ctx, "jobdescs:u1", []byte(`[]`), time.Minute)

	got, ok := c.Get(ctx, "jobdescs:u1")
	if !ok {
		t.Fatal("Get should hit after Set")
	}
	if string(got) != `[]` {
		t.Errorf("value = %q, want %q", got, `[]`)
	}
}

func TestMemory_GetMiss(t *testing.T) {
	c := cache.NewMemory()

	got, ok := c.Get(context.Background(), "missing")
	if ok {
		t.Error("Get should miss for unknown key")
	}
	if got != nil {
		t.Errorf("value = %v, want nil", got)
	}
}

func TestMemory_ExpiredEntryMisses(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), -time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get should miss once the TTL has elapsed")
	}
	// The expired entry is dropped; a second read still misses.
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get should keep missing after cleanup")
	}
}

func TestMemory_Invalidate(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Invalidate(ctx, "k")

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("Get should miss after Invalidate")
	}
}

func TestMemory_InvalidateMissingKeyIsNoop(t *testing.T) {
	c := cache.NewMemory()
	c.Invalidate(context.Background(), "never-set")
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		key := fmt.Sprintf("k%d", i)
		go func() {
			defer wg.Done()
			c.Set(ctx, key, []byte("v"), time.Minute)
		}()
		go func() {
			defer wg.Done()
			c.Get(ctx, key)
		}()
	}
	wg.Wait()
}
