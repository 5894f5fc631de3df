// Copyright (c) 2025-2026 BrightPath Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired Get err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	keys := []string{"programs:/api/v1/programs", "programs:/api/v1/programs/1", "events:/api/v1/events"}
	for _, k := range keys {
		if err := c.Set(ctx, k, []byte("x"), 0); err != nil {
			t.Fatalf("Set(%q): %v", k, err)
		}
	}

	if err := c.DeleteByPrefix(ctx, "programs:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	for _, k := range keys[:2] {
		if _, err := c.Get(ctx, k); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("Get(%q) err = %v, want ErrCacheMiss", k, err)
		}
	}
	if _, err := c.Get(ctx, keys[2]); err != nil {
		t.Errorf("unrelated key evicted: %v", err)
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 2})
	t.Cleanup(func() { _ = c.Close() })

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	// Hitting the bound flushes existing entries before the insert.
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(a) err = %v, want ErrCacheMiss", err)
	}
	if _, err := c.Get(ctx, "c"); err != nil {
		t.Errorf("Get(c): %v", err)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set err = %v, want ErrCacheClosed", err)
	}
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get err = %v, want ErrCacheClosed", err)
	}
}
