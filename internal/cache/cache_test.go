// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected cache miss, got %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q, want value", got)
	}

	// Returned slice is a copy.
	got[0] = 'X'
	again, _ := c.Get(ctx, "key")
	if string(again) != "value" {
		t.Errorf("cached value mutated to %q", again)
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired entry to miss, got %v", err)
	}
}

func TestMemoryClosed(t *testing.T) {
	c := NewMemory(time.Minute)
	c.Close()
	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestMemoryStats(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Get(ctx, "a")
	c.Get(ctx, "b")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 || stats.Items != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCategoriesRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute)
	defer c.Close()
	cats := NewCategories(c)
	ctx := context.Background()

	if _, ok := cats.Get(ctx); ok {
		t.Error("expected miss on empty cache")
	}

	want := []model.Category{
		{ID: 1, Name: "Energy", Slug: "energy", IsActive: true},
		{ID: 2, Name: "Waste", Slug: "waste", IsActive: true},
	}
	if err := cats.Set(ctx, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := cats.Get(ctx)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 2 || got[0].Slug != "energy" || got[1].Slug != "waste" {
		t.Errorf("unexpected categories: %+v", got)
	}

	if err := cats.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := cats.Get(ctx); ok {
		t.Error("expected miss after Invalidate")
	}
}
