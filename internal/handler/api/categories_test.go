// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/cache"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

func testHandler(t *testing.T) *CategoriesHandler {
	t.Helper()

	f, err := os.CreateTemp("", "eco-api-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(store.DriverSQLite, dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	memory := cache.NewMemory(time.Minute)
	t.Cleanup(func() { memory.Close() })

	return NewCategoriesHandler(db, cache.NewCategories(memory))
}

func TestListCategories(t *testing.T) {
	h := testHandler(t)
	ctx := context.Background()

	if _, err := h.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name:      "Energy",
		Tagline:   "Power without the footprint",
		Slug:      "energy",
		IsActive:  true,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := h.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name:      "Hidden",
		Tagline:   "Inactive category",
		Slug:      "hidden",
		IsActive:  false,
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/v2/categories", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Data []categoryResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Fatalf("len(data) = %d, want 1 (inactive excluded)", len(body.Data))
	}
	if body.Data[0].Slug != "energy" || !body.Data[0].IsActive {
		t.Errorf("unexpected category %+v", body.Data[0])
	}
}

func TestListCategoriesServedFromCache(t *testing.T) {
	h := testHandler(t)
	ctx := context.Background()

	if _, err := h.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name: "Water", Tagline: "Every drop counts", Slug: "water", IsActive: true, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// First request warms the cache.
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/v2/categories", nil))
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if _, hit := h.categoryCache.Get(ctx); !hit {
		t.Fatal("cache not warmed by first request")
	}

	// A new category is invisible until invalidation.
	if _, err := h.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name: "Soil", Tagline: "Grow better", Slug: "soil", IsActive: true, CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/v2/categories", nil))

	var body struct {
		Data []categoryResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Data) != 1 {
		t.Errorf("len(data) = %d, want 1 (stale cache served)", len(body.Data))
	}

	if err := h.categoryCache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/v2/categories", nil))
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Data) != 2 {
		t.Errorf("len(data) = %d, want 2 after invalidation", len(body.Data))
	}
}
