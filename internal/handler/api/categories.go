// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Laure-Riglet/eco-friendly-api/internal/cache"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// CategoriesHandler serves the public category listing.
type CategoriesHandler struct {
	queries       *store.Queries
	categoryCache *cache.Categories
}

// NewCategoriesHandler creates a new public CategoriesHandler.
func NewCategoriesHandler(db *sql.DB, categoryCache *cache.Categories) *CategoriesHandler {
	return &CategoriesHandler{
		queries:       store.New(db),
		categoryCache: categoryCache,
	}
}

// categoryResponse is the public shape of a category. Timestamps stay
// internal.
type categoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Tagline  string `json:"tagline"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
	Picture  string `json:"picture"`
}

// List handles GET /v2/categories. Reads go through the cache; a cache
// failure falls back to the database.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, hit := h.categoryCache.Get(ctx)
	if !hit {
		var err error
		categories, err = h.queries.ListActiveCategories(ctx)
		if err != nil {
			slog.Error("failed to list categories", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := h.categoryCache.Set(ctx, categories); err != nil {
			slog.Warn("failed to cache categories", "error", err)
		}
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Tagline:  c.Tagline,
		Slug:     c.Slug,
		IsActive: c.IsActive,
		Picture:  c.Picture,
	}
}
