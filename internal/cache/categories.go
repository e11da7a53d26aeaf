// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// categoriesKey caches the active category list served by the public API.
const categoriesKey = "categories:active"

// Categories is a typed wrapper caching the public category list. Entries
// are JSON-encoded so both backends can hold them.
type Categories struct {
	cache Cacher
}

// NewCategories wraps a cache backend for category-list use.
func NewCategories(c Cacher) *Categories {
	return &Categories{cache: c}
}

// Get returns the cached category list, or (nil, false) on a miss. Backend
// errors count as misses: the caller falls through to the database.
func (c *Categories) Get(ctx context.Context) ([]model.Category, bool) {
	data, err := c.cache.Get(ctx, categoriesKey)
	if err != nil {
		// Misses and backend failures both degrade to a DB read.
		return nil, false
	}

	var cats []model.Category
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, false
	}
	return cats, true
}

// Set stores the category list with the backend's default TTL.
func (c *Categories) Set(ctx context.Context, cats []model.Category) error {
	data, err := json.Marshal(cats)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, categoriesKey, data, 0)
}

// Invalidate drops the cached list. Called after every category write so
// the public API never serves stale names.
func (c *Categories) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, categoriesKey)
}
