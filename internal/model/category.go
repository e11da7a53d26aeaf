// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Category groups articles and advices by theme.
type Category struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Tagline   string       `json:"tagline"`
	Slug      string       `json:"slug"`
	IsActive  bool         `json:"is_active"`
	Picture   string       `json:"picture"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt sql.NullTime `json:"updated_at,omitempty"`
}

// Avatar is a catalog entry users can pick their profile picture from.
type Avatar struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Picture   string       `json:"picture"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt sql.NullTime `json:"updated_at,omitempty"`
}
