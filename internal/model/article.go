// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Article is a long-form editorial piece written by exactly one author and
// filed under exactly one category.
type Article struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Slug       string       `json:"slug"`
	Picture    string       `json:"picture"`
	Status     Status       `json:"status"`
	AuthorID   int64        `json:"author_id"`
	CategoryID int64        `json:"category_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  sql.NullTime `json:"updated_at,omitempty"`
}

// IsDeactivated returns true if the article has been taken down.
func (a *Article) IsDeactivated() bool {
	return a.Status == StatusDeactivated
}

// Advice is a short contributed tip. Unlike articles the category is
// optional and the owning user is called a contributor.
type Advice struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Slug          string        `json:"slug"`
	Status        Status        `json:"status"`
	ContributorID int64         `json:"contributor_id"`
	CategoryID    sql.NullInt64 `json:"category_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     sql.NullTime  `json:"updated_at,omitempty"`
}

// IsDeactivated returns true if the advice has been taken down.
func (a *Advice) IsDeactivated() bool {
	return a.Status == StatusDeactivated
}
