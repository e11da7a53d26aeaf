// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

const categoryColumns = `id, name, tagline, slug, is_active, picture, created_at, updated_at`

func scanCategory(s scanner) (model.Category, error) {
	var c model.Category
	err := s.Scan(&c.ID, &c.Name, &c.Tagline, &c.Slug, &c.IsActive, &c.Picture, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func collectCategories(rows *sql.Rows) ([]model.Category, error) {
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategoryParams holds the fields required to create a category.
type CreateCategoryParams struct {
	Name      string
	Tagline   string
	Slug      string
	IsActive  bool
	Picture   string
	CreatedAt time.Time
}

// CreateCategory inserts a category and returns the stored record.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.Category, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO category (name, tagline, slug, is_active, picture, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Tagline, arg.Slug, arg.IsActive, arg.Picture, arg.CreatedAt)
	if err != nil {
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, id)
}

// GetCategoryByID fetches a category by primary key.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.Category, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM category WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryBySlug fetches a category by unique slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM category WHERE slug = ?`, slug)
	return scanCategory(row)
}

// ListCategories returns every category ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM category ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// ListActiveCategories returns active categories ordered by name. This is
// what the public API serves.
func (q *Queries) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM category WHERE is_active = 1 ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// CountCategories returns the total number of categories.
func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category`).Scan(&n)
	return n, err
}

// UpdateCategoryParams holds the mutable fields of a category.
type UpdateCategoryParams struct {
	ID        int64
	Name      string
	Tagline   string
	Slug      string
	IsActive  bool
	Picture   string
	UpdatedAt time.Time
}

// UpdateCategory updates a category and touches updated_at.
func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (model.Category, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE category
		SET name = ?, tagline = ?, slug = ?, is_active = ?, picture = ?, updated_at = ?
		WHERE id = ?`,
		arg.Name, arg.Tagline, arg.Slug, arg.IsActive, arg.Picture, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Category{}, err
	}
	return q.GetCategoryByID(ctx, arg.ID)
}

// SetCategoryActive flips the active flag and touches updated_at.
func (q *Queries) SetCategoryActive(ctx context.Context, id int64, active bool, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE category SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, updatedAt, id)
	return err
}

// ListActiveAvatars returns the selectable profile pictures.
func (q *Queries) ListActiveAvatars(ctx context.Context) ([]model.Avatar, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, picture, is_active, created_at, updated_at
		FROM avatar WHERE is_active = 1 ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Avatar
	for rows.Next() {
		var a model.Avatar
		if err := rows.Scan(&a.ID, &a.Name, &a.Picture, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
