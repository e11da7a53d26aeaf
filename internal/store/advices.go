// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/listing"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

const adviceColumns = `id, contributor_id, category_id, title, content, slug, status, created_at, updated_at`

func scanAdvice(s scanner) (model.Advice, error) {
	var a model.Advice
	err := s.Scan(&a.ID, &a.ContributorID, &a.CategoryID, &a.Title, &a.Content, &a.Slug,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func collectAdvices(rows *sql.Rows) ([]model.Advice, error) {
	defer rows.Close()
	var out []model.Advice
	for rows.Next() {
		a, err := scanAdvice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAdviceParams holds the fields required to create an advice. The
// category is optional, unlike articles.
type CreateAdviceParams struct {
	ContributorID int64
	CategoryID    sql.NullInt64
	Title         string
	Content       string
	Slug          string
	Status        model.Status
	CreatedAt     time.Time
}

// CreateAdvice inserts an advice and returns the stored record.
func (q *Queries) CreateAdvice(ctx context.Context, arg CreateAdviceParams) (model.Advice, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO advice (contributor_id, category_id, title, content, slug, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ContributorID, arg.CategoryID, arg.Title, arg.Content, arg.Slug, int(arg.Status), arg.CreatedAt)
	if err != nil {
		return model.Advice{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Advice{}, err
	}
	return q.GetAdviceByID(ctx, id)
}

// GetAdviceByID fetches an advice by primary key.
func (q *Queries) GetAdviceByID(ctx context.Context, id int64) (model.Advice, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+adviceColumns+` FROM advice WHERE id = ?`, id)
	return scanAdvice(row)
}

// GetAdviceBySlug fetches an advice by unique slug.
func (q *Queries) GetAdviceBySlug(ctx context.Context, slug string) (model.Advice, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+adviceColumns+` FROM advice WHERE slug = ?`, slug)
	return scanAdvice(row)
}

// GetAdviceByTitle fetches an advice by unique title.
func (q *Queries) GetAdviceByTitle(ctx context.Context, title string) (model.Advice, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+adviceColumns+` FROM advice WHERE title = ?`, title)
	return scanAdvice(row)
}

// ListAdvices returns all advices ordered by creation date, newest first.
func (q *Queries) ListAdvices(ctx context.Context) ([]model.Advice, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+adviceColumns+` FROM advice ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectAdvices(rows)
}

// ListAdvicesFiltered runs a normalized filter spec against the advice
// table. A CategoryID filter only matches advices that actually carry a
// category.
func (q *Queries) ListAdvicesFiltered(ctx context.Context, spec listing.Spec) ([]model.Advice, error) {
	spec, err := spec.Normalize(time.Now())
	if err != nil {
		return nil, err
	}

	query, args := buildContentFilter(adviceColumns, "advice", "contributor_id", spec, true)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAdvices(rows)
}

// CountAdvices returns the total number of advices.
func (q *Queries) CountAdvices(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM advice`).Scan(&n)
	return n, err
}

// UpdateAdviceParams holds the mutable fields of an advice. ContributorID
// is deliberately absent: ownership never changes.
type UpdateAdviceParams struct {
	ID         int64
	CategoryID sql.NullInt64
	Title      string
	Content    string
	Slug       string
	Status     model.Status
	UpdatedAt  time.Time
}

// UpdateAdvice updates an advice and touches updated_at.
func (q *Queries) UpdateAdvice(ctx context.Context, arg UpdateAdviceParams) (model.Advice, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE advice
		SET category_id = ?, title = ?, content = ?, slug = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		arg.CategoryID, arg.Title, arg.Content, arg.Slug, int(arg.Status), arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Advice{}, err
	}
	return q.GetAdviceByID(ctx, arg.ID)
}

// SetAdviceStatus applies a status transition, touching only status and
// updated_at.
func (q *Queries) SetAdviceStatus(ctx context.Context, id int64, status model.Status, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE advice SET status = ?, updated_at = ? WHERE id = ?`,
		int(status), updatedAt, id)
	return err
}
