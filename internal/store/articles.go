// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/listing"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

const articleColumns = `id, author_id, category_id, title, content, slug, picture, status, created_at, updated_at`

func scanArticle(s scanner) (model.Article, error) {
	var a model.Article
	err := s.Scan(&a.ID, &a.AuthorID, &a.CategoryID, &a.Title, &a.Content, &a.Slug,
		&a.Picture, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func collectArticles(rows *sql.Rows) ([]model.Article, error) {
	defer rows.Close()
	var out []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateArticleParams holds the fields required to create an article.
type CreateArticleParams struct {
	AuthorID   int64
	CategoryID int64
	Title      string
	Content    string
	Slug       string
	Picture    string
	Status     model.Status
	CreatedAt  time.Time
}

// CreateArticle inserts an article and returns the stored record. The
// author is fixed at creation and never changes afterwards.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (model.Article, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO article (author_id, category_id, title, content, slug, picture, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.AuthorID, arg.CategoryID, arg.Title, arg.Content, arg.Slug, arg.Picture, int(arg.Status), arg.CreatedAt)
	if err != nil {
		return model.Article{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Article{}, err
	}
	return q.GetArticleByID(ctx, id)
}

// GetArticleByID fetches an article by primary key.
func (q *Queries) GetArticleByID(ctx context.Context, id int64) (model.Article, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM article WHERE id = ?`, id)
	return scanArticle(row)
}

// GetArticleBySlug fetches an article by unique slug.
func (q *Queries) GetArticleBySlug(ctx context.Context, slug string) (model.Article, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM article WHERE slug = ?`, slug)
	return scanArticle(row)
}

// GetArticleByTitle fetches an article by unique title.
func (q *Queries) GetArticleByTitle(ctx context.Context, title string) (model.Article, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM article WHERE title = ?`, title)
	return scanArticle(row)
}

// ListArticles returns all articles ordered by creation date, newest first.
func (q *Queries) ListArticles(ctx context.Context) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM article ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticlesFiltered runs a normalized filter spec against the article
// table. The spec is normalized first so the ORDER BY column is always
// one of the whitelisted sort fields.
func (q *Queries) ListArticlesFiltered(ctx context.Context, spec listing.Spec) ([]model.Article, error) {
	spec, err := spec.Normalize(time.Now())
	if err != nil {
		return nil, err
	}

	query, args := buildContentFilter(articleColumns, "article", "author_id", spec, false)
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// CountArticles returns the total number of articles.
func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article`).Scan(&n)
	return n, err
}

// UpdateArticleParams holds the mutable fields of an article. AuthorID is
// deliberately absent: ownership never changes.
type UpdateArticleParams struct {
	ID         int64
	CategoryID int64
	Title      string
	Content    string
	Slug       string
	Picture    string
	Status     model.Status
	UpdatedAt  time.Time
}

// UpdateArticle updates an article and touches updated_at.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) (model.Article, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE article
		SET category_id = ?, title = ?, content = ?, slug = ?, picture = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		arg.CategoryID, arg.Title, arg.Content, arg.Slug, arg.Picture, int(arg.Status), arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Article{}, err
	}
	return q.GetArticleByID(ctx, arg.ID)
}

// SetArticleStatus applies a status transition, touching only status and
// updated_at as the deactivate/reactivate flows require.
func (q *Queries) SetArticleStatus(ctx context.Context, id int64, status model.Status, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE article SET status = ?, updated_at = ? WHERE id = ?`,
		int(status), updatedAt, id)
	return err
}

// buildContentFilter assembles the WHERE/ORDER BY clauses shared by the
// article and advice filtered lists. ownerCol names the owning user
// column; nullableCategory switches the category match for tables where
// the category is optional.
func buildContentFilter(columns, table, ownerCol string, spec listing.Spec, nullableCategory bool) (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT ` + columns + ` FROM ` + table + ` WHERE created_at >= ? AND created_at <= ?`)
	args = append(args, spec.DateFrom, spec.DateTo)

	if spec.Title != "" {
		sb.WriteString(` AND LOWER(title) LIKE ?`)
		args = append(args, "%"+strings.ToLower(spec.Title)+"%")
	}
	if spec.Content != "" {
		sb.WriteString(` AND LOWER(content) LIKE ?`)
		args = append(args, "%"+strings.ToLower(spec.Content)+"%")
	}
	if spec.Status != nil {
		sb.WriteString(` AND status = ?`)
		args = append(args, int(*spec.Status))
	}
	if spec.OwnerID != 0 {
		sb.WriteString(` AND ` + ownerCol + ` = ?`)
		args = append(args, spec.OwnerID)
	}
	if spec.CategoryID != 0 {
		if nullableCategory {
			sb.WriteString(` AND category_id IS NOT NULL AND category_id = ?`)
		} else {
			sb.WriteString(` AND category_id = ?`)
		}
		args = append(args, spec.CategoryID)
	}

	// Sort field and order are whitelisted by Spec.Normalize; the ID
	// tie-break keeps pagination deterministic.
	column := spec.SortField
	if column == listing.SortTitle {
		column = "LOWER(title)"
	}
	sb.WriteString(` ORDER BY ` + column + ` ` + spec.SortOrder + `, id ASC`)

	return sb.String(), args
}
