// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// fields maps a content type onto the dimensions the filter understands.
type fields[T any] struct {
	id        func(T) int64
	title     func(T) string
	content   func(T) string
	status    func(T) model.Status
	owner     func(T) int64
	category  func(T) sql.NullInt64
	createdAt func(T) time.Time
	updatedAt func(T) time.Time
}

// Articles filters and orders a collection of articles. The input slice is
// not modified; applying the same spec twice yields the same result.
func Articles(items []model.Article, spec Spec) ([]model.Article, error) {
	return apply(items, spec, fields[model.Article]{
		id:       func(a model.Article) int64 { return a.ID },
		title:    func(a model.Article) string { return a.Title },
		content:  func(a model.Article) string { return a.Content },
		status:   func(a model.Article) model.Status { return a.Status },
		owner:    func(a model.Article) int64 { return a.AuthorID },
		category: func(a model.Article) sql.NullInt64 { return sql.NullInt64{Int64: a.CategoryID, Valid: true} },
		createdAt: func(a model.Article) time.Time { return a.CreatedAt },
		updatedAt: func(a model.Article) time.Time { return a.UpdatedAt.Time },
	})
}

// Advices filters and orders a collection of advices.
func Advices(items []model.Advice, spec Spec) ([]model.Advice, error) {
	return apply(items, spec, fields[model.Advice]{
		id:        func(a model.Advice) int64 { return a.ID },
		title:     func(a model.Advice) string { return a.Title },
		content:   func(a model.Advice) string { return a.Content },
		status:    func(a model.Advice) model.Status { return a.Status },
		owner:     func(a model.Advice) int64 { return a.ContributorID },
		category:  func(a model.Advice) sql.NullInt64 { return a.CategoryID },
		createdAt: func(a model.Advice) time.Time { return a.CreatedAt },
		updatedAt: func(a model.Advice) time.Time { return a.UpdatedAt.Time },
	})
}

// apply runs the normalized spec over items: AND of all set predicates,
// then a stable order by the sort field with ties broken by ID ascending.
func apply[T any](items []T, spec Spec, f fields[T]) ([]T, error) {
	spec, err := spec.Normalize(time.Now())
	if err != nil {
		return nil, err
	}

	titleNeedle := strings.ToLower(spec.Title)
	contentNeedle := strings.ToLower(spec.Content)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if titleNeedle != "" && !strings.Contains(strings.ToLower(f.title(item)), titleNeedle) {
			continue
		}
		if contentNeedle != "" && !strings.Contains(strings.ToLower(f.content(item)), contentNeedle) {
			continue
		}
		if spec.Status != nil && f.status(item) != *spec.Status {
			continue
		}
		if spec.OwnerID != 0 && f.owner(item) != spec.OwnerID {
			continue
		}
		if spec.CategoryID != 0 {
			cat := f.category(item)
			if !cat.Valid || cat.Int64 != spec.CategoryID {
				continue
			}
		}
		created := f.createdAt(item)
		if created.Before(spec.DateFrom) || created.After(spec.DateTo) {
			continue
		}
		out = append(out, item)
	}

	less := lessFunc(spec, f)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return out, nil
}

// lessFunc builds the comparison for the normalized sort field and order.
// The ID tie-break is ascending regardless of the requested order so that
// pagination is deterministic.
func lessFunc[T any](spec Spec, f fields[T]) func(a, b T) bool {
	desc := spec.SortOrder == OrderDesc

	cmp := func(a, b T) int {
		switch spec.SortField {
		case SortUpdatedAt:
			return f.updatedAt(a).Compare(f.updatedAt(b))
		case SortTitle:
			return strings.Compare(strings.ToLower(f.title(a)), strings.ToLower(f.title(b)))
		case SortStatus:
			return int(f.status(a)) - int(f.status(b))
		default:
			return f.createdAt(a).Compare(f.createdAt(b))
		}
	}

	return func(a, b T) bool {
		c := cmp(a, b)
		if c == 0 {
			return f.id(a) < f.id(b)
		}
		if desc {
			return c > 0
		}
		return c < 0
	}
}
