// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing filters and orders content collections for the
// backoffice list pages. All predicates of a spec are combined with AND;
// the result order is deterministic so pagination stays stable across
// repeated requests.
package listing

import (
	"fmt"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// Sortable fields. Anything else silently falls back to SortCreatedAt.
const (
	SortCreatedAt = "created_at"
	SortUpdatedAt = "updated_at"
	SortTitle     = "title"
	SortStatus    = "status"
)

// Sort orders. Anything else silently falls back to OrderDesc.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// DateLayout is the wire format for filter date bounds.
const DateLayout = "2006-01-02"

// defaultDateFrom is the epoch floor used when no lower bound is given.
var defaultDateFrom = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Spec is the set of optional criteria narrowing and ordering a list
// query. The zero value matches everything, sorted by creation date
// descending.
type Spec struct {
	SortField string
	SortOrder string

	// Title and Content are case-insensitive substring matches.
	Title   string
	Content string

	// Status is an exact match; nil matches any status.
	Status *model.Status

	// OwnerID and CategoryID are exact matches; zero means no constraint.
	OwnerID    int64
	CategoryID int64

	// DateFrom and DateTo bound created_at inclusively. Zero values
	// default to 2000-01-01 and the current time respectively.
	DateFrom time.Time
	DateTo   time.Time
}

// FieldError reports a validation failure on a single filter field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseDate parses a filter date bound. An empty value yields the zero
// time (meaning "use the default"); a malformed value is a FieldError
// naming the offending field, never a silent default.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &FieldError{Field: field, Message: "invalid date, expected YYYY-MM-DD"}
	}
	return t, nil
}

// Normalize returns a copy of the spec with sort fallbacks applied and
// date bounds defaulted against now. Unknown sort inputs are normalized
// silently; an inverted date range is rejected with a FieldError since
// date bounds drive business-visible correctness.
func (s Spec) Normalize(now time.Time) (Spec, error) {
	switch s.SortField {
	case SortCreatedAt, SortUpdatedAt, SortTitle, SortStatus:
	default:
		s.SortField = SortCreatedAt
	}

	switch s.SortOrder {
	case OrderAsc, OrderDesc:
	default:
		s.SortOrder = OrderDesc
	}

	if s.DateFrom.IsZero() {
		s.DateFrom = defaultDateFrom
	}
	if s.DateTo.IsZero() {
		s.DateTo = now
	}
	if s.DateFrom.After(s.DateTo) {
		return Spec{}, &FieldError{Field: "dateFrom", Message: "lower bound is after upper bound"}
	}

	return s, nil
}
