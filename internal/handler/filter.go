// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Laure-Riglet/eco-friendly-api/internal/listing"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// FilterForm carries the raw filter inputs of a list page, echoed back
// into the form so submitted values survive the round trip.
type FilterForm struct {
	Title     string
	Content   string
	Status    string
	Owner     string
	Category  string
	DateFrom  string
	DateTo    string
	SortType  string
	SortOrder string
}

// ParseFilterForm reads the filter query parameters of a list request.
func ParseFilterForm(r *http.Request) FilterForm {
	q := r.URL.Query()
	return FilterForm{
		Title:     q.Get("title"),
		Content:   q.Get("content"),
		Status:    q.Get("status"),
		Owner:     q.Get("owner"),
		Category:  q.Get("category"),
		DateFrom:  q.Get("dateFrom"),
		DateTo:    q.Get("dateTo"),
		SortType:  q.Get("sortType"),
		SortOrder: q.Get("sortOrder"),
	}
}

// ToSpec converts the form into a filter spec. Malformed dates and an
// inverted range come back as field errors; unknown sort inputs are left
// for the spec's silent fallbacks.
func (f FilterForm) ToSpec() (listing.Spec, map[string]string) {
	fieldErrors := make(map[string]string)

	spec := listing.Spec{
		SortField: f.SortType,
		SortOrder: f.SortOrder,
		Title:     f.Title,
		Content:   f.Content,
	}

	if f.Status != "" {
		if v, err := strconv.Atoi(f.Status); err == nil && model.Status(v).Valid() {
			s := model.Status(v)
			spec.Status = &s
		}
	}
	if f.Owner != "" {
		if v, err := strconv.ParseInt(f.Owner, 10, 64); err == nil && v > 0 {
			spec.OwnerID = v
		}
	}
	if f.Category != "" {
		if v, err := strconv.ParseInt(f.Category, 10, 64); err == nil && v > 0 {
			spec.CategoryID = v
		}
	}

	var fe *listing.FieldError
	from, err := listing.ParseDate("dateFrom", f.DateFrom)
	if err != nil {
		if errors.As(err, &fe) {
			fieldErrors[fe.Field] = fe.Message
		}
	} else {
		spec.DateFrom = from
	}

	to, err := listing.ParseDate("dateTo", f.DateTo)
	if err != nil {
		if errors.As(err, &fe) {
			fieldErrors[fe.Field] = fe.Message
		}
	} else {
		spec.DateTo = to
	}

	if !spec.DateFrom.IsZero() && !spec.DateTo.IsZero() && spec.DateFrom.After(spec.DateTo) {
		fieldErrors["dateFrom"] = "lower bound is after upper bound"
	}

	return spec, fieldErrors
}
