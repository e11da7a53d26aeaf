// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

func TestParseFilterForm(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/backoffice/articles?title=compost&status=1&sortType=title&sortOrder=desc&dateFrom=2026-01-01", nil)

	form := ParseFilterForm(r)
	if form.Title != "compost" {
		t.Errorf("Title = %q, want %q", form.Title, "compost")
	}
	if form.Status != "1" {
		t.Errorf("Status = %q, want %q", form.Status, "1")
	}
	if form.SortType != "title" || form.SortOrder != "desc" {
		t.Errorf("sort = %q/%q, want title/desc", form.SortType, form.SortOrder)
	}
	if form.DateFrom != "2026-01-01" {
		t.Errorf("DateFrom = %q, want 2026-01-01", form.DateFrom)
	}
}

func TestFilterFormToSpec(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		form := FilterForm{
			Title:    "solar",
			Status:   "1",
			Owner:    "7",
			Category: "3",
			DateFrom: "2026-01-01",
			DateTo:   "2026-06-30",
		}

		spec, fieldErrors := form.ToSpec()
		if len(fieldErrors) != 0 {
			t.Fatalf("unexpected field errors: %v", fieldErrors)
		}
		if spec.Status == nil || *spec.Status != model.StatusActive {
			t.Errorf("Status = %v, want active", spec.Status)
		}
		if spec.OwnerID != 7 {
			t.Errorf("OwnerID = %d, want 7", spec.OwnerID)
		}
		if spec.CategoryID != 3 {
			t.Errorf("CategoryID = %d, want 3", spec.CategoryID)
		}
		wantFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		if !spec.DateFrom.Equal(wantFrom) {
			t.Errorf("DateFrom = %v, want %v", spec.DateFrom, wantFrom)
		}
	})

	t.Run("invalid status ignored", func(t *testing.T) {
		spec, fieldErrors := FilterForm{Status: "9"}.ToSpec()
		if len(fieldErrors) != 0 {
			t.Fatalf("unexpected field errors: %v", fieldErrors)
		}
		if spec.Status != nil {
			t.Errorf("Status = %v, want nil for out-of-range input", spec.Status)
		}
	})

	t.Run("malformed date is a field error", func(t *testing.T) {
		_, fieldErrors := FilterForm{DateFrom: "01/02/2026"}.ToSpec()
		if fieldErrors["dateFrom"] == "" {
			t.Error("expected a dateFrom field error")
		}
	})

	t.Run("inverted range is a field error", func(t *testing.T) {
		_, fieldErrors := FilterForm{DateFrom: "2026-06-30", DateTo: "2026-01-01"}.ToSpec()
		if fieldErrors["dateFrom"] == "" {
			t.Error("expected a dateFrom field error for inverted range")
		}
	})

	t.Run("unknown sort passes through for silent fallback", func(t *testing.T) {
		spec, fieldErrors := FilterForm{SortType: "bogus", SortOrder: "sideways"}.ToSpec()
		if len(fieldErrors) != 0 {
			t.Fatalf("unexpected field errors: %v", fieldErrors)
		}
		if spec.SortField != "bogus" {
			t.Errorf("SortField = %q, want raw value kept for Normalize", spec.SortField)
		}
	})
}
