// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want int64
	}{
		{"valid ID", "42", 42},
		{"zero", "0", 0},
		{"negative", "-3", 0},
		{"not a number", "abc", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/x", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			if got := ParseIDParam(r); got != tt.want {
				t.Errorf("ParseIDParam(%q) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/users", 1},
		{"/users?page=3", 3},
		{"/users?page=0", 1},
		{"/users?page=-1", 1},
		{"/users?page=abc", 1},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := ParsePageParam(r); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name           string
		page, total    int
		perPage        int
		wantPage       int
		wantTotalPages int
	}{
		{"first page", 1, 100, 20, 1, 5},
		{"page beyond range clamped", 99, 100, 20, 5, 5},
		{"no items", 1, 0, 20, 1, 1},
		{"exact fit", 2, 40, 20, 2, 2},
		{"partial last page", 3, 41, 20, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages := NormalizePagination(tt.page, tt.total, tt.perPage)
			if page != tt.wantPage {
				t.Errorf("page = %d, want %d", page, tt.wantPage)
			}
			if totalPages != tt.wantTotalPages {
				t.Errorf("totalPages = %d, want %d", totalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestValidateSlugWithChecker(t *testing.T) {
	noClash := func() (int64, error) { return 0, nil }

	t.Run("valid slug", func(t *testing.T) {
		if msg := ValidateSlugWithChecker("eco-tips-2026", noClash); msg != "" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("empty slug", func(t *testing.T) {
		if msg := ValidateSlugWithChecker("", noClash); msg == "" {
			t.Error("expected message for empty slug")
		}
	})

	t.Run("bad format", func(t *testing.T) {
		if msg := ValidateSlugWithChecker("Not A Slug!", noClash); msg == "" {
			t.Error("expected message for invalid format")
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		clash := func() (int64, error) { return 1, nil }
		if msg := ValidateSlugWithChecker("taken", clash); msg == "" {
			t.Error("expected message for duplicate slug")
		}
	})

	t.Run("checker error", func(t *testing.T) {
		broken := func() (int64, error) { return 0, errors.New("db down") }
		if msg := ValidateSlugWithChecker("fine", broken); msg == "" {
			t.Error("expected message when the check fails")
		}
	})
}
