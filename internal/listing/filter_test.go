// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

func day(d int) time.Time {
	return time.Date(2023, time.March, d, 12, 0, 0, 0, time.UTC)
}

func testArticles() []model.Article {
	return []model.Article{
		{ID: 1, Title: "Composting at home", Content: "Turn kitchen waste into soil", Status: model.StatusDraft, AuthorID: 100, CategoryID: 1, CreatedAt: day(1)},
		{ID: 2, Title: "Cycling to work", Content: "Leave the car behind", Status: model.StatusActive, AuthorID: 100, CategoryID: 2, CreatedAt: day(3)},
		{ID: 3, Title: "Repairing clothes", Content: "A needle beats a landfill", Status: model.StatusDeactivated, AuthorID: 200, CategoryID: 1, CreatedAt: day(5)},
	}
}

func ids(items []model.Article) []int64 {
	out := make([]int64, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}

func TestStatusExactMatch(t *testing.T) {
	status := model.StatusActive
	got, err := Articles(testArticles(), Spec{Status: &status})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{2}) {
		t.Errorf("ids = %v, want [2]", ids(got))
	}
}

func TestOwnerFilterDefaultOrder(t *testing.T) {
	got, err := Articles(testArticles(), Spec{OwnerID: 100})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	// Default sort is created_at DESC.
	if !reflect.DeepEqual(ids(got), []int64{2, 1}) {
		t.Errorf("ids = %v, want [2 1]", ids(got))
	}
}

func TestTitleAndContentSubstringCaseInsensitive(t *testing.T) {
	got, err := Articles(testArticles(), Spec{Title: "CYCL"})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{2}) {
		t.Errorf("title match ids = %v, want [2]", ids(got))
	}

	got, err = Articles(testArticles(), Spec{Content: "landfill"})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Errorf("content match ids = %v, want [3]", ids(got))
	}
}

func TestPredicatesCombineWithAnd(t *testing.T) {
	status := model.StatusDraft
	got, err := Articles(testArticles(), Spec{OwnerID: 100, Status: &status, CategoryID: 1})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{1}) {
		t.Errorf("ids = %v, want [1]", ids(got))
	}
}

func TestDateRangeInclusive(t *testing.T) {
	got, err := Articles(testArticles(), Spec{DateFrom: day(3), DateTo: day(5)})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{3, 2}) {
		t.Errorf("ids = %v, want [3 2]", ids(got))
	}
}

func TestInvertedDateRangeRejected(t *testing.T) {
	_, err := Articles(testArticles(), Spec{DateFrom: day(5), DateTo: day(1)})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("err = %v, want *FieldError", err)
	}
	if fieldErr.Field != "dateFrom" {
		t.Errorf("Field = %q, want %q", fieldErr.Field, "dateFrom")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("dateFrom", "2023-03-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate = %v", got)
	}

	if _, err := ParseDate("dateTo", "not-a-date"); err == nil {
		t.Error("ParseDate(malformed) = nil error, want FieldError")
	}

	zero, err := ParseDate("dateFrom", "")
	if err != nil || !zero.IsZero() {
		t.Errorf("ParseDate(empty) = (%v, %v), want zero time and nil", zero, err)
	}
}

func TestUnknownSortInputsFallBack(t *testing.T) {
	explicit, err := Articles(testArticles(), Spec{SortField: SortCreatedAt, SortOrder: OrderDesc})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	for _, spec := range []Spec{
		{},
		{SortField: "bogus", SortOrder: "sideways"},
		{SortField: "", SortOrder: ""},
	} {
		got, err := Articles(testArticles(), spec)
		if err != nil {
			t.Fatalf("Articles(%+v): %v", spec, err)
		}
		if !reflect.DeepEqual(ids(got), ids(explicit)) {
			t.Errorf("ids = %v, want %v for spec %+v", ids(got), ids(explicit), spec)
		}
	}
}

func TestSortByTitleAscending(t *testing.T) {
	got, err := Articles(testArticles(), Spec{SortField: SortTitle, SortOrder: OrderAsc})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", ids(got))
	}
}

func TestTieBreakByIDAscending(t *testing.T) {
	same := day(2)
	items := []model.Article{
		{ID: 9, Title: "b", Status: model.StatusActive, AuthorID: 1, CategoryID: 1, CreatedAt: same},
		{ID: 4, Title: "a", Status: model.StatusActive, AuthorID: 1, CategoryID: 1, CreatedAt: same},
		{ID: 7, Title: "c", Status: model.StatusActive, AuthorID: 1, CategoryID: 1, CreatedAt: same},
	}

	// Ties break by ID ascending even when the requested order is DESC.
	got, err := Articles(items, Spec{SortField: SortCreatedAt, SortOrder: OrderDesc})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{4, 7, 9}) {
		t.Errorf("ids = %v, want [4 7 9]", ids(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	spec := Spec{OwnerID: 100, SortField: SortTitle, SortOrder: OrderAsc}

	once, err := Articles(testArticles(), spec)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	twice, err := Articles(once, spec)
	if err != nil {
		t.Fatalf("Articles (second pass): %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v != %v", ids(once), ids(twice))
	}
}

func TestFilterDeterministic(t *testing.T) {
	spec := Spec{SortField: SortStatus, SortOrder: OrderAsc}
	first, err := Articles(testArticles(), spec)
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Articles(testArticles(), spec)
		if err != nil {
			t.Fatalf("Articles: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v != %v", i, ids(first), ids(again))
		}
	}
}

func TestInputSliceNotMutated(t *testing.T) {
	items := testArticles()
	want := ids(items)
	if _, err := Articles(items, Spec{SortField: SortTitle, SortOrder: OrderAsc}); err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if !reflect.DeepEqual(ids(items), want) {
		t.Errorf("input mutated: ids = %v, want %v", ids(items), want)
	}
}

func TestAdvicesNullableCategory(t *testing.T) {
	advices := []model.Advice{
		{ID: 1, Title: "Unplug chargers", Status: model.StatusActive, ContributorID: 1, CreatedAt: day(1)},
		{ID: 2, Title: "Shorter showers", Status: model.StatusActive, ContributorID: 1, CategoryID: sql.NullInt64{Int64: 3, Valid: true}, CreatedAt: day(2)},
	}

	got, err := Advices(advices, Spec{CategoryID: 3})
	if err != nil {
		t.Fatalf("Advices: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("got %d advices, want the single categorized one", len(got))
	}

	// No category constraint keeps the uncategorized advice.
	got, err = Advices(advices, Spec{})
	if err != nil {
		t.Fatalf("Advices: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d advices, want 2", len(got))
	}
}
