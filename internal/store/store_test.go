// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/listing"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "eco-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(DriverSQLite, dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db, DriverSQLite); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return db
}

func createTestUser(t *testing.T, q *Queries, email, code string) model.User {
	t.Helper()
	u, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		PasswordHash: "hashed-password",
		Roles:        []string{model.RoleUser},
		Nickname:     "Tester",
		Code:         code,
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func createTestCategory(t *testing.T, q *Queries, name, slug string) model.Category {
	t.Helper()
	c, err := q.CreateCategory(context.Background(), CreateCategoryParams{
		Name:      name,
		Tagline:   "tagline",
		Slug:      slug,
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return c
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "hashed-password",
		Roles:        []string{model.RoleAdmin, model.RoleUser},
		Firstname:    "Jane",
		Nickname:     "jane",
		Code:         "AB2CD",
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if !user.IsAdmin() {
		t.Errorf("expected admin role, got %v", user.Roles)
	}
	if !user.Firstname.Valid || user.Firstname.String != "Jane" {
		t.Errorf("firstname = %+v, want Jane", user.Firstname)
	}

	got, err := q.GetUserByCode(ctx, "AB2CD")
	if err != nil {
		t.Fatalf("GetUserByCode: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetUserByCode ID = %d, want %d", got.ID, user.ID)
	}
}

func TestCreateUserDefaultsRole(t *testing.T) {
	db := testDB(t)
	q := New(db)

	u, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        "norole@example.com",
		PasswordHash: "x",
		Nickname:     "norole",
		Code:         "ZZ9YX",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !u.HasRole(model.RoleUser) {
		t.Errorf("roles = %v, want default user role", u.Roles)
	}
}

func TestArticleLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	author := createTestUser(t, q, "author@example.com", "AUT22")
	cat := createTestCategory(t, q, "Energy", "energy")

	art, err := q.CreateArticle(ctx, CreateArticleParams{
		AuthorID:   author.ID,
		CategoryID: cat.ID,
		Title:      "Solar panels at home",
		Content:    "Long form content.",
		Slug:       "solar-panels-at-home",
		Status:     model.StatusDraft,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if art.UpdatedAt.Valid {
		t.Error("updated_at should be NULL after create")
	}

	now := time.Now()
	art, err = q.UpdateArticle(ctx, UpdateArticleParams{
		ID:         art.ID,
		CategoryID: cat.ID,
		Title:      "Solar panels at home",
		Content:    "Revised content.",
		Slug:       "solar-panels-at-home",
		Status:     model.StatusActive,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}
	if !art.UpdatedAt.Valid {
		t.Error("updated_at should be set after update")
	}
	if art.Status != model.StatusActive {
		t.Errorf("status = %v, want active", art.Status)
	}

	if err := q.SetArticleStatus(ctx, art.ID, model.StatusDeactivated, time.Now()); err != nil {
		t.Fatalf("SetArticleStatus: %v", err)
	}
	art, err = q.GetArticleByID(ctx, art.ID)
	if err != nil {
		t.Fatalf("GetArticleByID: %v", err)
	}
	if !art.IsDeactivated() {
		t.Errorf("status = %v, want deactivated", art.Status)
	}
}

func TestListArticlesFiltered(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	alice := createTestUser(t, q, "alice@example.com", "ALC33")
	bob := createTestUser(t, q, "bob@example.com", "BOB44")
	cat := createTestCategory(t, q, "Waste", "waste")

	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	seedArticle := func(author int64, title, slug string, status model.Status, created time.Time) model.Article {
		a, err := q.CreateArticle(ctx, CreateArticleParams{
			AuthorID:   author,
			CategoryID: cat.ID,
			Title:      title,
			Content:    "Content about composting.",
			Slug:       slug,
			Status:     status,
			CreatedAt:  created,
		})
		if err != nil {
			t.Fatalf("CreateArticle %s: %v", title, err)
		}
		return a
	}

	a1 := seedArticle(alice.ID, "Composting basics", "composting-basics", model.StatusActive, base)
	seedArticle(bob.ID, "Recycling myths", "recycling-myths", model.StatusDraft, base.Add(24*time.Hour))
	a3 := seedArticle(alice.ID, "Zero waste kitchen", "zero-waste-kitchen", model.StatusActive, base.Add(48*time.Hour))

	// Owner + status filter, default sort: newest first.
	status := model.StatusActive
	got, err := q.ListArticlesFiltered(ctx, listing.Spec{OwnerID: alice.ID, Status: &status})
	if err != nil {
		t.Fatalf("ListArticlesFiltered: %v", err)
	}
	if len(got) != 2 || got[0].ID != a3.ID || got[1].ID != a1.ID {
		t.Fatalf("filtered IDs = %v, want [%d %d]", articleIDs(got), a3.ID, a1.ID)
	}

	// Case-insensitive title substring.
	got, err = q.ListArticlesFiltered(ctx, listing.Spec{Title: "COMPOST"})
	if err != nil {
		t.Fatalf("ListArticlesFiltered: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Errorf("title filter IDs = %v, want [%d]", articleIDs(got), a1.ID)
	}

	// Inverted date range surfaces a field error.
	_, err = q.ListArticlesFiltered(ctx, listing.Spec{
		DateFrom: base.Add(72 * time.Hour),
		DateTo:   base,
	})
	var fe *listing.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError for inverted range, got %v", err)
	}
	if fe.Field != "dateFrom" {
		t.Errorf("FieldError field = %q, want dateFrom", fe.Field)
	}
}

func articleIDs(arts []model.Article) []int64 {
	ids := make([]int64, len(arts))
	for i, a := range arts {
		ids[i] = a.ID
	}
	return ids
}

func TestAdviceNullableCategory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user := createTestUser(t, q, "contrib@example.com", "CON55")

	adv, err := q.CreateAdvice(ctx, CreateAdviceParams{
		ContributorID: user.ID,
		Title:         "Turn off standby devices",
		Content:       "They draw power all night.",
		Slug:          "turn-off-standby-devices",
		Status:        model.StatusActive,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateAdvice: %v", err)
	}
	if adv.CategoryID.Valid {
		t.Error("category should be NULL when not supplied")
	}

	// A category filter must not match category-less advices.
	got, err := q.ListAdvicesFiltered(ctx, listing.Spec{CategoryID: 99})
	if err != nil {
		t.Fatalf("ListAdvicesFiltered: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestQuizWithAnswers(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	author := createTestUser(t, q, "quiz@example.com", "QZA66")
	cat := createTestCategory(t, q, "Water", "water")
	art, err := q.CreateArticle(ctx, CreateArticleParams{
		AuthorID:   author.ID,
		CategoryID: cat.ID,
		Title:      "Saving water",
		Content:    "Content.",
		Slug:       "saving-water",
		Status:     model.StatusActive,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	quiz, err := q.CreateQuiz(ctx, db, CreateQuizParams{
		ArticleID: art.ID,
		Question:  "How much water does a dripping tap waste per day?",
		Status:    model.StatusActive,
		Answers: []model.Answer{
			{Content: "1 liter"},
			{Content: "10 liters"},
			{Content: "120 liters", IsCorrect: true},
			{Content: "None"},
		},
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if len(quiz.Answers) != model.QuizAnswerCount {
		t.Fatalf("answers = %d, want %d", len(quiz.Answers), model.QuizAnswerCount)
	}

	// Replacing the answer set keeps exactly the new answers.
	err = q.ReplaceAnswers(ctx, db, quiz.ID, []model.Answer{
		{Content: "A"}, {Content: "B", IsCorrect: true}, {Content: "C"}, {Content: "D"},
	})
	if err != nil {
		t.Fatalf("ReplaceAnswers: %v", err)
	}
	answers, err := q.ListAnswersByQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("ListAnswersByQuiz: %v", err)
	}
	if len(answers) != 4 || answers[1].Content != "B" || !answers[1].IsCorrect {
		t.Errorf("unexpected answers after replace: %+v", answers)
	}

	// Deleting the quiz cascades to its answers.
	if err := q.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	answers, err = q.ListAnswersByQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("ListAnswersByQuiz: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("expected answers removed with quiz, got %d", len(answers))
	}
}

func TestResetRequests(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user := createTestUser(t, q, "reset@example.com", "RST77")
	now := time.Now()

	first, err := q.CreateResetRequest(ctx, CreateResetRequestParams{
		UserID:      user.ID,
		Selector:    "selector-one",
		HashedToken: "hash-one",
		RequestedAt: now,
		ExpiresAt:   now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateResetRequest: %v", err)
	}

	// A second request supersedes the first.
	_, err = q.CreateResetRequest(ctx, CreateResetRequestParams{
		UserID:      user.ID,
		Selector:    "selector-two",
		HashedToken: "hash-two",
		RequestedAt: now,
		ExpiresAt:   now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateResetRequest (second): %v", err)
	}
	if _, err := q.GetResetRequestBySelector(ctx, first.Selector); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected first request gone, got err = %v", err)
	}

	got, err := q.GetResetRequestBySelector(ctx, "selector-two")
	if err != nil {
		t.Fatalf("GetResetRequestBySelector: %v", err)
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %d, want %d", got.UserID, user.ID)
	}

	// Expired requests are purged.
	_, err = q.CreateResetRequest(ctx, CreateResetRequestParams{
		UserID:      user.ID,
		Selector:    "selector-old",
		HashedToken: "hash-old",
		RequestedAt: now.Add(-2 * time.Hour),
		ExpiresAt:   now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateResetRequest (expired): %v", err)
	}
	n, err := q.DeleteExpiredResetRequests(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpiredResetRequests: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (again): %v", err)
	}

	admins, err := q.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if admins != 1 {
		t.Errorf("admins = %d, want 1", admins)
	}

	avatars, err := q.ListActiveAvatars(ctx)
	if err != nil {
		t.Fatalf("ListActiveAvatars: %v", err)
	}
	if len(avatars) != 4 {
		t.Errorf("avatars = %d, want 4", len(avatars))
	}
}
