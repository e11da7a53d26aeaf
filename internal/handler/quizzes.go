// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// QuizzesHandler handles quiz management routes.
type QuizzesHandler struct {
	db             *sql.DB
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewQuizzesHandler creates a new QuizzesHandler. It keeps the raw DB
// handle because quiz writes run in transactions.
func NewQuizzesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *QuizzesHandler {
	return &QuizzesHandler{
		db:             db,
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// QuizzesListData holds data for the quizzes list template.
type QuizzesListData struct {
	Quizzes []model.Quiz
}

// List handles GET /backoffice/quizzes.
func (h *QuizzesHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.queries.ListQuizzes(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list quizzes", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "backoffice/quizzes_list", render.TemplateData{
		Title: "Quizzes",
		User:  middleware.GetUser(r),
		Data:  QuizzesListData{Quizzes: quizzes},
	}); err != nil {
		logAndInternalError(w, "failed to render quizzes list", "error", err)
	}
}

// QuizFormData holds data for the quiz form template.
type QuizFormData struct {
	Quiz         model.Quiz
	Articles     []model.Article
	AnswerValues [model.QuizAnswerCount]string
	CorrectIndex int
	IsNew        bool
}

// NewForm handles GET /backoffice/quizzes/new.
func (h *QuizzesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, QuizFormData{IsNew: true}, nil)
}

// Create handles POST /backoffice/quizzes/new.
func (h *QuizzesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectBackofficeQuizzes+RouteSuffixNew) {
		return
	}

	quiz, answers, correct := parseQuizForm(r)
	quiz.Answers = answersToModels(answers, correct)

	formErrors := quiz.ValidateCreate()
	if len(formErrors) > 0 {
		h.renderForm(w, r, QuizFormData{Quiz: quiz, AnswerValues: answers, CorrectIndex: correct, IsNew: true}, formErrors)
		return
	}

	if _, err := h.queries.GetArticleByID(r.Context(), quiz.ArticleID); err != nil {
		h.renderForm(w, r, QuizFormData{Quiz: quiz, AnswerValues: answers, CorrectIndex: correct, IsNew: true},
			map[string]string{"article": "Unknown article"})
		return
	}

	if _, err := h.queries.CreateQuiz(r.Context(), h.db, store.CreateQuizParams{
		ArticleID: quiz.ArticleID,
		Question:  quiz.Question,
		Status:    quiz.Status,
		Answers:   quiz.Answers,
		CreatedAt: time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to create quiz", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, redirectBackofficeQuizzes, "Quiz created")
}

// EditForm handles GET /backoffice/quizzes/{id}/edit.
func (h *QuizzesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.requireQuiz(w, r)
	if !ok {
		return
	}

	data := QuizFormData{Quiz: quiz}
	for i, a := range quiz.Answers {
		if i >= model.QuizAnswerCount {
			break
		}
		data.AnswerValues[i] = a.Content
		if a.IsCorrect {
			data.CorrectIndex = i
		}
	}

	h.renderForm(w, r, data, nil)
}

// Update handles POST /backoffice/quizzes/{id}/edit.
func (h *QuizzesHandler) Update(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.requireQuiz(w, r)
	if !ok {
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, fmt.Sprintf("%s/%d/edit", redirectBackofficeQuizzes, quiz.ID)) {
		return
	}

	updated, answers, correct := parseQuizForm(r)
	updated.ID = quiz.ID
	updated.ArticleID = quiz.ArticleID // a quiz never moves to another article
	updated.Answers = answersToModels(answers, correct)

	formErrors := updated.ValidateEdit()
	if len(updated.Answers) != model.QuizAnswerCount {
		formErrors["answers"] = "A quiz must have exactly 4 answers"
	}
	if len(formErrors) > 0 {
		h.renderForm(w, r, QuizFormData{Quiz: updated, AnswerValues: answers, CorrectIndex: correct}, formErrors)
		return
	}

	if _, err := h.queries.UpdateQuiz(r.Context(), store.UpdateQuizParams{
		ID:        quiz.ID,
		Question:  updated.Question,
		Status:    updated.Status,
		UpdatedAt: time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to update quiz", "error", err)
		return
	}

	if err := h.queries.ReplaceAnswers(r.Context(), h.db, quiz.ID, updated.Answers); err != nil {
		logAndInternalError(w, "failed to replace quiz answers", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, redirectBackofficeQuizzes, "Quiz updated")
}

// Delete handles POST /backoffice/quizzes/{id}/delete. Answers go with
// the quiz through the cascade.
func (h *QuizzesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	quiz, ok := h.requireQuiz(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteQuiz(r.Context(), quiz.ID); err != nil {
		logAndInternalError(w, "failed to delete quiz", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, redirectBackofficeQuizzes, "Quiz deleted")
}

func (h *QuizzesHandler) requireQuiz(w http.ResponseWriter, r *http.Request) (model.Quiz, bool) {
	id := ParseIDParam(r)
	if id == 0 {
		http.NotFound(w, r)
		return model.Quiz{}, false
	}

	quiz, err := h.queries.GetQuizByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			logAndInternalError(w, "failed to load quiz", "error", err, "id", id)
		}
		return model.Quiz{}, false
	}
	return quiz, true
}

func (h *QuizzesHandler) renderForm(w http.ResponseWriter, r *http.Request, data QuizFormData, formErrors map[string]string) {
	articles, err := h.queries.ListArticles(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list articles", "error", err)
		return
	}
	data.Articles = articles

	title := "Edit quiz"
	if data.IsNew {
		title = "New quiz"
	}

	if err := h.renderer.Render(w, r, "backoffice/quiz_form", render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Data:   data,
		Errors: formErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render quiz form", "error", err)
	}
}

// parseQuizForm reads the question fields plus the four answer_N inputs
// and the correct radio index.
func parseQuizForm(r *http.Request) (model.Quiz, [model.QuizAnswerCount]string, int) {
	quiz := model.Quiz{
		Question:  r.FormValue("question"),
		ArticleID: parseInt64(r.FormValue("article_id")),
		Status:    parseStatus(r.FormValue("status")),
	}

	var answers [model.QuizAnswerCount]string
	for i := range answers {
		answers[i] = r.FormValue("answer_" + strconv.Itoa(i))
	}

	correct, err := strconv.Atoi(r.FormValue("correct"))
	if err != nil || correct < 0 || correct >= model.QuizAnswerCount {
		correct = 0
	}

	return quiz, answers, correct
}

// answersToModels drops empty inputs so the answer-count validation sees
// what the user actually filled in.
func answersToModels(answers [model.QuizAnswerCount]string, correct int) []model.Answer {
	var out []model.Answer
	for i, content := range answers {
		if content == "" {
			continue
		}
		out = append(out, model.Answer{Content: content, IsCorrect: i == correct})
	}
	return out
}
