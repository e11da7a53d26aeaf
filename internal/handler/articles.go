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

	"github.com/Laure-Riglet/eco-friendly-api/internal/imaging"
	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/policy"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
	"github.com/Laure-Riglet/eco-friendly-api/internal/util"
)

// ArticlesHandler handles article management routes.
type ArticlesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	processor      *imaging.Processor
}

// NewArticlesHandler creates a new ArticlesHandler.
func NewArticlesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, processor *imaging.Processor) *ArticlesHandler {
	return &ArticlesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		processor:      processor,
	}
}

// ArticlesListData holds data for the articles list template.
type ArticlesListData struct {
	Articles []model.Article
	Filter   FilterForm
}

// List handles GET /backoffice/articles with the optional filter form.
// Non-admins only see their own articles.
func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	form := ParseFilterForm(r)
	spec, fieldErrors := form.ToSpec()
	if !user.IsAdmin() {
		spec.OwnerID = user.ID
	}

	data := ArticlesListData{Filter: form}
	if len(fieldErrors) == 0 {
		articles, err := h.queries.ListArticlesFiltered(r.Context(), spec)
		if err != nil {
			logAndInternalError(w, "failed to list articles", "error", err)
			return
		}
		data.Articles = articles
	}

	if err := h.renderer.Render(w, r, "backoffice/articles_list", render.TemplateData{
		Title:  "Articles",
		User:   user,
		Data:   data,
		Errors: fieldErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render articles list", "error", err)
	}
}

// ArticleFormData holds data for the article form template.
type ArticleFormData struct {
	Article    model.Article
	Categories []model.Category
	IsNew      bool
}

// NewForm handles GET /backoffice/articles/new.
func (h *ArticlesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, ArticleFormData{IsNew: true}, nil)
}

// Create handles POST /backoffice/articles/new.
func (h *ArticlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if !parseUploadFormOrRedirect(w, r, h.renderer, redirectBackofficeArticles+RouteSuffixNew) {
		return
	}

	article := model.Article{
		AuthorID:   user.ID,
		CategoryID: parseInt64(r.FormValue("category_id")),
		Title:      r.FormValue("title"),
		Content:    r.FormValue("content"),
		Status:     parseStatus(r.FormValue("status")),
	}

	formErrors := h.validate(r, &article, 0)
	if len(formErrors) > 0 {
		h.renderForm(w, r, ArticleFormData{Article: article, IsNew: true}, formErrors)
		return
	}

	article.Slug = util.Slugify(article.Title)
	if picture, errMsg := h.savePicture(r); errMsg != "" {
		h.renderForm(w, r, ArticleFormData{Article: article, IsNew: true},
			map[string]string{"picture": errMsg})
		return
	} else if picture != "" {
		article.Picture = picture
	}

	created, err := h.queries.CreateArticle(r.Context(), store.CreateArticleParams{
		AuthorID:   article.AuthorID,
		CategoryID: article.CategoryID,
		Title:      article.Title,
		Content:    article.Content,
		Slug:       article.Slug,
		Picture:    article.Picture,
		Status:     article.Status,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to create article", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeArticles, created.ID), "Article created")
}

// ArticleShowData holds data for the article detail template.
type ArticleShowData struct {
	Article       model.Article
	Quizzes       []model.Quiz
	CanEdit       bool
	CanDeactivate bool
	CanReactivate bool
}

// Show handles GET /backoffice/articles/{id}.
func (h *ArticlesHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	article, ok := h.requireArticle(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &article, policy.ActionRead) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	quizzes, err := h.queries.ListQuizzesByArticle(r.Context(), article.ID)
	if err != nil {
		logAndInternalError(w, "failed to list article quizzes", "error", err)
		return
	}

	data := ArticleShowData{
		Article:       article,
		Quizzes:       quizzes,
		CanEdit:       policy.Decide(user, &article, policy.ActionEdit),
		CanDeactivate: policy.Decide(user, &article, policy.ActionDeactivate) && !article.IsDeactivated(),
		CanReactivate: policy.Decide(user, &article, policy.ActionReactivate) && article.IsDeactivated(),
	}

	if err := h.renderer.Render(w, r, "backoffice/article_show", render.TemplateData{
		Title: article.Title,
		User:  user,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render article", "error", err)
	}
}

// EditForm handles GET /backoffice/articles/{id}/edit.
func (h *ArticlesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	article, ok := h.requireArticle(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &article, policy.ActionEdit) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	h.renderForm(w, r, ArticleFormData{Article: article}, nil)
}

// Update handles POST /backoffice/articles/{id}/edit.
func (h *ArticlesHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	article, ok := h.requireArticle(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &article, policy.ActionEdit) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !parseUploadFormOrRedirect(w, r, h.renderer, fmt.Sprintf("%s/%d/edit", redirectBackofficeArticles, article.ID)) {
		return
	}

	updated := article
	updated.Title = r.FormValue("title")
	updated.Content = r.FormValue("content")
	updated.CategoryID = parseInt64(r.FormValue("category_id"))
	updated.Status = parseStatus(r.FormValue("status"))

	formErrors := h.validate(r, &updated, article.ID)
	if len(formErrors) > 0 {
		h.renderForm(w, r, ArticleFormData{Article: updated}, formErrors)
		return
	}

	if updated.Title != article.Title {
		updated.Slug = util.Slugify(updated.Title)
	}
	if picture, errMsg := h.savePicture(r); errMsg != "" {
		h.renderForm(w, r, ArticleFormData{Article: updated}, map[string]string{"picture": errMsg})
		return
	} else if picture != "" {
		updated.Picture = picture
	}

	if _, err := h.queries.UpdateArticle(r.Context(), store.UpdateArticleParams{
		ID:         article.ID,
		CategoryID: updated.CategoryID,
		Title:      updated.Title,
		Content:    updated.Content,
		Slug:       updated.Slug,
		Picture:    updated.Picture,
		Status:     updated.Status,
		UpdatedAt:  time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to update article", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeArticles, article.ID), "Article updated")
}

// Deactivate handles POST /backoffice/articles/{id}/deactivate.
func (h *ArticlesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, policy.ActionDeactivate, model.StatusDeactivated, "Article deactivated")
}

// Reactivate handles POST /backoffice/articles/{id}/reactivate.
func (h *ArticlesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, policy.ActionReactivate, model.StatusActive, "Article reactivated")
}

func (h *ArticlesHandler) setStatus(w http.ResponseWriter, r *http.Request, action policy.Action, status model.Status, message string) {
	user := middleware.GetUser(r)
	article, ok := h.requireArticle(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &article, action) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.queries.SetArticleStatus(r.Context(), article.ID, status, time.Now()); err != nil {
		logAndInternalError(w, "failed to change article status", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeArticles, article.ID), message)
}

func (h *ArticlesHandler) requireArticle(w http.ResponseWriter, r *http.Request) (model.Article, bool) {
	id := ParseIDParam(r)
	if id == 0 {
		http.NotFound(w, r)
		return model.Article{}, false
	}

	article, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			logAndInternalError(w, "failed to load article", "error", err, "id", id)
		}
		return model.Article{}, false
	}
	return article, true
}

// validate checks the article form fields. currentID is zero on create.
func (h *ArticlesHandler) validate(r *http.Request, article *model.Article, currentID int64) map[string]string {
	formErrors := make(map[string]string)

	if article.Title == "" {
		formErrors["title"] = "Title is required"
	} else if len(article.Title) > 128 {
		formErrors["title"] = "Title must be at most 128 characters"
	} else {
		existing, err := h.queries.GetArticleByTitle(r.Context(), article.Title)
		if err == nil && existing.ID != currentID {
			formErrors["title"] = "An article with this title already exists"
		}
	}

	if article.Content == "" {
		formErrors["content"] = "Content is required"
	}

	if article.CategoryID == 0 {
		formErrors["category"] = "Category is required"
	} else if _, err := h.queries.GetCategoryByID(r.Context(), article.CategoryID); err != nil {
		formErrors["category"] = "Unknown category"
	}

	if !article.Status.Valid() {
		formErrors["status"] = "Invalid status"
	}

	return formErrors
}

func (h *ArticlesHandler) renderForm(w http.ResponseWriter, r *http.Request, data ArticleFormData, formErrors map[string]string) {
	categories, err := h.queries.ListActiveCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}
	data.Categories = categories

	title := "Edit article"
	if data.IsNew {
		title = "New article"
	}

	if err := h.renderer.Render(w, r, "backoffice/article_form", render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Data:   data,
		Errors: formErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render article form", "error", err)
	}
}

// savePicture stores an optional picture upload and returns its public
// path. An empty path with empty message means no file was sent.
func (h *ArticlesHandler) savePicture(r *http.Request) (string, string) {
	file, header, err := r.FormFile("picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", ""
		}
		return "", "Could not read the uploaded picture"
	}
	defer file.Close()

	return storeUpload(h.processor, file, header.Filename)
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseStatus(s string) model.Status {
	v, err := strconv.Atoi(s)
	if err != nil {
		return model.StatusDraft
	}
	return model.Status(v)
}
