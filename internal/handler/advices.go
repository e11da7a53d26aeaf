// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/policy"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
	"github.com/Laure-Riglet/eco-friendly-api/internal/util"
)

// AdvicesHandler handles advice management routes.
type AdvicesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAdvicesHandler creates a new AdvicesHandler.
func NewAdvicesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AdvicesHandler {
	return &AdvicesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// AdvicesListData holds data for the advices list template.
type AdvicesListData struct {
	Advices []model.Advice
	Filter  FilterForm
}

// List handles GET /backoffice/advices with the optional filter form.
// Non-admins only see their own advices.
func (h *AdvicesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	form := ParseFilterForm(r)
	spec, fieldErrors := form.ToSpec()
	if !user.IsAdmin() {
		spec.OwnerID = user.ID
	}

	data := AdvicesListData{Filter: form}
	if len(fieldErrors) == 0 {
		advices, err := h.queries.ListAdvicesFiltered(r.Context(), spec)
		if err != nil {
			logAndInternalError(w, "failed to list advices", "error", err)
			return
		}
		data.Advices = advices
	}

	if err := h.renderer.Render(w, r, "backoffice/advices_list", render.TemplateData{
		Title:  "Advices",
		User:   user,
		Data:   data,
		Errors: fieldErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render advices list", "error", err)
	}
}

// AdviceFormData holds data for the advice form template.
type AdviceFormData struct {
	Advice     model.Advice
	Categories []model.Category
	IsNew      bool
}

// NewForm handles GET /backoffice/advices/new.
func (h *AdvicesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, AdviceFormData{IsNew: true}, nil)
}

// Create handles POST /backoffice/advices/new.
func (h *AdvicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if !parseFormOrRedirect(w, r, h.renderer, redirectBackofficeAdvices+RouteSuffixNew) {
		return
	}

	advice := model.Advice{
		ContributorID: user.ID,
		CategoryID:    util.ParseNullInt64(r.FormValue("category_id")),
		Title:         r.FormValue("title"),
		Content:       r.FormValue("content"),
		Status:        parseStatus(r.FormValue("status")),
	}

	formErrors := h.validate(r, &advice, 0)
	if len(formErrors) > 0 {
		h.renderForm(w, r, AdviceFormData{Advice: advice, IsNew: true}, formErrors)
		return
	}

	advice.Slug = util.Slugify(advice.Title)
	created, err := h.queries.CreateAdvice(r.Context(), store.CreateAdviceParams{
		ContributorID: advice.ContributorID,
		CategoryID:    advice.CategoryID,
		Title:         advice.Title,
		Content:       advice.Content,
		Slug:          advice.Slug,
		Status:        advice.Status,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to create advice", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeAdvices, created.ID), "Advice created")
}

// AdviceShowData holds data for the advice detail template.
type AdviceShowData struct {
	Advice        model.Advice
	CanEdit       bool
	CanDeactivate bool
	CanReactivate bool
}

// Show handles GET /backoffice/advices/{id}.
func (h *AdvicesHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	advice, ok := h.requireAdvice(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &advice, policy.ActionRead) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	data := AdviceShowData{
		Advice:        advice,
		CanEdit:       policy.Decide(user, &advice, policy.ActionEdit),
		CanDeactivate: policy.Decide(user, &advice, policy.ActionDeactivate) && !advice.IsDeactivated(),
		CanReactivate: policy.Decide(user, &advice, policy.ActionReactivate) && advice.IsDeactivated(),
	}

	if err := h.renderer.Render(w, r, "backoffice/advice_show", render.TemplateData{
		Title: advice.Title,
		User:  user,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render advice", "error", err)
	}
}

// EditForm handles GET /backoffice/advices/{id}/edit.
func (h *AdvicesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	advice, ok := h.requireAdvice(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &advice, policy.ActionEdit) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	h.renderForm(w, r, AdviceFormData{Advice: advice}, nil)
}

// Update handles POST /backoffice/advices/{id}/edit.
func (h *AdvicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	advice, ok := h.requireAdvice(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &advice, policy.ActionEdit) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, fmt.Sprintf("%s/%d/edit", redirectBackofficeAdvices, advice.ID)) {
		return
	}

	updated := advice
	updated.Title = r.FormValue("title")
	updated.Content = r.FormValue("content")
	updated.CategoryID = util.ParseNullInt64(r.FormValue("category_id"))
	updated.Status = parseStatus(r.FormValue("status"))

	formErrors := h.validate(r, &updated, advice.ID)
	if len(formErrors) > 0 {
		h.renderForm(w, r, AdviceFormData{Advice: updated}, formErrors)
		return
	}

	if updated.Title != advice.Title {
		updated.Slug = util.Slugify(updated.Title)
	}

	if _, err := h.queries.UpdateAdvice(r.Context(), store.UpdateAdviceParams{
		ID:         advice.ID,
		CategoryID: updated.CategoryID,
		Title:      updated.Title,
		Content:    updated.Content,
		Slug:       updated.Slug,
		Status:     updated.Status,
		UpdatedAt:  time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to update advice", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeAdvices, advice.ID), "Advice updated")
}

// Deactivate handles POST /backoffice/advices/{id}/deactivate.
func (h *AdvicesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, policy.ActionDeactivate, model.StatusDeactivated, "Advice deactivated")
}

// Reactivate handles POST /backoffice/advices/{id}/reactivate.
func (h *AdvicesHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, policy.ActionReactivate, model.StatusActive, "Advice reactivated")
}

func (h *AdvicesHandler) setStatus(w http.ResponseWriter, r *http.Request, action policy.Action, status model.Status, message string) {
	user := middleware.GetUser(r)
	advice, ok := h.requireAdvice(w, r)
	if !ok {
		return
	}

	if !policy.Decide(user, &advice, action) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.queries.SetAdviceStatus(r.Context(), advice.ID, status, time.Now()); err != nil {
		logAndInternalError(w, "failed to change advice status", "error", err)
		return
	}

	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectBackofficeAdvices, advice.ID), message)
}

func (h *AdvicesHandler) requireAdvice(w http.ResponseWriter, r *http.Request) (model.Advice, bool) {
	id := ParseIDParam(r)
	if id == 0 {
		http.NotFound(w, r)
		return model.Advice{}, false
	}

	advice, err := h.queries.GetAdviceByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			logAndInternalError(w, "failed to load advice", "error", err, "id", id)
		}
		return model.Advice{}, false
	}
	return advice, true
}

// validate checks the advice form fields. The category is optional here,
// unlike articles.
func (h *AdvicesHandler) validate(r *http.Request, advice *model.Advice, currentID int64) map[string]string {
	formErrors := make(map[string]string)

	if advice.Title == "" {
		formErrors["title"] = "Title is required"
	} else if len(advice.Title) > 128 {
		formErrors["title"] = "Title must be at most 128 characters"
	} else {
		existing, err := h.queries.GetAdviceByTitle(r.Context(), advice.Title)
		if err == nil && existing.ID != currentID {
			formErrors["title"] = "An advice with this title already exists"
		}
	}

	if advice.Content == "" {
		formErrors["content"] = "Content is required"
	}

	if advice.CategoryID.Valid {
		if _, err := h.queries.GetCategoryByID(r.Context(), advice.CategoryID.Int64); err != nil {
			formErrors["category"] = "Unknown category"
		}
	}

	if !advice.Status.Valid() {
		formErrors["status"] = "Invalid status"
	}

	return formErrors
}

func (h *AdvicesHandler) renderForm(w http.ResponseWriter, r *http.Request, data AdviceFormData, formErrors map[string]string) {
	categories, err := h.queries.ListActiveCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}
	data.Categories = categories

	title := "Edit advice"
	if data.IsNew {
		title = "New advice"
	}

	if err := h.renderer.Render(w, r, "backoffice/advice_form", render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Data:   data,
		Errors: formErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render advice form", "error", err)
	}
}

