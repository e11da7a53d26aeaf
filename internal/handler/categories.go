// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/Laure-Riglet/eco-friendly-api/internal/cache"
	"github.com/Laure-Riglet/eco-friendly-api/internal/imaging"
	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
	"github.com/Laure-Riglet/eco-friendly-api/internal/util"
)

// CategoriesHandler handles category management routes. All of them sit
// behind the admin middleware.
type CategoriesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	processor      *imaging.Processor
	categoryCache  *cache.Categories
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager,
	processor *imaging.Processor, categoryCache *cache.Categories) *CategoriesHandler {
	return &CategoriesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		processor:      processor,
		categoryCache:  categoryCache,
	}
}

// List handles GET /backoffice/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "backoffice/categories_list", render.TemplateData{
		Title: "Categories",
		User:  middleware.GetUser(r),
		Data:  categories,
	}); err != nil {
		logAndInternalError(w, "failed to render categories list", "error", err)
	}
}

// CategoryFormData holds data for the category form template.
type CategoryFormData struct {
	Category model.Category
	IsNew    bool
}

// NewForm handles GET /backoffice/categories/new.
func (h *CategoriesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, CategoryFormData{IsNew: true}, nil)
}

// Create handles POST /backoffice/categories/new.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseUploadFormOrRedirect(w, r, h.renderer, redirectBackofficeCategories+RouteSuffixNew) {
		return
	}

	category := model.Category{
		Name:     r.FormValue("name"),
		Tagline:  r.FormValue("tagline"),
		IsActive: r.FormValue("is_active") == "1",
	}
	category.Slug = util.Slugify(category.Name)

	formErrors := h.validate(r, &category, 0)
	if len(formErrors) > 0 {
		h.renderForm(w, r, CategoryFormData{Category: category, IsNew: true}, formErrors)
		return
	}

	if picture, errMsg := h.savePicture(r); errMsg != "" {
		h.renderForm(w, r, CategoryFormData{Category: category, IsNew: true},
			map[string]string{"picture": errMsg})
		return
	} else if picture != "" {
		category.Picture = picture
	}

	created, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:      category.Name,
		Tagline:   category.Tagline,
		Slug:      category.Slug,
		IsActive:  category.IsActive,
		Picture:   category.Picture,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to create category", "error", err)
		return
	}

	h.invalidateCache(r)
	flashSuccess(w, r, h.renderer, redirectBackofficeCategories, fmt.Sprintf("Category %q created", created.Name))
}

// EditForm handles GET /backoffice/categories/{id}/edit.
func (h *CategoriesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	category, ok := h.requireCategory(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, CategoryFormData{Category: category}, nil)
}

// Update handles POST /backoffice/categories/{id}/edit.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	category, ok := h.requireCategory(w, r)
	if !ok {
		return
	}

	if !parseUploadFormOrRedirect(w, r, h.renderer, fmt.Sprintf("%s/%d/edit", redirectBackofficeCategories, category.ID)) {
		return
	}

	updated := category
	updated.Name = r.FormValue("name")
	updated.Tagline = r.FormValue("tagline")
	updated.IsActive = r.FormValue("is_active") == "1"
	if updated.Name != category.Name {
		updated.Slug = util.Slugify(updated.Name)
	}

	formErrors := h.validate(r, &updated, category.ID)
	if len(formErrors) > 0 {
		h.renderForm(w, r, CategoryFormData{Category: updated}, formErrors)
		return
	}

	if picture, errMsg := h.savePicture(r); errMsg != "" {
		h.renderForm(w, r, CategoryFormData{Category: updated}, map[string]string{"picture": errMsg})
		return
	} else if picture != "" {
		updated.Picture = picture
	}

	if _, err := h.queries.UpdateCategory(r.Context(), store.UpdateCategoryParams{
		ID:        category.ID,
		Name:      updated.Name,
		Tagline:   updated.Tagline,
		Slug:      updated.Slug,
		IsActive:  updated.IsActive,
		Picture:   updated.Picture,
		UpdatedAt: time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to update category", "error", err)
		return
	}

	h.invalidateCache(r)
	flashSuccess(w, r, h.renderer, redirectBackofficeCategories, "Category updated")
}

// Toggle handles POST /backoffice/categories/{id}/toggle.
func (h *CategoriesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	category, ok := h.requireCategory(w, r)
	if !ok {
		return
	}

	if err := h.queries.SetCategoryActive(r.Context(), category.ID, !category.IsActive, time.Now()); err != nil {
		logAndInternalError(w, "failed to toggle category", "error", err)
		return
	}

	h.invalidateCache(r)
	message := fmt.Sprintf("Category %q activated", category.Name)
	if category.IsActive {
		message = fmt.Sprintf("Category %q deactivated", category.Name)
	}
	flashSuccess(w, r, h.renderer, redirectBackofficeCategories, message)
}

func (h *CategoriesHandler) requireCategory(w http.ResponseWriter, r *http.Request) (model.Category, bool) {
	id := ParseIDParam(r)
	if id == 0 {
		http.NotFound(w, r)
		return model.Category{}, false
	}

	category, err := h.queries.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			logAndInternalError(w, "failed to load category", "error", err, "id", id)
		}
		return model.Category{}, false
	}
	return category, true
}

func (h *CategoriesHandler) validate(r *http.Request, category *model.Category, currentID int64) map[string]string {
	formErrors := make(map[string]string)

	if category.Name == "" {
		formErrors["name"] = "Name is required"
	} else if len(category.Name) > 64 {
		formErrors["name"] = "Name must be at most 64 characters"
	}

	if category.Tagline == "" {
		formErrors["tagline"] = "Tagline is required"
	}

	if _, present := formErrors["name"]; !present {
		if msg := ValidateSlugWithChecker(category.Slug, func() (int64, error) {
			existing, err := h.queries.GetCategoryBySlug(r.Context(), category.Slug)
			if errors.Is(err, sql.ErrNoRows) {
				return 0, nil
			}
			if err != nil {
				return 0, err
			}
			if existing.ID == currentID {
				return 0, nil
			}
			return 1, nil
		}); msg != "" {
			formErrors["name"] = msg
		}
	}

	return formErrors
}

func (h *CategoriesHandler) renderForm(w http.ResponseWriter, r *http.Request, data CategoryFormData, formErrors map[string]string) {
	title := "Edit category"
	if data.IsNew {
		title = "New category"
	}

	if err := h.renderer.Render(w, r, "backoffice/category_form", render.TemplateData{
		Title:  title,
		User:   middleware.GetUser(r),
		Data:   data,
		Errors: formErrors,
	}); err != nil {
		logAndInternalError(w, "failed to render category form", "error", err)
	}
}

// invalidateCache drops the public category listing so the next API read
// sees fresh data. A failed invalidation only shortens nothing, the entry
// expires on its own TTL, so it is logged and not surfaced.
func (h *CategoriesHandler) invalidateCache(r *http.Request) {
	if h.categoryCache == nil {
		return
	}
	if err := h.categoryCache.Invalidate(r.Context()); err != nil {
		slog.Warn("failed to invalidate category cache", "error", err)
	}
}

func (h *CategoriesHandler) savePicture(r *http.Request) (string, string) {
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
