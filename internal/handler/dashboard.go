// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// DashboardHandler renders the backoffice landing page.
type DashboardHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *DashboardHandler {
	return &DashboardHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// DashboardData holds the counters shown on the landing page.
type DashboardData struct {
	ArticleCount  int64
	AdviceCount   int64
	CategoryCount int64
	UserCount     int64
}

// Show handles GET /backoffice.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data DashboardData
	var err error

	if data.ArticleCount, err = h.queries.CountArticles(ctx); err != nil {
		logAndInternalError(w, "failed to count articles", "error", err)
		return
	}
	if data.AdviceCount, err = h.queries.CountAdvices(ctx); err != nil {
		logAndInternalError(w, "failed to count advices", "error", err)
		return
	}
	if data.CategoryCount, err = h.queries.CountCategories(ctx); err != nil {
		logAndInternalError(w, "failed to count categories", "error", err)
		return
	}
	if data.UserCount, err = h.queries.CountUsers(ctx); err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "backoffice/dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  middleware.GetUser(r),
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
