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
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// UsersPerPage is the page size of the member list.
const UsersPerPage = 20

// UsersHandler handles member management routes. Admin only.
type UsersHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *UsersHandler {
	return &UsersHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// UsersListData holds data for the members list template.
type UsersListData struct {
	Users      []model.User
	Page       int
	TotalPages int
}

// List handles GET /backoffice/users with pagination.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	total, err := h.queries.CountUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count users", "error", err)
		return
	}

	page, totalPages := NormalizePagination(ParsePageParam(r), int(total), UsersPerPage)

	users, err := h.queries.ListUsers(r.Context(), store.ListUsersParams{
		Limit:  UsersPerPage,
		Offset: int64((page - 1) * UsersPerPage),
	})
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "backoffice/users_list", render.TemplateData{
		Title: "Members",
		User:  middleware.GetUser(r),
		Data:  UsersListData{Users: users, Page: page, TotalPages: totalPages},
	}); err != nil {
		logAndInternalError(w, "failed to render users list", "error", err)
	}
}

// Toggle handles POST /backoffice/users/{id}/toggle. An admin cannot lock
// themself out, and the last active admin cannot be deactivated.
func (h *UsersHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUser(r)

	id := ParseIDParam(r)
	if id == 0 {
		http.NotFound(w, r)
		return
	}

	target, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			logAndInternalError(w, "failed to load user", "error", err, "id", id)
		}
		return
	}

	if target.IsActive {
		if target.ID == actor.ID {
			flashError(w, r, h.renderer, redirectBackofficeUsers, "You cannot deactivate your own account")
			return
		}
		if target.IsAdmin() {
			admins, err := h.queries.CountAdmins(r.Context())
			if err != nil {
				logAndInternalError(w, "failed to count admins", "error", err)
				return
			}
			if admins <= 1 {
				flashError(w, r, h.renderer, redirectBackofficeUsers, "Cannot deactivate the last administrator")
				return
			}
		}
	}

	if err := h.queries.SetUserActive(r.Context(), target.ID, !target.IsActive, time.Now()); err != nil {
		logAndInternalError(w, "failed to toggle user", "error", err)
		return
	}

	message := fmt.Sprintf("Member %q reactivated", target.Nickname)
	if target.IsActive {
		message = fmt.Sprintf("Member %q deactivated", target.Nickname)
	}
	flashSuccess(w, r, h.renderer, redirectBackofficeUsers, message)
}
