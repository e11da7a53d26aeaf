// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/Laure-Riglet/eco-friendly-api/internal/auth"
	"github.com/Laure-Riglet/eco-friendly-api/internal/config"
	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// AuthHandler handles login, logout, and password resets.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	cfg             *config.Config
	logger          loginLogger
}

type loginLogger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager,
	lp *middleware.LoginProtection, cfg *config.Config, logger loginLogger) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
		cfg:             cfg,
		logger:          logger,
	}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.Exists(r.Context(), middleware.SessionKeyUserID) {
		http.Redirect(w, r, redirectBackoffice, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign in",
	}); err != nil {
		logAndInternalError(w, "failed to render login form", "error", err)
	}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		h.logger.Warn("login attempt on locked account", "email", email)
		flashError(w, r, h.renderer, redirectLogin,
			fmt.Sprintf("Account temporarily locked, try again in %s", remaining.Round(time.Second)))
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "failed to look up user", "error", err)
			return
		}
		h.failLogin(w, r, email)
		return
	}

	match, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		logAndInternalError(w, "failed to verify password", "error", err)
		return
	}
	if !match || !user.IsActive {
		h.failLogin(w, r, email)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Rotate the session token on privilege change.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	h.logger.Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, redirectBackoffice, http.StatusSeeOther)
}

func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, email string) {
	locked, duration := h.loginProtection.RecordFailedAttempt(email)
	if locked {
		h.logger.Warn("account locked after repeated failures", "email", email)
		flashError(w, r, h.renderer, redirectLogin,
			fmt.Sprintf("Too many failed attempts, locked for %s", duration.Round(time.Second)))
		return
	}
	flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "failed to destroy session", "error", err)
		return
	}
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

// ForgotPasswordForm handles GET /forgot-password.
func (h *AuthHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "auth/forgot_password", render.TemplateData{
		Title: "Forgot password",
	}); err != nil {
		logAndInternalError(w, "failed to render forgot password form", "error", err)
	}
}

// ForgotPassword handles POST /forgot-password. It answers the same way
// whether or not the address exists, so the form cannot be used to probe
// for accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteForgotPassword) {
		return
	}

	const neutralMessage = "If that address has an account, a reset link is on its way"

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	if email == "" {
		flashError(w, r, h.renderer, RouteForgotPassword, "Email is required")
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "failed to look up user", "error", err)
			return
		}
		flashSuccess(w, r, h.renderer, redirectLogin, neutralMessage)
		return
	}

	token, err := auth.NewResetToken()
	if err != nil {
		logAndInternalError(w, "failed to generate reset token", "error", err)
		return
	}

	now := time.Now()
	if _, err := h.queries.CreateResetRequest(r.Context(), store.CreateResetRequestParams{
		UserID:      user.ID,
		Selector:    token.Selector,
		HashedToken: token.HashedToken,
		RequestedAt: now,
		ExpiresAt:   now.Add(auth.ResetTokenTTL),
	}); err != nil {
		logAndInternalError(w, "failed to store reset request", "error", err)
		return
	}

	// No mailer is wired up; the link goes to the log for the operator
	// to relay.
	link := fmt.Sprintf("%s/reset-password/%s.%s", h.cfg.BaseURL, token.Selector, token.Verifier)
	h.logger.Info("password reset requested", "user_id", user.ID, "link", link)

	flashSuccess(w, r, h.renderer, redirectLogin, neutralMessage)
}

// ResetPasswordForm handles GET /reset-password/{token}.
func (h *AuthHandler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if _, ok := h.lookupResetRequest(r, token); !ok {
		flashError(w, r, h.renderer, redirectLogin, "This reset link is invalid or has expired")
		return
	}

	if err := h.renderer.Render(w, r, "auth/reset_password", render.TemplateData{
		Title: "Reset password",
		Data:  token,
	}); err != nil {
		logAndInternalError(w, "failed to render reset password form", "error", err)
	}
}

// ResetPassword handles POST /reset-password/{token}.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	req, ok := h.lookupResetRequest(r, token)
	if !ok {
		flashError(w, r, h.renderer, redirectLogin, "This reset link is invalid or has expired")
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, "/reset-password/"+token) {
		return
	}

	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")
	if len(password) < 8 {
		flashError(w, r, h.renderer, "/reset-password/"+token, "Password must be at least 8 characters")
		return
	}
	if password != confirm {
		flashError(w, r, h.renderer, "/reset-password/"+token, "Passwords do not match")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		ID:           req.UserID,
		PasswordHash: hash,
		UpdatedAt:    time.Now(),
	}); err != nil {
		logAndInternalError(w, "failed to update password", "error", err)
		return
	}

	// A used link, and any other outstanding ones, must die with it.
	if err := h.queries.DeleteResetRequestsForUser(r.Context(), req.UserID); err != nil {
		h.logger.Error("failed to clear reset requests", "error", err, "user_id", req.UserID)
	}

	h.logger.Info("password reset completed", "user_id", req.UserID)
	flashSuccess(w, r, h.renderer, redirectLogin, "Password updated, you can sign in now")
}

// lookupResetRequest resolves a selector.verifier token into a live reset
// request. Any failure yields (zero, false) without detail, the caller
// shows one generic message for every invalid case.
func (h *AuthHandler) lookupResetRequest(r *http.Request, token string) (model.PasswordResetRequest, bool) {
	selector, verifier, found := strings.Cut(token, ".")
	if !found || selector == "" || verifier == "" {
		return model.PasswordResetRequest{}, false
	}

	req, err := h.queries.GetResetRequestBySelector(r.Context(), selector)
	if err != nil {
		return model.PasswordResetRequest{}, false
	}
	if req.IsExpired(time.Now()) {
		return model.PasswordResetRequest{}, false
	}
	if !auth.CheckResetVerifier(verifier, req.HashedToken) {
		return model.PasswordResetRequest{}, false
	}

	return req, true
}
