// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/auth"
	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/internal/util"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminNickname = "Administrator"
)

// defaultAvatars are the selectable profile pictures shipped with a fresh
// install.
var defaultAvatars = []struct {
	name    string
	picture string
}{
	{"Leaf", "/uploads/avatars/leaf.png"},
	{"Sprout", "/uploads/avatars/sprout.png"},
	{"Droplet", "/uploads/avatars/droplet.png"},
	{"Sun", "/uploads/avatars/sun.png"},
}

// Seed creates initial data in the database: the default admin account and
// the stock avatar set. Safe to run repeatedly.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)
	now := time.Now()

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	code, err := util.GenerateCode(model.UserCodeLength)
	if err != nil {
		return err
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Roles:        []string{model.RoleAdmin, model.RoleUser},
		Nickname:     DefaultAdminNickname,
		Code:         code,
		IsActive:     true,
		IsVerified:   true,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	for _, a := range defaultAvatars {
		_, err := db.ExecContext(ctx, `
			INSERT INTO avatar (name, picture, is_active, created_at)
			VALUES (?, ?, 1, ?)`, a.name, a.picture, now)
		if err != nil {
			return fmt.Errorf("seeding avatar %q: %w", a.name, err)
		}
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}
