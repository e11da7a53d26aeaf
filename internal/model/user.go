// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserCodeLength is the fixed length of the public member code shown in
// bylines instead of the email address.
const UserCodeLength = 5

// User represents a backoffice or contributor account.
type User struct {
	ID           int64          `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"` // Never expose in JSON
	Roles        []string       `json:"roles"`
	Firstname    sql.NullString `json:"firstname,omitempty"`
	Lastname     sql.NullString `json:"lastname,omitempty"`
	Nickname     string         `json:"nickname"`
	Code         string         `json:"code"`
	Avatar       string         `json:"avatar"`
	IsActive     bool           `json:"is_active"`
	IsVerified   bool           `json:"is_verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    sql.NullTime   `json:"updated_at,omitempty"`
}

// HasRole reports whether the user carries the given role label.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// DisplayName returns the nickname, which is the only name guaranteed to
// be set on every account.
func (u *User) DisplayName() string {
	return u.Nickname
}
