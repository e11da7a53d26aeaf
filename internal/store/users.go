// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

const userColumns = `id, email, password, roles, firstname, lastname, nickname, code, avatar, is_active, is_verified, created_at, updated_at`

// scanUser scans one user row including the JSON-encoded roles column.
func scanUser(s scanner) (model.User, error) {
	var u model.User
	var roles string
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &roles, &u.Firstname, &u.Lastname,
		&u.Nickname, &u.Code, &u.Avatar, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if err := json.Unmarshal([]byte(roles), &u.Roles); err != nil {
		return model.User{}, fmt.Errorf("decoding roles for user %d: %w", u.ID, err)
	}
	return u, nil
}

func marshalRoles(roles []string) (string, error) {
	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}
	b, err := json.Marshal(roles)
	if err != nil {
		return "", fmt.Errorf("encoding roles: %w", err)
	}
	return string(b), nil
}

// CreateUserParams holds the fields required to create a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Roles        []string
	Firstname    string
	Lastname     string
	Nickname     string
	Code         string
	Avatar       string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
}

// CreateUser inserts a user and returns the stored record.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	roles, err := marshalRoles(arg.Roles)
	if err != nil {
		return model.User{}, err
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO user (email, password, roles, firstname, lastname, nickname, code, avatar, is_active, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Email, arg.PasswordHash, roles,
		nullIfEmpty(arg.Firstname), nullIfEmpty(arg.Lastname),
		arg.Nickname, arg.Code, arg.Avatar, arg.IsActive, arg.IsVerified, arg.CreatedAt)
	if err != nil {
		return model.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}

	return q.GetUserByID(ctx, id)
}

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail fetches a user by unique email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByCode fetches a user by its public member code.
func (q *Queries) GetUserByCode(ctx context.Context, code string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE code = ?`, code)
	return scanUser(row)
}

// ListUsersParams holds pagination bounds for ListUsers.
type ListUsersParams struct {
	Limit  int64
	Offset int64
}

// ListUsers returns users ordered by creation date, newest first.
func (q *Queries) ListUsers(ctx context.Context, arg ListUsersParams) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM user
		ORDER BY created_at DESC, id ASC
		LIMIT ? OFFSET ?`, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of user accounts.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user`).Scan(&n)
	return n, err
}

// CountAdmins counts active accounts carrying the admin role. Roles are
// stored as a JSON array of labels, so this matches on the serialized
// form.
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user WHERE roles LIKE ? AND is_active = 1`,
		`%"`+model.RoleAdmin+`"%`).Scan(&n)
	return n, err
}

// UpdateUserParams holds the mutable profile fields of a user.
type UpdateUserParams struct {
	ID        int64
	Email     string
	Roles     []string
	Firstname string
	Lastname  string
	Nickname  string
	Avatar    string
	UpdatedAt time.Time
}

// UpdateUser updates profile fields and touches updated_at.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	roles, err := marshalRoles(arg.Roles)
	if err != nil {
		return model.User{}, err
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE user
		SET email = ?, roles = ?, firstname = ?, lastname = ?, nickname = ?, avatar = ?, updated_at = ?
		WHERE id = ?`,
		arg.Email, roles, nullIfEmpty(arg.Firstname), nullIfEmpty(arg.Lastname),
		arg.Nickname, arg.Avatar, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// UpdateUserPasswordParams holds a password change.
type UpdateUserPasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

// UpdateUserPassword replaces the credential hash and touches updated_at.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE user SET password = ?, updated_at = ? WHERE id = ?`,
		arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

// SetUserActive flips the account active flag and touches updated_at.
func (q *Queries) SetUserActive(ctx context.Context, id int64, active bool, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE user SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, updatedAt, id)
	return err
}

// SetUserVerified marks the account email as verified and touches updated_at.
func (q *Queries) SetUserVerified(ctx context.Context, id int64, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE user SET is_verified = 1, updated_at = ? WHERE id = ?`,
		updatedAt, id)
	return err
}

// nullIfEmpty maps "" to NULL for nullable text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
