// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

// CreateResetRequestParams holds a new password recovery record. Only the
// hashed verifier is ever stored.
type CreateResetRequestParams struct {
	UserID      int64
	Selector    string
	HashedToken string
	RequestedAt time.Time
	ExpiresAt   time.Time
}

// CreateResetRequest replaces any pending request for the user with a new
// one, so at most one recovery link is live per account.
func (q *Queries) CreateResetRequest(ctx context.Context, arg CreateResetRequestParams) (model.PasswordResetRequest, error) {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM reset_password_request WHERE user_id = ?`, arg.UserID); err != nil {
		return model.PasswordResetRequest{}, err
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO reset_password_request (user_id, selector, hashed_token, requested_at, expires_at)
		VALUES (?, ?, ?, ?, ?)`,
		arg.UserID, arg.Selector, arg.HashedToken, arg.RequestedAt, arg.ExpiresAt)
	if err != nil {
		return model.PasswordResetRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PasswordResetRequest{}, err
	}

	return model.PasswordResetRequest{
		ID:          id,
		UserID:      arg.UserID,
		Selector:    arg.Selector,
		HashedToken: arg.HashedToken,
		RequestedAt: arg.RequestedAt,
		ExpiresAt:   arg.ExpiresAt,
	}, nil
}

// GetResetRequestBySelector locates a recovery record by its public
// selector half.
func (q *Queries) GetResetRequestBySelector(ctx context.Context, selector string) (model.PasswordResetRequest, error) {
	var r model.PasswordResetRequest
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, selector, hashed_token, requested_at, expires_at
		FROM reset_password_request WHERE selector = ?`, selector).
		Scan(&r.ID, &r.UserID, &r.Selector, &r.HashedToken, &r.RequestedAt, &r.ExpiresAt)
	return r, err
}

// DeleteResetRequestsForUser removes all recovery records of one account,
// used after a successful reset.
func (q *Queries) DeleteResetRequestsForUser(ctx context.Context, userID int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM reset_password_request WHERE user_id = ?`, userID)
	return err
}

// DeleteExpiredResetRequests purges stale recovery records and returns how
// many were removed. Run periodically by the scheduler.
func (q *Queries) DeleteExpiredResetRequests(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM reset_password_request WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
