// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// PasswordResetRequest is an ephemeral credential-recovery record. The
// selector locates the row; the verifier is only ever stored hashed.
type PasswordResetRequest struct {
	ID          int64     `json:"-"`
	UserID      int64     `json:"-"`
	Selector    string    `json:"-"`
	HashedToken string    `json:"-"`
	RequestedAt time.Time `json:"-"`
	ExpiresAt   time.Time `json:"-"`
}

// IsExpired reports whether the request can no longer be used at the given
// instant.
func (r *PasswordResetRequest) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
