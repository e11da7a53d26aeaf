// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password-reset link stays usable.
const ResetTokenTTL = time.Hour

// Selector and verifier sizes in raw bytes before encoding. The selector
// fits the 20-character column of reset_password_request.
const (
	resetSelectorLen = 12
	resetVerifierLen = 32
)

// ResetToken is a freshly generated password-reset credential pair. The
// selector locates the stored request; only the hash of the verifier is
// persisted, so a leaked table cannot be replayed.
type ResetToken struct {
	Selector    string
	Verifier    string
	HashedToken string
}

// NewResetToken generates a selector/verifier pair for a reset request.
func NewResetToken() (ResetToken, error) {
	selector := make([]byte, resetSelectorLen)
	if _, err := rand.Read(selector); err != nil {
		return ResetToken{}, fmt.Errorf("generating selector: %w", err)
	}

	verifier := make([]byte, resetVerifierLen)
	if _, err := rand.Read(verifier); err != nil {
		return ResetToken{}, fmt.Errorf("generating verifier: %w", err)
	}

	v := base64.RawURLEncoding.EncodeToString(verifier)
	return ResetToken{
		Selector:    base64.RawURLEncoding.EncodeToString(selector),
		Verifier:    v,
		HashedToken: HashResetVerifier(v),
	}, nil
}

// HashResetVerifier returns the hex SHA-256 of a verifier as stored in
// the hashed_token column.
func HashResetVerifier(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return hex.EncodeToString(sum[:])
}

// CheckResetVerifier compares a presented verifier against the stored
// hash in constant time.
func CheckResetVerifier(verifier, hashedToken string) bool {
	computed := HashResetVerifier(verifier)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashedToken)) == 1
}
