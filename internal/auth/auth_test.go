// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id prefix", hash)
	}

	ok, err := CheckPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("CheckPassword = false for correct password")
	}

	ok, err = CheckPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if ok {
		t.Error("CheckPassword = true for wrong password")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if _, err := CheckPassword("pw", "not-a-hash"); err == nil {
		t.Error("CheckPassword(malformed) = nil error, want error")
	}
	if _, err := CheckPassword("pw", "$bcrypt$a$b$c$d"); err == nil {
		t.Error("CheckPassword(wrong algorithm) = nil error, want error")
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("NeedsRehash = true for freshly created hash")
	}
	if !NeedsRehash("$argon2id$v=19$m=4096,t=3,p=1$c2FsdA$aGFzaA") {
		t.Error("NeedsRehash = false for outdated parameters")
	}
}

func TestNewResetToken(t *testing.T) {
	tok, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}

	if tok.Selector == "" || tok.Verifier == "" {
		t.Fatal("token has empty selector or verifier")
	}
	if len(tok.Selector) > 20 {
		t.Errorf("selector length = %d, must fit the 20-char column", len(tok.Selector))
	}
	if tok.HashedToken != HashResetVerifier(tok.Verifier) {
		t.Error("HashedToken does not match the verifier hash")
	}

	if !CheckResetVerifier(tok.Verifier, tok.HashedToken) {
		t.Error("CheckResetVerifier = false for matching pair")
	}
	if CheckResetVerifier("tampered", tok.HashedToken) {
		t.Error("CheckResetVerifier = true for tampered verifier")
	}

	// Two tokens never collide.
	other, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if other.Selector == tok.Selector {
		t.Error("two generated tokens share a selector")
	}
}
