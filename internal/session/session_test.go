// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"net/http"
	"os"
	"testing"

	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

func TestNew(t *testing.T) {
	f, err := os.CreateTemp("", "eco-session-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	defer os.Remove(dbPath)

	db, err := store.NewDB(store.DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	sm := New(db, store.DriverSQLite, true)
	if sm.Lifetime != Lifetime {
		t.Errorf("Lifetime = %v, want %v", sm.Lifetime, Lifetime)
	}
	if sm.Cookie.Secure {
		t.Error("dev sessions should not force secure cookies")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", sm.Cookie.SameSite)
	}

	prod := New(db, store.DriverSQLite, false)
	if !prod.Cookie.Secure {
		t.Error("production sessions must use secure cookies")
	}
}
