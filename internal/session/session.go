// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures server-side session management backed by the
// application database.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// Lifetime is how long an idle session stays valid.
const Lifetime = 24 * time.Hour

// New creates a session manager persisting to the sessions table of the
// given database. The store matches the configured SQL driver. Expired
// rows are cleaned by the scheduler, not by the stores' own goroutines,
// so cleanup shows up in the task logs.
func New(db *sql.DB, driver string, isDev bool) *scs.SessionManager {
	sm := scs.New()

	switch driver {
	case store.DriverMySQL:
		sm.Store = mysqlstore.NewWithCleanupInterval(db, 0)
	default:
		sm.Store = sqlite3store.NewWithCleanupInterval(db, 0)
	}

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
