// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: purging expired
// password-reset requests and cleaning out dead sessions.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
)

// Scheduler handles recurring maintenance tasks.
type Scheduler struct {
	db     *sql.DB
	driver string
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance. The driver decides the dialect of
// the session cleanup query.
func New(db *sql.DB, driver string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		driver: driver,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins running them.
func (s *Scheduler) Start() error {
	// Expired reset links are useless the moment they expire; purge
	// hourly so the table stays small.
	if _, err := s.cron.AddFunc("@hourly", func() {
		if err := s.purgeExpiredResetRequests(); err != nil {
			s.logger.Error("failed to purge reset requests", "error", err)
		}
	}); err != nil {
		return err
	}

	// Session rows outlive their expiry until someone deletes them; the
	// session stores run with their own cleanup disabled.
	if _, err := s.cron.AddFunc("@every 30m", func() {
		if err := s.purgeExpiredSessions(); err != nil {
			s.logger.Error("failed to purge sessions", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) purgeExpiredResetRequests() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := store.New(s.db).DeleteExpiredResetRequests(ctx, time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("purged expired reset requests", "count", n)
	}
	return nil
}

func (s *Scheduler) purgeExpiredSessions() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The sqlite session store keeps expiry as a julian day REAL; the
	// mysql store uses TIMESTAMP(6).
	query := `DELETE FROM sessions WHERE expiry < julianday('now')`
	if s.driver == store.DriverMySQL {
		query = `DELETE FROM sessions WHERE expiry < UTC_TIMESTAMP(6)`
	}

	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Info("purged expired sessions", "count", n)
	}
	return nil
}
