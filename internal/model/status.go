// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain entities of the eco-friendly site:
// users, categories, articles, advices, quizzes and their invariants.
package model

// Status is the integer-coded publication state shared by articles,
// advices and quizzes.
type Status int

// Publication states. The numeric values are persisted as-is and must not
// be reordered.
const (
	StatusDraft       Status = 0
	StatusActive      Status = 1
	StatusDeactivated Status = 2
)

// Valid reports whether s is one of the known publication states.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusActive || s == StatusDeactivated
}

// String returns a human-readable label for the status.
func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusActive:
		return "active"
	case StatusDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}
