// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package policy decides whether a user may act on a piece of content.
// Decisions are pure functions of (actor, resource, action): no I/O, no
// ambient security context, and a denial is a normal outcome rather than
// an error.
package policy

import "github.com/Laure-Riglet/eco-friendly-api/internal/model"

// Action is a closed set of operations the backoffice can request on a
// resource. Anything outside this set is denied.
type Action string

// Supported actions.
const (
	ActionRead       Action = "read"
	ActionEdit       Action = "edit"
	ActionDeactivate Action = "deactivate"
	ActionReactivate Action = "reactivate"
)

// Decide returns true if actor may perform action on the given resource.
//
// A nil actor (anonymous request) is denied before any other check. Admins
// are granted every supported action. Unknown actions and resource types
// the evaluator does not recognize resolve to deny, never to a panic.
func Decide(actor *model.User, resource any, action Action) bool {
	if actor == nil {
		return false
	}

	switch res := resource.(type) {
	case *model.Article:
		return decideArticle(actor, res, action)
	case *model.Advice:
		return decideAdvice(actor, res, action)
	default:
		return false
	}
}

// decideArticle applies the article rule set. The author manages their own
// pieces except that only an admin can bring a deactivated article back.
func decideArticle(actor *model.User, article *model.Article, action Action) bool {
	owner := article.AuthorID == actor.ID

	switch action {
	case ActionRead:
		return owner || actor.IsAdmin()
	case ActionEdit:
		return (owner && article.Status != model.StatusDeactivated) || actor.IsAdmin()
	case ActionDeactivate:
		return owner || actor.IsAdmin()
	case ActionReactivate:
		return actor.IsAdmin()
	default:
		return false
	}
}

// decideAdvice applies the advice rule set. It mirrors the article rules
// with the contributor in place of the author, but is kept separate: the
// two tables are allowed to diverge.
func decideAdvice(actor *model.User, advice *model.Advice, action Action) bool {
	owner := advice.ContributorID == actor.ID

	switch action {
	case ActionRead:
		return owner || actor.IsAdmin()
	case ActionEdit:
		return (owner && advice.Status != model.StatusDeactivated) || actor.IsAdmin()
	case ActionDeactivate:
		return owner || actor.IsAdmin()
	case ActionReactivate:
		return actor.IsAdmin()
	default:
		return false
	}
}
