// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package policy

import (
	"testing"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
)

var (
	admin  = &model.User{ID: 1, Roles: []string{model.RoleAdmin}}
	author = &model.User{ID: 2, Roles: []string{model.RoleUser}}
	other  = &model.User{ID: 3, Roles: []string{model.RoleUser}}
)

func article(status model.Status) *model.Article {
	return &model.Article{ID: 10, AuthorID: author.ID, Status: status}
}

func advice(status model.Status) *model.Advice {
	return &model.Advice{ID: 20, ContributorID: author.ID, Status: status}
}

var allActions = []Action{ActionRead, ActionEdit, ActionDeactivate, ActionReactivate}

func TestAnonymousAlwaysDenied(t *testing.T) {
	for _, action := range allActions {
		if Decide(nil, article(model.StatusActive), action) {
			t.Errorf("Decide(nil, article, %q) = true, want false", action)
		}
		if Decide(nil, advice(model.StatusActive), action) {
			t.Errorf("Decide(nil, advice, %q) = true, want false", action)
		}
	}
}

func TestAdminGrantedEverything(t *testing.T) {
	for _, status := range []model.Status{model.StatusDraft, model.StatusActive, model.StatusDeactivated} {
		for _, action := range allActions {
			if !Decide(admin, article(status), action) {
				t.Errorf("Decide(admin, article{status=%d}, %q) = false, want true", status, action)
			}
			if !Decide(admin, advice(status), action) {
				t.Errorf("Decide(admin, advice{status=%d}, %q) = false, want true", status, action)
			}
		}
	}
}

func TestArticleOwnerRules(t *testing.T) {
	tests := []struct {
		name   string
		actor  *model.User
		status model.Status
		action Action
		want   bool
	}{
		{"owner reads own draft", author, model.StatusDraft, ActionRead, true},
		{"owner reads own deactivated", author, model.StatusDeactivated, ActionRead, true},
		{"stranger cannot read", other, model.StatusActive, ActionRead, false},
		{"owner edits active", author, model.StatusActive, ActionEdit, true},
		{"owner edits draft", author, model.StatusDraft, ActionEdit, true},
		{"owner cannot edit deactivated", author, model.StatusDeactivated, ActionEdit, false},
		{"stranger cannot edit", other, model.StatusActive, ActionEdit, false},
		{"owner deactivates own", author, model.StatusActive, ActionDeactivate, true},
		{"owner deactivates even when already deactivated", author, model.StatusDeactivated, ActionDeactivate, true},
		{"stranger cannot deactivate", other, model.StatusActive, ActionDeactivate, false},
		{"owner cannot self-reactivate", author, model.StatusDeactivated, ActionReactivate, false},
		{"stranger cannot reactivate", other, model.StatusDeactivated, ActionReactivate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.actor, article(tt.status), tt.action); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdviceContributorRules(t *testing.T) {
	tests := []struct {
		name   string
		actor  *model.User
		status model.Status
		action Action
		want   bool
	}{
		{"contributor reads own", author, model.StatusActive, ActionRead, true},
		{"contributor edits active", author, model.StatusActive, ActionEdit, true},
		{"contributor cannot edit deactivated", author, model.StatusDeactivated, ActionEdit, false},
		{"contributor deactivates own", author, model.StatusActive, ActionDeactivate, true},
		{"contributor cannot self-reactivate", author, model.StatusDeactivated, ActionReactivate, false},
		{"stranger denied", other, model.StatusActive, ActionEdit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.actor, advice(tt.status), tt.action); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnknownActionDenied(t *testing.T) {
	if Decide(admin, article(model.StatusActive), Action("publish")) {
		t.Error("Decide(admin, article, unknown action) = true, want false")
	}
	if Decide(author, advice(model.StatusActive), Action("")) {
		t.Error("Decide(author, advice, empty action) = true, want false")
	}
}

func TestUnknownResourceDenied(t *testing.T) {
	if Decide(admin, &model.Category{ID: 1}, ActionRead) {
		t.Error("Decide(admin, category, read) = true, want false for unsupported resource type")
	}
	if Decide(admin, nil, ActionRead) {
		t.Error("Decide(admin, nil, read) = true, want false")
	}
	if Decide(admin, "not a resource", ActionRead) {
		t.Error("Decide(admin, string, read) = true, want false")
	}
}

// Deactivate stays permitted for the owner on a deactivated piece while
// edit is not; the asymmetry is load-bearing for the backoffice buttons.
func TestEditDeactivateAsymmetry(t *testing.T) {
	deactivated := article(model.StatusDeactivated)
	if Decide(author, deactivated, ActionEdit) {
		t.Error("owner may edit a deactivated article, want deny")
	}
	if !Decide(author, deactivated, ActionDeactivate) {
		t.Error("owner may not deactivate own article, want allow")
	}
}
