// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/Laure-Riglet/eco-friendly-api/internal/model"
	"github.com/Laure-Riglet/eco-friendly-api/web"
)

func templatesSub() (fs.FS, error) {
	return fs.Sub(web.Templates, "templates")
}

func TestNewParsesEmbeddedTemplates(t *testing.T) {
	templatesFS, err := templatesSub()
	if err != nil {
		t.Fatalf("templates FS: %v", err)
	}

	r, err := New(Config{TemplatesFS: templatesFS, IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{
		"auth/login",
		"backoffice/dashboard",
		"backoffice/articles_list",
	} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestMarkdownSanitizes(t *testing.T) {
	templatesFS, err := templatesSub()
	if err != nil {
		t.Fatalf("templates FS: %v", err)
	}
	r, err := New(Config{TemplatesFS: templatesFS})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := string(r.Markdown("# Hello\n\n<script>alert(1)</script>*world*"))
	if !strings.Contains(out, "<h1>") {
		t.Errorf("markdown heading not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status model.Status
		want   string
	}{
		{model.StatusDraft, "Draft"},
		{model.StatusActive, "Active"},
		{model.StatusDeactivated, "Deactivated"},
		{model.Status(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.status); got != tt.want {
			t.Errorf("statusLabel(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
