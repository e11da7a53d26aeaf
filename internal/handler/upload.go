// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Laure-Riglet/eco-friendly-api/internal/imaging"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
)

// parseUploadFormOrRedirect parses a multipart form carrying an optional
// picture and redirects with an error message on failure. Returns true
// if parsing succeeded.
func parseUploadFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	// Generous headroom above the picture limit for the text fields.
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes + (1 << 20)); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// storeUpload runs an uploaded picture through the processor and builds
// its public URL path. Returns the path and an empty message on success,
// or an empty path and a user-facing message on failure.
func storeUpload(p *imaging.Processor, file io.Reader, filename string) (string, string) {
	id := uuid.NewString()
	result, err := p.Process(file, id, filename)
	if err != nil {
		return "", "Unsupported or oversized picture"
	}
	if _, err := p.CreateAllVariants(result.FilePath, id, filename); err != nil {
		return "", "Could not resize the uploaded picture"
	}
	return "/uploads/originals/" + id + "/" + filepath.Base(filename), ""
}
