// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := testJPEG(t, 100, 60)
	res, err := p.Process(bytes.NewReader(data), "pic-1", "photo.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Width != 100 || res.Height != 60 {
		t.Errorf("dimensions = %dx%d, want 100x60", res.Width, res.Height)
	}
	if res.MimeType != "image/jpeg" {
		t.Errorf("MimeType = %q", res.MimeType)
	}
	if _, err := os.Stat(res.FilePath); err != nil {
		t.Errorf("original not saved: %v", err)
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.Process(bytes.NewReader([]byte("not an image")), "pic-2", "x.jpg"); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestCreateVariantCrops(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := testJPEG(t, 2000, 1000)
	res, err := p.Process(bytes.NewReader(data), "pic-3", "wide.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	v, err := p.CreateVariant(res.FilePath, "pic-3", "wide.jpg", "thumb", Variants["thumb"])
	if err != nil {
		t.Fatalf("CreateVariant: %v", err)
	}
	if v == nil {
		t.Fatal("expected a variant for an oversized source")
	}
	if v.Width != 320 || v.Height != 180 {
		t.Errorf("variant = %dx%d, want 320x180", v.Width, v.Height)
	}
}

func TestDeleteFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := testJPEG(t, 1500, 900)
	res, err := p.Process(bytes.NewReader(data), "pic-4", "pic.jpg")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, err := p.CreateAllVariants(res.FilePath, "pic-4", "pic.jpg"); err != nil {
		t.Fatalf("CreateAllVariants: %v", err)
	}

	if err := p.DeleteFiles("pic-4"); err != nil {
		t.Fatalf("DeleteFiles: %v", err)
	}
	if _, err := os.Stat(res.FilePath); !os.IsNotExist(err) {
		t.Error("original should be removed")
	}
}

func TestSaveFileRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.saveFile("../outside", "x.jpg", []byte("data")); err == nil {
		t.Error("expected traversal rejection")
	}
	if _, err := p.saveFile("ok", "..", []byte("data")); err == nil {
		t.Error("expected filename rejection")
	}
}

func TestDetectFormatFromPNG(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	if got := detectFormat(buf.Bytes()); got != "png" {
		t.Errorf("detectFormat = %q, want png", got)
	}
}
