// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// multipartRequest builds a multipart upload request with one or more
// files under the given field name.
func multipartRequest(t *testing.T, path, field string, files map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := writer.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadSingle(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	req := withUser(multipartRequest(t, "/api/upload/single", "file",
		map[string][]byte{"Team Photo.PNG": pngBytes(t, 40, 30)}), user)
	w := executeHandler(t, h.UploadSingle, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	file := unmarshalData[UploadedFile](t, w)
	if !strings.HasPrefix(file.URL, "/uploads/") {
		t.Errorf("expected a public /uploads/ URL, got %q", file.URL)
	}
	if file.OriginalName != "Team Photo.PNG" {
		t.Errorf("expected the original name to survive, got %q", file.OriginalName)
	}
	if file.MimeType != "image/png" {
		t.Errorf("expected sniffed png mime type, got %q", file.MimeType)
	}
	if file.Width != 40 || file.Height != 30 {
		t.Errorf("expected recorded dimensions 40x30, got %dx%d", file.Width, file.Height)
	}
}

func TestUploadSingleMissingField(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	req := withUser(multipartRequest(t, "/api/upload/single", "wrong",
		map[string][]byte{"a.png": pngBytes(t, 4, 4)}), user)
	if w := executeHandler(t, h.UploadSingle, req); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without the file field, got %d", w.Code)
	}
}

func TestUploadSingleRejectsFakeImage(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	req := withUser(multipartRequest(t, "/api/upload/single", "file",
		map[string][]byte{"script.png": []byte("#!/bin/sh\nrm -rf /\n")}), user)
	w := executeHandler(t, h.UploadSingle, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-image bytes, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); detail.Code != "unsupported_type" {
		t.Errorf("expected unsupported_type, got %q", detail.Code)
	}
}

func TestUploadSingleRejectsOversize(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	huge := make([]byte, model.MaxUploadSize+1)
	req := withUser(multipartRequest(t, "/api/upload/single", "file",
		map[string][]byte{"huge.png": huge}), user)
	w := executeHandler(t, h.UploadSingle, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an oversize file, got %d", w.Code)
	}
	if detail := unmarshalError(t, w); detail.Code != "too_large" {
		t.Errorf("expected too_large, got %q", detail.Code)
	}
}

func TestUploadMultipleMixedResults(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	req := withUser(multipartRequest(t, "/api/upload/multiple", "files", map[string][]byte{
		"good.png": pngBytes(t, 8, 8),
		"bad.png":  []byte("not an image at all"),
	}), user)
	w := executeHandler(t, h.UploadMultiple, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 when at least one file stores, got %d: %s", w.Code, w.Body.String())
	}

	result := unmarshalData[MultiUploadResult](t, w)
	if len(result.Uploaded) != 1 {
		t.Errorf("expected 1 stored file, got %d", len(result.Uploaded))
	}
	if _, ok := result.Failed["bad.png"]; !ok {
		t.Errorf("expected bad.png in the failed map, got %+v", result.Failed)
	}
}

func TestUploadMultipleAllBad(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	req := withUser(multipartRequest(t, "/api/upload/multiple", "files",
		map[string][]byte{"junk.png": []byte("junk")}), user)
	if w := executeHandler(t, h.UploadMultiple, req); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when nothing stores, got %d", w.Code)
	}
}

func TestListMediaPagination(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "editor")

	for i := 0; i < 3; i++ {
		req := withUser(multipartRequest(t, "/api/upload/single", "file",
			map[string][]byte{fmt.Sprintf("img-%d.png", i): pngBytes(t, 6, 6)}), user)
		if w := executeHandler(t, h.UploadSingle, req); w.Code != http.StatusCreated {
			t.Fatalf("upload %d failed: %d", i, w.Code)
		}
	}

	req := withUser(newGetRequest(t, "/api/upload?page=1&per_page=2", nil), user)
	w := executeHandler(t, h.ListMedia, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	rows, meta := unmarshalList[store.MediaWithUploader](t, w)
	if len(rows) != 2 {
		t.Errorf("expected 2 rows on the first page, got %d", len(rows))
	}
	if meta == nil || meta.Total != 3 || meta.Pages != 2 {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestDeleteMedia(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "uploader", "admin")

	req := withUser(multipartRequest(t, "/api/upload/single", "file",
		map[string][]byte{"gone.png": pngBytes(t, 5, 5)}), user)
	w := executeHandler(t, h.UploadSingle, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", w.Code)
	}
	file := unmarshalData[UploadedFile](t, w)

	delReq := withUser(newDeleteRequest(t, "/api/upload/1", map[string]string{"id": fmt.Sprint(file.ID)}), user)
	if w := executeHandler(t, h.DeleteMedia, delReq); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	delReq = withUser(newDeleteRequest(t, "/api/upload/1", map[string]string{"id": fmt.Sprint(file.ID)}), user)
	if w := executeHandler(t, h.DeleteMedia, delReq); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on the second delete, got %d", w.Code)
	}
}
