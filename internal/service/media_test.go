// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// memFile adapts a byte slice to the multipart.File interface.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadFile(t *testing.T, data []byte, filename string) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	return memFile{bytes.NewReader(data)}, &multipart.FileHeader{
		Filename: filename,
		Size:     int64(len(data)),
	}
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestMediaServiceUpload(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db)
	uploadDir := t.TempDir()
	svc := NewMediaService(db, uploadDir)
	ctx := context.Background()

	file, header := uploadFile(t, pngBytes(t, 500, 400), "Team Photo.PNG")

	media, err := svc.Upload(ctx, file, header, user.ID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if media.MimeType != model.MimeTypePNG {
		t.Errorf("mime type = %q, want %q", media.MimeType, model.MimeTypePNG)
	}
	if media.OriginalName != "Team Photo.PNG" {
		t.Errorf("original name = %q", media.OriginalName)
	}
	if !media.Width.Valid || media.Width.Int64 != 500 {
		t.Errorf("width = %v, want 500", media.Width)
	}
	if !media.Height.Valid || media.Height.Int64 != 400 {
		t.Errorf("height = %v, want 400", media.Height)
	}
	if !media.UploadedBy.Valid || media.UploadedBy.Int64 != user.ID {
		t.Error("uploader not recorded")
	}
	if !strings.HasPrefix(media.Path, "/uploads/") {
		t.Errorf("path = %q, want /uploads/ prefix", media.Path)
	}

	// Stored filename is generated, slugified, and keeps the extension
	pattern := regexp.MustCompile(`^\d+-[0-9a-f]+-team-photo\.png$`)
	if !pattern.MatchString(media.Filename) {
		t.Errorf("filename = %q, want generated name", media.Filename)
	}

	if _, err := os.Stat(filepath.Join(uploadDir, media.Filename)); err != nil {
		t.Errorf("original not on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(uploadDir, "thumbnails", media.Filename)); err != nil {
		t.Errorf("thumbnail not on disk: %v", err)
	}
}

func TestMediaServiceUploadRejectsOversize(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db)
	svc := NewMediaService(db, t.TempDir())

	file, header := uploadFile(t, pngBytes(t, 8, 8), "tiny.png")
	header.Size = model.MaxUploadSize + 1

	if _, err := svc.Upload(context.Background(), file, header, user.ID); err == nil {
		t.Error("expected error for oversize upload")
	}
}

func TestMediaServiceUploadRejectsNonImage(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db)
	svc := NewMediaService(db, t.TempDir())

	// Image extension but plain text content
	file, header := uploadFile(t, []byte("#!/bin/sh\nrm -rf /\n"), "evil.png")

	if _, err := svc.Upload(context.Background(), file, header, user.ID); err == nil {
		t.Error("expected error for content-type mismatch")
	}

	count, err := store.New(db).CountMedia(context.Background())
	if err != nil {
		t.Fatalf("count media: %v", err)
	}
	if count != 0 {
		t.Errorf("media rows = %d, want 0 after rejected upload", count)
	}
}

func TestMediaServiceDelete(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db)
	uploadDir := t.TempDir()
	svc := NewMediaService(db, uploadDir)
	ctx := context.Background()

	file, header := uploadFile(t, pngBytes(t, 400, 400), "gone.png")
	media, err := svc.Upload(ctx, file, header, user.ID)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, media.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := store.New(db).GetMediaByID(ctx, media.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("get after delete err = %v, want ErrNoRows", err)
	}
	if _, err := os.Stat(filepath.Join(uploadDir, media.Filename)); !os.IsNotExist(err) {
		t.Error("original still on disk after delete")
	}

	if err := svc.Delete(ctx, media.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second delete err = %v, want ErrNoRows", err)
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		original string
		wantExt  string
		wantStem string
	}{
		{"Hello World.JPG", ".jpg", "hello-world"},
		{"../sneaky/../path.png", ".png", "path"},
		{"классная картинка.webp", ".webp", "klassnaia-kartinka"},
		{"???.gif", ".gif", "image"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			got := generateFilename(tt.original)
			if !strings.HasSuffix(got, tt.wantStem+tt.wantExt) {
				t.Errorf("generateFilename(%q) = %q, want suffix %q", tt.original, got, tt.wantStem+tt.wantExt)
			}
			if strings.Contains(got, "/") || strings.Contains(got, "..") {
				t.Errorf("generateFilename(%q) = %q contains path separators", tt.original, got)
			}
		})
	}
}
