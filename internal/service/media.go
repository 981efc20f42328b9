// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/imaging"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/util"
)

// DefaultUploadDir is used when no upload directory is configured.
const DefaultUploadDir = "./data/uploads"

// ErrFileTooLarge is returned when an upload exceeds model.MaxUploadSize.
var ErrFileTooLarge = errors.New("file exceeds the upload size limit")

// MediaService handles uploaded file processing and storage.
type MediaService struct {
	db        *sql.DB
	processor *imaging.Processor
	uploadDir string
}

// NewMediaService creates a new media service.
func NewMediaService(db *sql.DB, uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		db:        db,
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates, processes, and stores a single uploaded image.
// The file content is sniffed: a declared Content-Type is never trusted.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, userID int64) (*model.Media, error) {
	if header.Size > model.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	filename := generateFilename(header.Filename)

	result, err := s.processor.ProcessImage(file, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	if _, err := s.processor.CreateThumbnail(result.FilePath, filename, model.Thumbnail); err != nil {
		// The original is stored and usable without a thumbnail
		slog.Warn("failed to create thumbnail", "error", err, "filename", filename)
	}

	media, err := store.New(s.db).CreateMedia(ctx, store.CreateMediaParams{
		Filename:     filename,
		OriginalName: filepath.Base(header.Filename),
		MimeType:     result.MimeType,
		Size:         result.Size,
		Path:         "/uploads/" + filename,
		Width:        sql.NullInt64{Int64: int64(result.Width), Valid: true},
		Height:       sql.NullInt64{Int64: int64(result.Height), Valid: true},
		UploadedBy:   sql.NullInt64{Int64: userID, Valid: true},
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// Clean up orphaned files when the record cannot be written
		_ = s.processor.DeleteMediaFiles(filename)
		return nil, fmt.Errorf("failed to create media record: %w", err)
	}

	return &media, nil
}

// Delete removes a media record and its files from disk.
func (s *MediaService) Delete(ctx context.Context, mediaID int64) error {
	queries := store.New(s.db)

	media, err := queries.GetMediaByID(ctx, mediaID)
	if err != nil {
		return err
	}

	if err := queries.DeleteMedia(ctx, mediaID); err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}

	if err := s.processor.DeleteMediaFiles(media.Filename); err != nil {
		// DB record is already gone; report the orphaned files
		slog.Warn("failed to delete media files", "error", err, "media_id", mediaID)
	}

	return nil
}

// ThumbnailPath returns the public path of a media item's thumbnail.
func (s *MediaService) ThumbnailPath(media *model.Media) string {
	return "/uploads/" + imaging.ThumbnailDir + "/" + media.Filename
}

// generateFilename builds a unique stored filename from the client
// filename: millisecond timestamp, a short random suffix, and the
// slugified original stem. The extension is preserved lowercased.
func generateFilename(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	slug := util.Slugify(stem)
	if slug == "" {
		slug = "image"
	}
	if len(slug) > 64 {
		slug = slug[:64]
	}

	shortID := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("%d-%s-%s%s", time.Now().UnixMilli(), shortID, slug, ext)
}
