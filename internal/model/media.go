// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Supported MIME types for uploads.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// MaxUploadSize is the upload size limit in bytes (5 MiB).
const MaxUploadSize = 5 << 20

// MaxUploadFiles limits how many files a single multi-upload may carry.
const MaxUploadFiles = 10

// ThumbnailConfig defines settings for the generated thumbnail variant.
type ThumbnailConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// Thumbnail is the default thumbnail configuration.
var Thumbnail = ThumbnailConfig{Width: 300, Height: 300, Quality: 80, Crop: true}

// Media represents an uploaded file.
type Media struct {
	ID           int64         `json:"id"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"original_name"`
	MimeType     string        `json:"mime_type"`
	Size         int64         `json:"size"`
	Path         string        `json:"path"`
	Width        sql.NullInt64 `json:"width"`
	Height       sql.NullInt64 `json:"height"`
	UploadedBy   sql.NullInt64 `json:"uploaded_by"`
	CreatedAt    time.Time     `json:"created_at"`
}

// SupportedImageTypes returns the MIME types accepted for upload.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// IsSupportedMimeType checks if a MIME type is accepted for upload.
func IsSupportedMimeType(mimeType string) bool {
	for _, t := range SupportedImageTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
