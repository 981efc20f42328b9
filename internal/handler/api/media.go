// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/imaging"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/service"
)

// maxMultipartMemory bounds how much of a multipart body stays in RAM.
const maxMultipartMemory = 8 << 20

// UploadedFile is the response shape for a stored upload.
type UploadedFile struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	Width        int64  `json:"width,omitempty"`
	Height       int64  `json:"height,omitempty"`
}

func (h *Handler) uploadedFile(m *model.Media) UploadedFile {
	f := UploadedFile{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		URL:          m.Path,
		ThumbnailURL: h.media.ThumbnailPath(m),
		MimeType:     m.MimeType,
		Size:         m.Size,
	}
	if m.Width.Valid {
		f.Width = m.Width.Int64
	}
	if m.Height.Valid {
		f.Height = m.Height.Int64
	}
	return f
}

// uploadError maps an upload failure to a client-facing response.
func uploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		WriteError(w, http.StatusBadRequest, "unsupported_type", "File is not a supported image type", nil)
	case errors.Is(err, service.ErrFileTooLarge):
		WriteError(w, http.StatusBadRequest, "too_large", "File exceeds the 5 MiB upload limit", nil)
	default:
		slog.Error("storing upload", "error", err)
		WriteInternalError(w, "Failed to store upload")
	}
}

// UploadSingle accepts one image in the multipart field "file".
func (h *Handler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart request", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, `Multipart field "file" is required`, nil)
		return
	}
	defer func() { _ = file.Close() }()

	media, err := h.media.Upload(r.Context(), file, header, middleware.GetUserID(r))
	if err != nil {
		uploadError(w, err)
		return
	}

	h.recordMediaChange(r, model.ActionUpload, "Uploaded "+media.OriginalName)
	WriteCreated(w, h.uploadedFile(media))
}

// MultiUploadResult reports per-file outcomes for a batch upload.
type MultiUploadResult struct {
	Uploaded []UploadedFile    `json:"uploaded"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// UploadMultiple accepts up to ten images in the multipart field
// "files". Files are processed independently; one bad file does not
// fail the batch.
func (h *Handler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart request", nil)
		return
	}

	form := r.MultipartForm
	if form == nil || len(form.File["files"]) == 0 {
		WriteBadRequest(w, `Multipart field "files" is required`, nil)
		return
	}
	headers := form.File["files"]
	if len(headers) > model.MaxUploadFiles {
		WriteBadRequest(w, "Too many files in one request", map[string]string{
			"files": "At most 10 files per request",
		})
		return
	}

	result := MultiUploadResult{Uploaded: []UploadedFile{}}
	userID := middleware.GetUserID(r)
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			if result.Failed == nil {
				result.Failed = map[string]string{}
			}
			result.Failed[header.Filename] = "could not read file"
			continue
		}

		media, err := h.media.Upload(r.Context(), file, header, userID)
		_ = file.Close()
		if err != nil {
			if result.Failed == nil {
				result.Failed = map[string]string{}
			}
			result.Failed[header.Filename] = err.Error()
			continue
		}
		result.Uploaded = append(result.Uploaded, h.uploadedFile(media))
	}

	if len(result.Uploaded) == 0 {
		WriteError(w, http.StatusBadRequest, "upload_failed", "No file could be stored", result.Failed)
		return
	}

	h.recordMediaChange(r, model.ActionUpload, "Uploaded a batch of files")
	WriteCreated(w, result)
}

// ListMedia returns the media library, newest first, paginated.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationParams(r)
	offset := int64((page - 1) * perPage)

	total, err := h.queries.CountMedia(r.Context())
	if err != nil {
		slog.Error("counting media", "error", err)
		WriteInternalError(w, "Failed to list media")
		return
	}
	rows, err := h.queries.ListMedia(r.Context(), int64(perPage), offset)
	if err != nil {
		slog.Error("listing media", "error", err)
		WriteInternalError(w, "Failed to list media")
		return
	}

	WriteSuccess(w, rows, pageMeta(total, page, perPage))
}

// DeleteMedia removes a media row together with its files on disk.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid media ID", nil)
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Media not found")
			return
		}
		slog.Error("deleting media", "id", id, "error", err)
		WriteInternalError(w, "Failed to delete media")
		return
	}

	h.recordMediaChange(r, model.ActionMediaDelete, "Deleted an uploaded file")
	WriteSuccess(w, map[string]string{"message": "Media deleted"}, nil)
}

func (h *Handler) recordMediaChange(r *http.Request, action, description string) {
	h.activity.Record(r.Context(), middleware.GetUserIDPtr(r), action, description,
		clientIP(r), r.UserAgent())
}
