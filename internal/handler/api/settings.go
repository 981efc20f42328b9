// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// ListSettings returns every site setting, optionally filtered by
// ?category=.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	var (
		settings []model.SiteSetting
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		settings, err = h.queries.ListSettingsByCategory(r.Context(), category)
	} else {
		settings, err = h.queries.ListSettings(r.Context())
	}
	if err != nil {
		slog.Error("listing settings", "error", err)
		WriteInternalError(w, "Failed to list settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// SettingRequest is a single setting in a write payload.
type SettingRequest struct {
	SettingKey   string `json:"setting_key"`
	SettingValue string `json:"setting_value"`
	SettingType  string `json:"setting_type"`
	Category     string `json:"category"`
}

// BulkUpdateSettings upserts a batch of settings in one transaction.
func (h *Handler) BulkUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Settings []SettingRequest `json:"settings"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Settings) == 0 {
		WriteValidationError(w, map[string]string{"settings": "At least one setting is required"})
		return
	}

	now := time.Now()
	params := make([]store.UpsertSettingParams, 0, len(req.Settings))
	for _, s := range req.Settings {
		key := strings.TrimSpace(s.SettingKey)
		if key == "" {
			WriteValidationError(w, map[string]string{"setting_key": "Every setting needs a key"})
			return
		}
		params = append(params, store.UpsertSettingParams{
			SettingKey:   key,
			SettingValue: s.SettingValue,
			SettingType:  s.SettingType,
			Category:     s.Category,
			UpdatedAt:    now,
		})
	}

	if err := store.BulkUpsertSettings(r.Context(), h.db, params); err != nil {
		slog.Error("bulk saving settings", "error", err)
		WriteInternalError(w, "Failed to save settings")
		return
	}

	h.recordSettingsChange(r, model.ActionSettingUpdate, "Updated site settings")
	h.ListSettings(w, r)
}

// GetSetting returns one setting by key.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	setting, err := h.queries.GetSettingByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Setting not found")
			return
		}
		slog.Error("loading setting", "key", key, "error", err)
		WriteInternalError(w, "Failed to load setting")
		return
	}
	WriteSuccess(w, setting, nil)
}

// UpdateSetting upserts one setting by key.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req SettingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.queries.UpsertSetting(r.Context(), store.UpsertSettingParams{
		SettingKey:   key,
		SettingValue: req.SettingValue,
		SettingType:  req.SettingType,
		Category:     req.Category,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		slog.Error("saving setting", "key", key, "error", err)
		WriteInternalError(w, "Failed to save setting")
		return
	}

	h.recordSettingsChange(r, model.ActionSettingUpdate, "Updated setting "+key)
	h.GetSetting(w, r)
}

// DeleteSetting removes a setting by key.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.queries.DeleteSetting(r.Context(), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Setting not found")
			return
		}
		slog.Error("deleting setting", "key", key, "error", err)
		WriteInternalError(w, "Failed to delete setting")
		return
	}

	h.recordSettingsChange(r, model.ActionSettingDelete, "Deleted setting "+key)
	WriteSuccess(w, map[string]string{"message": "Setting deleted"}, nil)
}

func (h *Handler) recordSettingsChange(r *http.Request, action, description string) {
	h.activity.Record(r.Context(), middleware.GetUserIDPtr(r), action, description,
		clientIP(r), r.UserAgent())
}

// DashboardStats returns the admin dashboard counters and the most
// recent activity.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		slog.Error("building dashboard stats", "error", err)
		WriteInternalError(w, "Failed to build dashboard stats")
		return
	}
	WriteSuccess(w, stats, nil)
}

// ListActivityLogs returns the audit trail, newest first, paginated.
func (h *Handler) ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationParams(r)
	offset := int64((page - 1) * perPage)

	total, err := h.queries.CountActivityLogs(r.Context())
	if err != nil {
		slog.Error("counting activity logs", "error", err)
		WriteInternalError(w, "Failed to list activity logs")
		return
	}
	logs, err := h.queries.ListActivityLogs(r.Context(), int64(perPage), offset)
	if err != nil {
		slog.Error("listing activity logs", "error", err)
		WriteInternalError(w, "Failed to list activity logs")
		return
	}

	WriteSuccess(w, logs, pageMeta(total, page, perPage))
}

// ListSubmissions returns contact form submissions, newest first, with
// the unread count in the meta block.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	page, perPage := paginationParams(r)
	offset := int64((page - 1) * perPage)

	total, err := h.queries.CountSubmissions(r.Context())
	if err != nil {
		slog.Error("counting submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}
	unread, err := h.queries.CountUnreadSubmissions(r.Context())
	if err != nil {
		slog.Error("counting unread submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}
	rows, err := h.queries.ListSubmissions(r.Context(), int64(perPage), offset)
	if err != nil {
		slog.Error("listing submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}

	meta := pageMeta(total, page, perPage)
	meta.Unread = unread
	WriteSuccess(w, rows, meta)
}

// MarkSubmissionRead flags one submission as read.
func (h *Handler) MarkSubmissionRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid submission ID", nil)
		return
	}

	if err := h.queries.MarkSubmissionRead(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Submission not found")
			return
		}
		slog.Error("marking submission read", "id", id, "error", err)
		WriteInternalError(w, "Failed to update submission")
		return
	}

	submission, err := h.queries.GetSubmissionByID(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to load submission")
		return
	}
	WriteSuccess(w, submission, nil)
}

// CreateSubmissionRequest is the public contact form payload.
type CreateSubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateSubmission stores a contact form submission from the public
// site. The route is rate limited; fields are sanitized before storage.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if req.Message == "" {
		fieldErrors["message"] = "Message is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	submission, err := h.queries.CreateSubmission(r.Context(), store.CreateSubmissionParams{
		Name:      h.sanitizer.Sanitize(req.Name),
		Email:     req.Email,
		Phone:     h.sanitizer.Sanitize(strings.TrimSpace(req.Phone)),
		Subject:   h.sanitizer.Sanitize(strings.TrimSpace(req.Subject)),
		Message:   h.sanitizer.Sanitize(req.Message),
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("storing submission", "error", err)
		WriteInternalError(w, "Failed to store submission")
		return
	}

	WriteCreated(w, submission)
}
