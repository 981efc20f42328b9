// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/util"
)

// ListServicesGrouped returns categories with their active services
// nested, ordered for the public site.
func (h *Handler) ListServicesGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.queries.ListCategoriesWithServices(r.Context())
	if err != nil {
		slog.Error("listing grouped services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, groups, nil)
}

// ListServicesFlat returns every service row, active or not, for the
// admin editor.
func (h *Handler) ListServicesFlat(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		slog.Error("listing services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, services, nil)
}

// ListActiveServices returns only active services in display order.
func (h *Handler) ListActiveServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListActiveServices(r.Context())
	if err != nil {
		slog.Error("listing active services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, services, nil)
}

// GetServicesSection returns the heading block above the services grid.
func (h *Handler) GetServicesSection(w http.ResponseWriter, r *http.Request) {
	getSingleton(w, "services section", func() (model.ServicesSection, error) {
		return h.queries.GetServicesSection(r.Context())
	})
}

// UpdateServicesSectionRequest is the section heading payload.
type UpdateServicesSectionRequest struct {
	SectionLabel   string `json:"section_label"`
	Title          string `json:"title"`
	TitleHighlight string `json:"title_highlight"`
	Description    string `json:"description"`
}

// UpdateServicesSection replaces the section heading singleton.
func (h *Handler) UpdateServicesSection(w http.ResponseWriter, r *http.Request) {
	var req UpdateServicesSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	err := h.queries.UpsertServicesSection(r.Context(), store.UpsertServicesSectionParams{
		SectionLabel:   req.SectionLabel,
		Title:          req.Title,
		TitleHighlight: req.TitleHighlight,
		Description:    h.sanitizer.Sanitize(req.Description),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		slog.Error("saving services section", "error", err)
		WriteInternalError(w, "Failed to save services section")
		return
	}

	h.recordContentSave(r, "services section")
	h.GetServicesSection(w, r)
}

// GetService returns a single service by id.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", func(id int64) (model.Service, error) {
		return h.queries.GetServiceByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, svc, nil)
}

// ServiceRequest is the create/update payload for a single service.
type ServiceRequest struct {
	CategoryID      *int64 `json:"category_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	FullDescription string `json:"full_description"`
	Image           string `json:"image"`
	Link            string `json:"link"`
	IsComingSoon    bool   `json:"is_coming_soon"`
	DisplayOrder    int64  `json:"display_order"`
	IsActive        bool   `json:"is_active"`
}

func (req *ServiceRequest) validate() map[string]string {
	if req.Title == "" {
		return map[string]string{"title": "Title is required"}
	}
	return nil
}

// CreateService inserts a new service.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	now := time.Now()
	svc, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		CategoryID:      util.NullInt64FromPtr(req.CategoryID),
		Title:           req.Title,
		Description:     h.sanitizer.Sanitize(req.Description),
		FullDescription: h.sanitizer.Sanitize(req.FullDescription),
		Image:           req.Image,
		Link:            req.Link,
		IsComingSoon:    req.IsComingSoon,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        req.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		slog.Error("creating service", "error", err)
		WriteInternalError(w, "Failed to create service")
		return
	}

	h.recordServiceChange(r, model.ActionServiceCreate, "Created service "+svc.Title)
	WriteCreated(w, svc)
}

// UpdateService replaces all fields of an existing service.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid service ID", nil)
		return
	}

	var req ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	err = h.queries.UpdateService(r.Context(), store.UpdateServiceParams{
		ID:              id,
		CategoryID:      util.NullInt64FromPtr(req.CategoryID),
		Title:           req.Title,
		Description:     h.sanitizer.Sanitize(req.Description),
		FullDescription: h.sanitizer.Sanitize(req.FullDescription),
		Image:           req.Image,
		Link:            req.Link,
		IsComingSoon:    req.IsComingSoon,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        req.IsActive,
		UpdatedAt:       time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		slog.Error("updating service", "id", id, "error", err)
		WriteInternalError(w, "Failed to update service")
		return
	}

	svc, err := h.queries.GetServiceByID(r.Context(), id)
	if err != nil {
		WriteInternalError(w, "Failed to load updated service")
		return
	}

	h.recordServiceChange(r, model.ActionServiceUpdate, "Updated service "+svc.Title)
	WriteSuccess(w, svc, nil)
}

// DeleteService removes a service.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", func(id int64) (model.Service, error) {
		return h.queries.GetServiceByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteService(r.Context(), svc.ID); err != nil {
		slog.Error("deleting service", "id", svc.ID, "error", err)
		WriteInternalError(w, "Failed to delete service")
		return
	}

	h.recordServiceChange(r, model.ActionServiceDelete, "Deleted service "+svc.Title)
	WriteSuccess(w, map[string]string{"message": "Service deleted"}, nil)
}

// ReorderRequest carries the new display order for a set of services.
type ReorderRequest struct {
	Items []store.ReorderItem `json:"items"`
}

// ReorderServices applies new display orders atomically.
func (h *Handler) ReorderServices(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		WriteValidationError(w, map[string]string{"items": "At least one item is required"})
		return
	}

	if err := store.ReorderServices(r.Context(), h.db, req.Items); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		slog.Error("reordering services", "error", err)
		WriteInternalError(w, "Failed to reorder services")
		return
	}

	h.recordServiceChange(r, model.ActionServiceReorder, "Reordered services")
	WriteSuccess(w, map[string]string{"message": "Services reordered"}, nil)
}

// ReplaceCategoryRequest is one category in the bulk editor payload.
type ReplaceCategoryRequest struct {
	ID       int64                   `json:"id"`
	Title    string                  `json:"title"`
	Icon     string                  `json:"icon"`
	Color    string                  `json:"color"`
	BgColor  string                  `json:"bg_color"`
	Services []ReplaceServiceRequest `json:"services"`
}

// ReplaceServiceRequest is one service in the bulk editor payload.
type ReplaceServiceRequest struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	FullDescription string `json:"full_description"`
	Image           string `json:"image"`
	Link            string `json:"link"`
	IsComingSoon    bool   `json:"is_coming_soon"`
	IsActive        bool   `json:"is_active"`
}

// ReplaceAllServices reconciles the whole category/service tree against
// the submitted state in one transaction. Existing ids survive; rows
// absent from the payload are deleted.
func (h *Handler) ReplaceAllServices(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []ReplaceCategoryRequest `json:"categories"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	input := make([]store.ReplaceCategoryInput, 0, len(req.Categories))
	for _, c := range req.Categories {
		if c.Title == "" {
			WriteValidationError(w, map[string]string{"categories": "Every category needs a title"})
			return
		}
		cat := store.ReplaceCategoryInput{
			ID:      c.ID,
			Title:   c.Title,
			Icon:    c.Icon,
			Color:   c.Color,
			BgColor: c.BgColor,
		}
		for _, s := range c.Services {
			if s.Title == "" {
				WriteValidationError(w, map[string]string{"services": "Every service needs a title"})
				return
			}
			cat.Services = append(cat.Services, store.ReplaceServiceInput{
				ID:              s.ID,
				Title:           s.Title,
				Description:     h.sanitizer.Sanitize(s.Description),
				FullDescription: h.sanitizer.Sanitize(s.FullDescription),
				Image:           s.Image,
				Link:            s.Link,
				IsComingSoon:    s.IsComingSoon,
				IsActive:        s.IsActive,
			})
		}
		input = append(input, cat)
	}

	if err := store.ReplaceAllServices(r.Context(), h.db, input); err != nil {
		slog.Error("replacing services", "error", err)
		WriteInternalError(w, "Failed to save services")
		return
	}

	groups, err := h.queries.ListCategoriesWithServices(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load saved services")
		return
	}

	h.recordServiceChange(r, model.ActionServiceReplace, "Replaced the full services list")
	WriteSuccess(w, groups, nil)
}

func (h *Handler) recordServiceChange(r *http.Request, action, description string) {
	h.activity.Record(r.Context(), middleware.GetUserIDPtr(r), action, description,
		clientIP(r), r.UserAgent())
}
