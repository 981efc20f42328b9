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
)

// getSingleton fetches a content singleton and writes it, mapping a
// missing row to 404.
func getSingleton[T any](w http.ResponseWriter, name string, fetch func() (T, error)) {
	content, err := fetch()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(name)+" content not found")
			return
		}
		slog.Error("loading content", "section", name, "error", err)
		WriteInternalError(w, "Failed to load "+name+" content")
		return
	}
	WriteSuccess(w, content, nil)
}

// GetHero returns the hero section.
func (h *Handler) GetHero(w http.ResponseWriter, r *http.Request) {
	getSingleton(w, "hero", func() (model.HeroContent, error) {
		return h.queries.GetHeroContent(r.Context())
	})
}

// GetAbout returns the about section.
func (h *Handler) GetAbout(w http.ResponseWriter, r *http.Request) {
	getSingleton(w, "about", func() (model.AboutContent, error) {
		return h.queries.GetAboutContent(r.Context())
	})
}

// GetContact returns the contact section.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	getSingleton(w, "contact", func() (model.ContactContent, error) {
		return h.queries.GetContactContent(r.Context())
	})
}

// GetFooter returns the footer section.
func (h *Handler) GetFooter(w http.ResponseWriter, r *http.Request) {
	getSingleton(w, "footer", func() (model.FooterContent, error) {
		return h.queries.GetFooterContent(r.Context())
	})
}

// AllContent aggregates every landing page section in one response for
// the public site's initial render.
type AllContent struct {
	Hero            *model.HeroContent     `json:"hero"`
	About           *model.AboutContent    `json:"about"`
	Contact         *model.ContactContent  `json:"contact"`
	Footer          *model.FooterContent   `json:"footer"`
	ServicesSection *model.ServicesSection `json:"services_section"`
}

// GetAllContent returns every content section in a single payload.
// Sections missing from an unseeded database come back as null rather
// than failing the whole aggregate.
func (h *Handler) GetAllContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var all AllContent

	if hero, err := h.queries.GetHeroContent(ctx); err == nil {
		all.Hero = &hero
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("loading hero content", "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}
	if about, err := h.queries.GetAboutContent(ctx); err == nil {
		all.About = &about
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("loading about content", "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}
	if contact, err := h.queries.GetContactContent(ctx); err == nil {
		all.Contact = &contact
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("loading contact content", "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}
	if footer, err := h.queries.GetFooterContent(ctx); err == nil {
		all.Footer = &footer
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("loading footer content", "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}
	if section, err := h.queries.GetServicesSection(ctx); err == nil {
		all.ServicesSection = &section
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("loading services section", "error", err)
		WriteInternalError(w, "Failed to load content")
		return
	}

	WriteSuccess(w, all, nil)
}

// UpdateHeroRequest is the hero section replacement payload. The row is
// replaced whole; omitted fields become empty.
type UpdateHeroRequest struct {
	BadgeText           string       `json:"badge_text"`
	Title               string       `json:"title"`
	TitleHighlight      string       `json:"title_highlight"`
	Description         string       `json:"description"`
	PrimaryButtonText   string       `json:"primary_button_text"`
	PrimaryButtonLink   string       `json:"primary_button_link"`
	SecondaryButtonText string       `json:"secondary_button_text"`
	SecondaryButtonLink string       `json:"secondary_button_link"`
	HeroImage           string       `json:"hero_image"`
	Stats               []model.Stat `json:"stats"`
}

// UpdateHero replaces the hero section.
func (h *Handler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var req UpdateHeroRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	err := h.queries.UpsertHeroContent(r.Context(), store.UpsertHeroContentParams{
		BadgeText:           req.BadgeText,
		Title:               req.Title,
		TitleHighlight:      req.TitleHighlight,
		Description:         h.sanitizer.Sanitize(req.Description),
		PrimaryButtonText:   req.PrimaryButtonText,
		PrimaryButtonLink:   req.PrimaryButtonLink,
		SecondaryButtonText: req.SecondaryButtonText,
		SecondaryButtonLink: req.SecondaryButtonLink,
		HeroImage:           req.HeroImage,
		Stats:               req.Stats,
		UpdatedAt:           time.Now(),
	})
	if err != nil {
		slog.Error("saving hero content", "error", err)
		WriteInternalError(w, "Failed to save hero content")
		return
	}

	h.recordContentSave(r, "hero")
	h.GetHero(w, r)
}

// UpdateAboutRequest is the about section replacement payload.
type UpdateAboutRequest struct {
	SectionLabel   string          `json:"section_label"`
	Title          string          `json:"title"`
	TitleHighlight string          `json:"title_highlight"`
	Description    string          `json:"description"`
	Features       []model.Feature `json:"features"`
	CardStats      []model.Stat    `json:"card_stats"`
}

// UpdateAbout replaces the about section.
func (h *Handler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var req UpdateAboutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	for i := range req.Features {
		req.Features[i].Description = h.sanitizer.Sanitize(req.Features[i].Description)
	}
	err := h.queries.UpsertAboutContent(r.Context(), store.UpsertAboutContentParams{
		SectionLabel:   req.SectionLabel,
		Title:          req.Title,
		TitleHighlight: req.TitleHighlight,
		Description:    h.sanitizer.Sanitize(req.Description),
		Features:       req.Features,
		CardStats:      req.CardStats,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		slog.Error("saving about content", "error", err)
		WriteInternalError(w, "Failed to save about content")
		return
	}

	h.recordContentSave(r, "about")
	h.GetAbout(w, r)
}

// UpdateContactRequest is the contact section replacement payload.
type UpdateContactRequest struct {
	SectionLabel   string            `json:"section_label"`
	Title          string            `json:"title"`
	TitleHighlight string            `json:"title_highlight"`
	Description    string            `json:"description"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Address        string            `json:"address"`
	SocialLinks    model.SocialLinks `json:"social_links"`
}

// UpdateContact replaces the contact section.
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req UpdateContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	err := h.queries.UpsertContactContent(r.Context(), store.UpsertContactContentParams{
		SectionLabel:   req.SectionLabel,
		Title:          req.Title,
		TitleHighlight: req.TitleHighlight,
		Description:    h.sanitizer.Sanitize(req.Description),
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		SocialLinks:    req.SocialLinks,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		slog.Error("saving contact content", "error", err)
		WriteInternalError(w, "Failed to save contact content")
		return
	}

	h.recordContentSave(r, "contact")
	h.GetContact(w, r)
}

// UpdateFooterRequest is the footer replacement payload.
type UpdateFooterRequest struct {
	CompanyName    string `json:"company_name"`
	CompanyTagline string `json:"company_tagline"`
	CopyrightText  string `json:"copyright_text"`
}

// UpdateFooter replaces the footer section.
func (h *Handler) UpdateFooter(w http.ResponseWriter, r *http.Request) {
	var req UpdateFooterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CompanyName == "" {
		WriteValidationError(w, map[string]string{"company_name": "Company name is required"})
		return
	}

	err := h.queries.UpsertFooterContent(r.Context(), store.UpsertFooterContentParams{
		CompanyName:    req.CompanyName,
		CompanyTagline: req.CompanyTagline,
		CopyrightText:  req.CopyrightText,
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		slog.Error("saving footer content", "error", err)
		WriteInternalError(w, "Failed to save footer content")
		return
	}

	h.recordContentSave(r, "footer")
	h.GetFooter(w, r)
}

func (h *Handler) recordContentSave(r *http.Request, section string) {
	h.activity.Record(r.Context(), middleware.GetUserIDPtr(r), model.ActionContentUpdate,
		"Updated "+section+" content", clientIP(r), r.UserAgent())
}
