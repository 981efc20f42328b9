// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
)

// submissionRatePerSecond throttles the public contact form per IP.
const submissionRatePerSecond = 0.2

// Routes builds the /api route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	bearer := middleware.Auth(h.tokens, h.db)
	admin := middleware.RequireAdmin()
	superAdmin := middleware.RequireSuperAdmin()

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if h.loginProt != nil {
				r.Use(h.loginProt.Middleware())
			}
			r.Post("/login", h.Login)
		})
		r.Group(func(r chi.Router) {
			r.Use(bearer)
			r.Get("/me", h.Me)
			r.Post("/logout", h.Logout)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/password", h.ChangePassword)
		})
	})

	r.Route("/content", func(r chi.Router) {
		r.Get("/hero", h.GetHero)
		r.Get("/about", h.GetAbout)
		r.Get("/contact", h.GetContact)
		r.Get("/footer", h.GetFooter)
		r.Get("/all", h.GetAllContent)

		r.Group(func(r chi.Router) {
			r.Use(bearer, admin)
			r.Put("/hero", h.UpdateHero)
			r.Put("/about", h.UpdateAbout)
			r.Put("/contact", h.UpdateContact)
			r.Put("/footer", h.UpdateFooter)
		})
	})

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.ListServicesGrouped)
		r.Get("/flat", h.ListServicesFlat)
		r.Get("/active", h.ListActiveServices)
		r.Get("/section", h.GetServicesSection)

		// Literal routes stay ahead of /{id}.
		r.Group(func(r chi.Router) {
			r.Use(bearer, admin)
			r.Put("/section", h.UpdateServicesSection)
			r.Put("/reorder", h.ReorderServices)
			r.Put("/replace-all", h.ReplaceAllServices)
			r.Post("/", h.CreateService)
			r.Put("/{id}", h.UpdateService)
			r.Delete("/{id}", h.DeleteService)
		})

		r.Get("/{id}", h.GetService)
	})

	r.Route("/upload", func(r chi.Router) {
		r.Use(bearer)
		r.Post("/single", h.UploadSingle)
		r.Post("/multiple", h.UploadMultiple)
		r.Get("/", h.ListMedia)
		r.With(admin).Delete("/{id}", h.DeleteMedia)
	})

	r.Route("/settings", func(r chi.Router) {
		r.With(bearer).Get("/", h.ListSettings)
		r.With(bearer, admin).Put("/", h.BulkUpdateSettings)

		r.With(bearer).Get("/dashboard/stats", h.DashboardStats)
		r.With(bearer, admin).Get("/logs/activity", h.ListActivityLogs)
		r.With(bearer).Get("/submissions/contact", h.ListSubmissions)
		r.With(bearer).Put("/submissions/contact/{id}/read", h.MarkSubmissionRead)

		r.Get("/{key}", h.GetSetting)
		r.With(bearer, admin).Put("/{key}", h.UpdateSetting)
		r.With(bearer, superAdmin).Delete("/{key}", h.DeleteSetting)
	})

	submissionLimiter := middleware.NewGlobalRateLimiter(submissionRatePerSecond, 3)
	r.With(submissionLimiter.Middleware()).Post("/submissions/contact", h.CreateSubmission)

	return r
}
