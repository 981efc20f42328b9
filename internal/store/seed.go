// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/auth"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@hibiscusefsya.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in an empty database: the default admin user,
// the content singletons, and a starter set of services. It is skipped
// entirely when any user already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing users: %w", err)
	}
	if count > 0 {
		slog.Info("users already exist, skipping seed")
		return nil
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		FullName:     DefaultAdminName,
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	if err := seedContent(ctx, queries, now); err != nil {
		return err
	}
	if err := seedServices(ctx, queries, now); err != nil {
		return err
	}
	if err := seedSettings(ctx, queries, now); err != nil {
		return err
	}

	slog.Info("seeded default content")
	return nil
}

func seedContent(ctx context.Context, queries *Queries, now time.Time) error {
	err := queries.UpsertHeroContent(ctx, UpsertHeroContentParams{
		BadgeText:           "Digital Solutions Partner",
		Title:               "Grow Your Business With",
		TitleHighlight:      "Hibiscus Efsya",
		Description:         "We build websites, applications, and digital campaigns that move your business forward.",
		PrimaryButtonText:   "Get Started",
		PrimaryButtonLink:   "#contact",
		SecondaryButtonText: "Our Services",
		SecondaryButtonLink: "#services",
		Stats: []model.Stat{
			{Value: "150+", Label: "Projects Delivered"},
			{Value: "80+", Label: "Happy Clients"},
			{Value: "5+", Label: "Years of Experience"},
		},
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("seeding hero content: %w", err)
	}

	err = queries.UpsertAboutContent(ctx, UpsertAboutContentParams{
		SectionLabel:   "About Us",
		Title:          "Your Partner in",
		TitleHighlight: "Digital Growth",
		Description:    "Hibiscus Efsya is a digital agency helping businesses of every size build their online presence.",
		Features: []model.Feature{
			{Icon: "rocket", Title: "Fast Delivery", Description: "Projects shipped on schedule without cutting corners."},
			{Icon: "shield", Title: "Reliable Support", Description: "We stay with you after launch."},
			{Icon: "target", Title: "Results Focused", Description: "Every build is measured against your business goals."},
			{Icon: "users", Title: "Dedicated Team", Description: "Designers and engineers working as one team."},
		},
		CardStats: []model.Stat{
			{Value: "150+", Label: "Projects"},
			{Value: "80+", Label: "Clients"},
			{Value: "98%", Label: "Satisfaction"},
		},
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("seeding about content: %w", err)
	}

	err = queries.UpsertContactContent(ctx, UpsertContactContentParams{
		SectionLabel:   "Contact",
		Title:          "Let's Build",
		TitleHighlight: "Something Great",
		Description:    "Tell us about your project and we will get back to you within one business day.",
		Email:          "hello@hibiscusefsya.com",
		Phone:          "+62 812 0000 0000",
		Address:        "Jakarta, Indonesia",
		SocialLinks: model.SocialLinks{
			WhatsApp:  "https://wa.me/6281200000000",
			Instagram: "https://instagram.com/hibiscusefsya",
		},
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("seeding contact content: %w", err)
	}

	err = queries.UpsertFooterContent(ctx, UpsertFooterContentParams{
		CompanyName:    "Hibiscus Efsya",
		CompanyTagline: "Digital solutions that grow with you.",
		CopyrightText:  "© Hibiscus Efsya. All rights reserved.",
		UpdatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("seeding footer content: %w", err)
	}

	err = queries.UpsertServicesSection(ctx, UpsertServicesSectionParams{
		SectionLabel:   "Services",
		Title:          "What We",
		TitleHighlight: "Offer",
		Description:    "End-to-end digital services, from design to deployment.",
		UpdatedAt:      now,
	})
	if err != nil {
		return fmt.Errorf("seeding services section: %w", err)
	}

	return nil
}

func seedServices(ctx context.Context, queries *Queries, now time.Time) error {
	res, err := queries.db.ExecContext(ctx, `
		INSERT INTO service_categories (title, icon, color, bg_color, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"Digital Services", "layers", "#e11d48", "#fff1f2", 0, now, now)
	if err != nil {
		return fmt.Errorf("seeding service category: %w", err)
	}
	categoryID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting seeded category id: %w", err)
	}

	services := []CreateServiceParams{
		{
			Title:        "Web Development",
			Description:  "Custom websites and web applications built on modern stacks.",
			DisplayOrder: 0,
		},
		{
			Title:        "Mobile Apps",
			Description:  "iOS and Android applications from idea to store release.",
			DisplayOrder: 1,
		},
		{
			Title:        "UI/UX Design",
			Description:  "Interfaces that look good and convert.",
			DisplayOrder: 2,
		},
		{
			Title:        "Digital Marketing",
			Description:  "Campaigns, SEO, and content that bring customers in.",
			DisplayOrder: 3,
		},
	}

	for _, svc := range services {
		svc.CategoryID = sql.NullInt64{Int64: categoryID, Valid: true}
		svc.IsActive = true
		svc.CreatedAt = now
		svc.UpdatedAt = now
		if _, err := queries.CreateService(ctx, svc); err != nil {
			return fmt.Errorf("seeding service %q: %w", svc.Title, err)
		}
	}
	return nil
}

func seedSettings(ctx context.Context, queries *Queries, now time.Time) error {
	settings := []UpsertSettingParams{
		{SettingKey: "site_name", SettingValue: "Hibiscus Efsya", SettingType: model.SettingTypeText, Category: "general"},
		{SettingKey: "site_description", SettingValue: "Digital solutions partner", SettingType: model.SettingTypeText, Category: "general"},
		{SettingKey: "maintenance_mode", SettingValue: "false", SettingType: model.SettingTypeBoolean, Category: "general"},
	}
	for _, s := range settings {
		s.UpdatedAt = now
		if err := queries.UpsertSetting(ctx, s); err != nil {
			return fmt.Errorf("seeding setting %q: %w", s.SettingKey, err)
		}
	}
	return nil
}
