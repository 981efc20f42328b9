// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
)

// Content rows are singletons pinned to id=1. Writes are whole-row upserts:
// a PUT with missing fields clobbers them to zero values (last writer wins).
// List-valued fields (stats, features) cross the SQL boundary as JSON text;
// marshalling and unmarshalling happen here and nowhere else.

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding json column: %w", err)
	}
	return string(b), nil
}

// GetHeroContent fetches the hero section singleton.
func (q *Queries) GetHeroContent(ctx context.Context) (model.HeroContent, error) {
	var h model.HeroContent
	var stats string
	err := q.db.QueryRowContext(ctx, `
		SELECT id, badge_text, title, title_highlight, description,
		       primary_button_text, primary_button_link,
		       secondary_button_text, secondary_button_link,
		       hero_image, stats, updated_at
		FROM hero_content WHERE id = 1`).Scan(
		&h.ID, &h.BadgeText, &h.Title, &h.TitleHighlight, &h.Description,
		&h.PrimaryButtonText, &h.PrimaryButtonLink,
		&h.SecondaryButtonText, &h.SecondaryButtonLink,
		&h.HeroImage, &stats, &h.UpdatedAt)
	if err != nil {
		return model.HeroContent{}, err
	}
	if err := json.Unmarshal([]byte(stats), &h.Stats); err != nil {
		return model.HeroContent{}, fmt.Errorf("decoding hero stats: %w", err)
	}
	return h, nil
}

// UpsertHeroContentParams holds parameters for UpsertHeroContent.
type UpsertHeroContentParams struct {
	BadgeText           string
	Title               string
	TitleHighlight      string
	Description         string
	PrimaryButtonText   string
	PrimaryButtonLink   string
	SecondaryButtonText string
	SecondaryButtonLink string
	HeroImage           string
	Stats               []model.Stat
	UpdatedAt           time.Time
}

// UpsertHeroContent replaces the hero section singleton.
func (q *Queries) UpsertHeroContent(ctx context.Context, arg UpsertHeroContentParams) error {
	if arg.Stats == nil {
		arg.Stats = []model.Stat{}
	}
	stats, err := marshalJSON(arg.Stats)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO hero_content (id, badge_text, title, title_highlight, description,
			primary_button_text, primary_button_link,
			secondary_button_text, secondary_button_link,
			hero_image, stats, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			badge_text = excluded.badge_text,
			title = excluded.title,
			title_highlight = excluded.title_highlight,
			description = excluded.description,
			primary_button_text = excluded.primary_button_text,
			primary_button_link = excluded.primary_button_link,
			secondary_button_text = excluded.secondary_button_text,
			secondary_button_link = excluded.secondary_button_link,
			hero_image = excluded.hero_image,
			stats = excluded.stats,
			updated_at = excluded.updated_at`,
		arg.BadgeText, arg.Title, arg.TitleHighlight, arg.Description,
		arg.PrimaryButtonText, arg.PrimaryButtonLink,
		arg.SecondaryButtonText, arg.SecondaryButtonLink,
		arg.HeroImage, stats, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting hero content: %w", err)
	}
	return nil
}

// GetAboutContent fetches the about section singleton.
func (q *Queries) GetAboutContent(ctx context.Context) (model.AboutContent, error) {
	var a model.AboutContent
	var features, cardStats string
	err := q.db.QueryRowContext(ctx, `
		SELECT id, section_label, title, title_highlight, description, features, card_stats, updated_at
		FROM about_content WHERE id = 1`).Scan(
		&a.ID, &a.SectionLabel, &a.Title, &a.TitleHighlight, &a.Description,
		&features, &cardStats, &a.UpdatedAt)
	if err != nil {
		return model.AboutContent{}, err
	}
	if err := json.Unmarshal([]byte(features), &a.Features); err != nil {
		return model.AboutContent{}, fmt.Errorf("decoding about features: %w", err)
	}
	if err := json.Unmarshal([]byte(cardStats), &a.CardStats); err != nil {
		return model.AboutContent{}, fmt.Errorf("decoding about card stats: %w", err)
	}
	return a, nil
}

// UpsertAboutContentParams holds parameters for UpsertAboutContent.
type UpsertAboutContentParams struct {
	SectionLabel   string
	Title          string
	TitleHighlight string
	Description    string
	Features       []model.Feature
	CardStats      []model.Stat
	UpdatedAt      time.Time
}

// UpsertAboutContent replaces the about section singleton.
func (q *Queries) UpsertAboutContent(ctx context.Context, arg UpsertAboutContentParams) error {
	if arg.Features == nil {
		arg.Features = []model.Feature{}
	}
	if arg.CardStats == nil {
		arg.CardStats = []model.Stat{}
	}
	features, err := marshalJSON(arg.Features)
	if err != nil {
		return err
	}
	cardStats, err := marshalJSON(arg.CardStats)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO about_content (id, section_label, title, title_highlight, description, features, card_stats, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section_label = excluded.section_label,
			title = excluded.title,
			title_highlight = excluded.title_highlight,
			description = excluded.description,
			features = excluded.features,
			card_stats = excluded.card_stats,
			updated_at = excluded.updated_at`,
		arg.SectionLabel, arg.Title, arg.TitleHighlight, arg.Description,
		features, cardStats, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting about content: %w", err)
	}
	return nil
}

// GetContactContent fetches the contact section singleton.
func (q *Queries) GetContactContent(ctx context.Context) (model.ContactContent, error) {
	var c model.ContactContent
	var socialLinks string
	err := q.db.QueryRowContext(ctx, `
		SELECT id, section_label, title, title_highlight, description, email, phone, address, social_links, updated_at
		FROM contact_content WHERE id = 1`).Scan(
		&c.ID, &c.SectionLabel, &c.Title, &c.TitleHighlight, &c.Description,
		&c.Email, &c.Phone, &c.Address, &socialLinks, &c.UpdatedAt)
	if err != nil {
		return model.ContactContent{}, err
	}
	if err := json.Unmarshal([]byte(socialLinks), &c.SocialLinks); err != nil {
		return model.ContactContent{}, fmt.Errorf("decoding contact social links: %w", err)
	}
	return c, nil
}

// UpsertContactContentParams holds parameters for UpsertContactContent.
type UpsertContactContentParams struct {
	SectionLabel   string
	Title          string
	TitleHighlight string
	Description    string
	Email          string
	Phone          string
	Address        string
	SocialLinks    model.SocialLinks
	UpdatedAt      time.Time
}

// UpsertContactContent replaces the contact section singleton.
func (q *Queries) UpsertContactContent(ctx context.Context, arg UpsertContactContentParams) error {
	socialLinks, err := marshalJSON(arg.SocialLinks)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO contact_content (id, section_label, title, title_highlight, description, email, phone, address, social_links, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section_label = excluded.section_label,
			title = excluded.title,
			title_highlight = excluded.title_highlight,
			description = excluded.description,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address,
			social_links = excluded.social_links,
			updated_at = excluded.updated_at`,
		arg.SectionLabel, arg.Title, arg.TitleHighlight, arg.Description,
		arg.Email, arg.Phone, arg.Address, socialLinks, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting contact content: %w", err)
	}
	return nil
}

// GetFooterContent fetches the footer singleton.
func (q *Queries) GetFooterContent(ctx context.Context) (model.FooterContent, error) {
	var f model.FooterContent
	err := q.db.QueryRowContext(ctx, `
		SELECT id, company_name, company_tagline, copyright_text, updated_at
		FROM footer_content WHERE id = 1`).Scan(
		&f.ID, &f.CompanyName, &f.CompanyTagline, &f.CopyrightText, &f.UpdatedAt)
	if err != nil {
		return model.FooterContent{}, err
	}
	return f, nil
}

// UpsertFooterContentParams holds parameters for UpsertFooterContent.
type UpsertFooterContentParams struct {
	CompanyName    string
	CompanyTagline string
	CopyrightText  string
	UpdatedAt      time.Time
}

// UpsertFooterContent replaces the footer singleton.
func (q *Queries) UpsertFooterContent(ctx context.Context, arg UpsertFooterContentParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO footer_content (id, company_name, company_tagline, copyright_text, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			company_tagline = excluded.company_tagline,
			copyright_text = excluded.copyright_text,
			updated_at = excluded.updated_at`,
		arg.CompanyName, arg.CompanyTagline, arg.CopyrightText, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting footer content: %w", err)
	}
	return nil
}

// GetServicesSection fetches the services section heading singleton.
func (q *Queries) GetServicesSection(ctx context.Context) (model.ServicesSection, error) {
	var s model.ServicesSection
	err := q.db.QueryRowContext(ctx, `
		SELECT id, section_label, title, title_highlight, description, updated_at
		FROM services_section WHERE id = 1`).Scan(
		&s.ID, &s.SectionLabel, &s.Title, &s.TitleHighlight, &s.Description, &s.UpdatedAt)
	if err != nil {
		return model.ServicesSection{}, err
	}
	return s, nil
}

// UpsertServicesSectionParams holds parameters for UpsertServicesSection.
type UpsertServicesSectionParams struct {
	SectionLabel   string
	Title          string
	TitleHighlight string
	Description    string
	UpdatedAt      time.Time
}

// UpsertServicesSection replaces the services section heading singleton.
func (q *Queries) UpsertServicesSection(ctx context.Context, arg UpsertServicesSectionParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO services_section (id, section_label, title, title_highlight, description, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			section_label = excluded.section_label,
			title = excluded.title,
			title_highlight = excluded.title_highlight,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		arg.SectionLabel, arg.Title, arg.TitleHighlight, arg.Description, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting services section: %w", err)
	}
	return nil
}
