// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

// Package legacy imports data from the old MySQL backend into the sqlite
// database. It is a one-shot migration run from the command line; it refuses
// to touch a target that already has users.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// ErrTargetNotEmpty is returned when the sqlite database already holds users.
// The importer never merges; migrate into a fresh database.
var ErrTargetNotEmpty = errors.New("target database already has users")

// Result counts the rows written per entity.
type Result struct {
	Users           int
	ContentSections int
	Services        int
	Settings        int
	Submissions     int
	Media           int
}

// Importer copies the legacy MySQL data into the sqlite database.
type Importer struct {
	dst     *sql.DB
	queries *store.Queries
	logger  *slog.Logger
}

// NewImporter creates an Importer writing into dst.
func NewImporter(dst *sql.DB, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		dst:     dst,
		queries: store.New(dst),
		logger:  logger,
	}
}

// Run connects to the legacy database at dsn and copies users, content
// sections, services, settings, submissions and media rows into sqlite in a
// single transaction. Row ids are preserved so media uploader references
// stay intact. Legacy bcrypt password hashes are carried as-is; they are
// upgraded to argon2id the first time each user logs in.
func (i *Importer) Run(ctx context.Context, dsn string) (*Result, error) {
	count, err := i.queries.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting target users: %w", err)
	}
	if count > 0 {
		return nil, ErrTargetNotEmpty
	}

	normalized, err := normalizeDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing legacy dsn: %w", err)
	}
	src, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	defer func() { _ = src.Close() }()
	if err := src.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}

	tx, err := i.dst.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &Result{}
	steps := []struct {
		name string
		run  func(context.Context, *sql.DB, *sql.Tx, *Result) error
	}{
		{"users", i.importUsers},
		{"content", i.importContent},
		{"services", i.importServices},
		{"settings", i.importSettings},
		{"submissions", i.importSubmissions},
		{"media", i.importMedia},
	}
	for _, step := range steps {
		if err := step.run(ctx, src, tx, result); err != nil {
			return nil, fmt.Errorf("importing %s: %w", step.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	i.logger.Info("legacy import complete",
		"users", result.Users,
		"content_sections", result.ContentSections,
		"services", result.Services,
		"settings", result.Settings,
		"submissions", result.Submissions,
		"media", result.Media)
	return result, nil
}

// normalizeDSN forces parseTime so DATETIME columns scan into time.Time.
func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (i *Importer) importUsers(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	rows, err := src.QueryContext(ctx, `
		SELECT id, username, email, password,
		       COALESCE(full_name, ''), role, COALESCE(avatar, ''),
		       is_active, last_login, created_at, updated_at
		FROM users ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                                int64
			username, email, hash, name, role string
			avatar                            string
			active                            bool
			lastLogin                         sql.NullTime
			createdAt, updatedAt              time.Time
		)
		if err := rows.Scan(&id, &username, &email, &hash, &name, &role,
			&avatar, &active, &lastLogin, &createdAt, &updatedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, username, email, password_hash, full_name, role, avatar, is_active, last_login, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, username, strings.ToLower(email), hash, name, role, avatar,
			active, lastLogin, createdAt, updatedAt)
		if err != nil {
			return fmt.Errorf("user %q: %w", username, err)
		}
		result.Users++
	}
	return rows.Err()
}

func (i *Importer) importContent(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	queries := i.queries.WithTx(tx)

	var hero heroRow
	err := src.QueryRowContext(ctx, `
		SELECT COALESCE(badge_text, ''), COALESCE(title, ''), COALESCE(title_highlight, ''),
		       COALESCE(description, ''),
		       COALESCE(button_primary_text, ''), COALESCE(button_primary_link, ''),
		       COALESCE(button_secondary_text, ''), COALESCE(button_secondary_link, ''),
		       COALESCE(hero_image, ''),
		       COALESCE(stat_1_value, ''), COALESCE(stat_1_label, ''),
		       COALESCE(stat_2_value, ''), COALESCE(stat_2_label, ''),
		       COALESCE(stat_3_value, ''), COALESCE(stat_3_label, ''),
		       updated_at
		FROM hero_content WHERE is_active = 1 ORDER BY id LIMIT 1`).Scan(
		&hero.BadgeText, &hero.Title, &hero.TitleHighlight, &hero.Description,
		&hero.ButtonPrimaryText, &hero.ButtonPrimaryLink,
		&hero.ButtonSecondaryText, &hero.ButtonSecondaryLink,
		&hero.HeroImage,
		&hero.StatValues[0], &hero.StatLabels[0],
		&hero.StatValues[1], &hero.StatLabels[1],
		&hero.StatValues[2], &hero.StatLabels[2],
		&hero.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading hero: %w", err)
	default:
		if err := queries.UpsertHeroContent(ctx, hero.params()); err != nil {
			return err
		}
		result.ContentSections++
	}

	var about aboutRow
	err = src.QueryRowContext(ctx, `
		SELECT COALESCE(section_label, ''), COALESCE(title, ''), COALESCE(title_highlight, ''),
		       COALESCE(description, ''),
		       COALESCE(feature_1_icon, ''), COALESCE(feature_1_title, ''), COALESCE(feature_1_description, ''),
		       COALESCE(feature_2_icon, ''), COALESCE(feature_2_title, ''), COALESCE(feature_2_description, ''),
		       COALESCE(feature_3_icon, ''), COALESCE(feature_3_title, ''), COALESCE(feature_3_description, ''),
		       COALESCE(feature_4_icon, ''), COALESCE(feature_4_title, ''), COALESCE(feature_4_description, ''),
		       COALESCE(card_stat_1_value, ''), COALESCE(card_stat_1_label, ''),
		       COALESCE(card_stat_2_value, ''), COALESCE(card_stat_2_label, ''),
		       COALESCE(card_stat_3_value, ''), COALESCE(card_stat_3_label, ''),
		       updated_at
		FROM about_content WHERE is_active = 1 ORDER BY id LIMIT 1`).Scan(
		&about.SectionLabel, &about.Title, &about.TitleHighlight, &about.Description,
		&about.FeatureIcons[0], &about.FeatureTitles[0], &about.FeatureDescriptions[0],
		&about.FeatureIcons[1], &about.FeatureTitles[1], &about.FeatureDescriptions[1],
		&about.FeatureIcons[2], &about.FeatureTitles[2], &about.FeatureDescriptions[2],
		&about.FeatureIcons[3], &about.FeatureTitles[3], &about.FeatureDescriptions[3],
		&about.CardStatValues[0], &about.CardStatLabels[0],
		&about.CardStatValues[1], &about.CardStatLabels[1],
		&about.CardStatValues[2], &about.CardStatLabels[2],
		&about.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading about: %w", err)
	default:
		if err := queries.UpsertAboutContent(ctx, about.params()); err != nil {
			return err
		}
		result.ContentSections++
	}

	var contact contactRow
	err = src.QueryRowContext(ctx, `
		SELECT COALESCE(section_label, ''), COALESCE(title, ''), COALESCE(title_highlight, ''),
		       COALESCE(description, ''), COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(address, ''), COALESCE(whatsapp, ''), COALESCE(instagram, ''),
		       COALESCE(linkedin, ''), COALESCE(twitter, ''), updated_at
		FROM contact_content WHERE is_active = 1 ORDER BY id LIMIT 1`).Scan(
		&contact.SectionLabel, &contact.Title, &contact.TitleHighlight,
		&contact.Description, &contact.Email, &contact.Phone,
		&contact.Address, &contact.WhatsApp, &contact.Instagram,
		&contact.LinkedIn, &contact.Twitter, &contact.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading contact: %w", err)
	default:
		if err := queries.UpsertContactContent(ctx, contact.params()); err != nil {
			return err
		}
		result.ContentSections++
	}

	var footer store.UpsertFooterContentParams
	err = src.QueryRowContext(ctx, `
		SELECT COALESCE(company_name, ''), COALESCE(company_tagline, ''),
		       COALESCE(copyright_text, ''), updated_at
		FROM footer_content WHERE is_active = 1 ORDER BY id LIMIT 1`).Scan(
		&footer.CompanyName, &footer.CompanyTagline, &footer.CopyrightText, &footer.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading footer: %w", err)
	default:
		if err := queries.UpsertFooterContent(ctx, footer); err != nil {
			return err
		}
		result.ContentSections++
	}

	var section store.UpsertServicesSectionParams
	err = src.QueryRowContext(ctx, `
		SELECT COALESCE(section_label, ''), COALESCE(title, ''),
		       COALESCE(title_highlight, ''), COALESCE(description, ''), updated_at
		FROM services_section WHERE is_active = 1 ORDER BY id LIMIT 1`).Scan(
		&section.SectionLabel, &section.Title, &section.TitleHighlight,
		&section.Description, &section.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("reading services section: %w", err)
	default:
		if err := queries.UpsertServicesSection(ctx, section); err != nil {
			return err
		}
		result.ContentSections++
	}

	return nil
}

// importServices copies service rows. The legacy schema had no categories,
// so every imported service lands uncategorized.
func (i *Importer) importServices(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	rows, err := src.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), COALESCE(full_description, ''),
		       COALESCE(image, ''), COALESCE(link, ''), is_coming_soon,
		       display_order, is_active, created_at, updated_at
		FROM services ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, order            int64
			title, desc, full    string
			image, link          string
			comingSoon, active   bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &title, &desc, &full, &image, &link,
			&comingSoon, &order, &active, &createdAt, &updatedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO services (id, category_id, title, description, full_description, image, link, is_coming_soon, display_order, is_active, created_at, updated_at)
			VALUES (?, NULL, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, title, desc, full, image, link, comingSoon, order, active,
			createdAt, updatedAt)
		if err != nil {
			return fmt.Errorf("service %q: %w", title, err)
		}
		result.Services++
	}
	return rows.Err()
}

func (i *Importer) importSettings(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	rows, err := src.QueryContext(ctx, `
		SELECT setting_key, COALESCE(setting_value, ''), setting_type, category, updated_at
		FROM site_settings ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value, typ, category string
		var updatedAt time.Time
		if err := rows.Scan(&key, &value, &typ, &category, &updatedAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO site_settings (setting_key, setting_value, setting_type, category, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			key, value, typ, category, updatedAt)
		if err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		result.Settings++
	}
	return rows.Err()
}

func (i *Importer) importSubmissions(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	rows, err := src.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(subject, ''), message, is_read, created_at
		FROM contact_submissions ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                            int64
			name, email, subject, message string
			isRead                        bool
			createdAt                     time.Time
		)
		if err := rows.Scan(&id, &name, &email, &subject, &message, &isRead, &createdAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO contact_submissions (id, name, email, phone, subject, message, is_read, created_at)
			VALUES (?, ?, ?, '', ?, ?, ?, ?)`,
			id, name, strings.ToLower(email), subject, message, isRead, createdAt)
		if err != nil {
			return fmt.Errorf("submission %d: %w", id, err)
		}
		result.Submissions++
	}
	return rows.Err()
}

// importMedia copies the media index only. Files themselves move with the
// uploads directory; the legacy rows carry no dimensions, so width and
// height stay NULL until re-upload.
func (i *Importer) importMedia(ctx context.Context, src *sql.DB, tx *sql.Tx, result *Result) error {
	rows, err := src.QueryContext(ctx, `
		SELECT id, filename, COALESCE(original_name, ''), COALESCE(mime_type, ''),
		       COALESCE(size, 0), path, uploaded_by, created_at
		FROM media ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, size                 int64
			filename, original, mime string
			path                     string
			uploadedBy               sql.NullInt64
			createdAt                time.Time
		)
		if err := rows.Scan(&id, &filename, &original, &mime, &size, &path,
			&uploadedBy, &createdAt); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO media (id, filename, original_name, mime_type, size, path, width, height, uploaded_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?)`,
			id, filename, original, mime, size, path, uploadedBy, createdAt)
		if err != nil {
			return fmt.Errorf("media %q: %w", filename, err)
		}
		result.Media++
	}
	return rows.Err()
}
