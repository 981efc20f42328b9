// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
)

const settingColumns = `id, setting_key, setting_value, setting_type, category, updated_at`

func scanSetting(row interface{ Scan(...any) error }) (model.SiteSetting, error) {
	var s model.SiteSetting
	err := row.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.SettingType, &s.Category, &s.UpdatedAt)
	return s, err
}

// ListSettings returns all site settings.
func (q *Queries) ListSettings(ctx context.Context) ([]model.SiteSetting, error) {
	return q.querySettings(ctx, `SELECT `+settingColumns+` FROM site_settings ORDER BY category, setting_key`)
}

// ListSettingsByCategory returns site settings in one category.
func (q *Queries) ListSettingsByCategory(ctx context.Context, category string) ([]model.SiteSetting, error) {
	return q.querySettings(ctx, `SELECT `+settingColumns+` FROM site_settings WHERE category = ? ORDER BY setting_key`, category)
}

func (q *Queries) querySettings(ctx context.Context, query string, args ...any) ([]model.SiteSetting, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make([]model.SiteSetting, 0)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetSettingByKey fetches a single setting.
func (q *Queries) GetSettingByKey(ctx context.Context, key string) (model.SiteSetting, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+settingColumns+` FROM site_settings WHERE setting_key = ?`, key)
	return scanSetting(row)
}

// UpsertSettingParams holds parameters for UpsertSetting.
type UpsertSettingParams struct {
	SettingKey   string
	SettingValue string
	SettingType  string
	Category     string
	UpdatedAt    time.Time
}

// UpsertSetting creates or replaces a setting by key.
func (q *Queries) UpsertSetting(ctx context.Context, arg UpsertSettingParams) error {
	if arg.SettingType == "" {
		arg.SettingType = model.SettingTypeText
	}
	if arg.Category == "" {
		arg.Category = "general"
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO site_settings (setting_key, setting_value, setting_type, category, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(setting_key) DO UPDATE SET
			setting_value = excluded.setting_value,
			setting_type = excluded.setting_type,
			category = excluded.category,
			updated_at = excluded.updated_at`,
		arg.SettingKey, arg.SettingValue, arg.SettingType, arg.Category, arg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting setting %q: %w", arg.SettingKey, err)
	}
	return nil
}

// DeleteSetting removes a setting by key.
func (q *Queries) DeleteSetting(ctx context.Context, key string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM site_settings WHERE setting_key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkUpsertSettings applies multiple setting writes in one transaction.
func BulkUpsertSettings(ctx context.Context, db *sql.DB, settings []UpsertSettingParams) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning settings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := New(tx)
	for _, s := range settings {
		if err := q.UpsertSetting(ctx, s); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settings: %w", err)
	}
	return nil
}
