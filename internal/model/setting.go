// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Setting value types.
const (
	SettingTypeText    = "text"
	SettingTypeNumber  = "number"
	SettingTypeBoolean = "boolean"
	SettingTypeJSON    = "json"
)

// SiteSetting is a single key/value site configuration entry.
type SiteSetting struct {
	ID           int64     `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	SettingType  string    `json:"setting_type"`
	Category     string    `json:"category"`
	UpdatedAt    time.Time `json:"updated_at"`
}
