// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Activity log actions.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionProfileUpdate  = "profile_update"
	ActionPasswordChange = "password_change"
	ActionContentUpdate  = "content_update"
	ActionServiceCreate  = "service_create"
	ActionServiceUpdate  = "service_update"
	ActionServiceDelete  = "service_delete"
	ActionServiceReorder = "service_reorder"
	ActionServiceReplace = "service_replace_all"
	ActionUpload         = "upload"
	ActionMediaDelete    = "media_delete"
	ActionSettingUpdate  = "setting_update"
	ActionSettingDelete  = "setting_delete"
	ActionSystemWarning  = "system_warning"
	ActionSystemError    = "system_error"
)

// ActivityLog is a single audit trail entry. The user reference survives
// user deletion as NULL.
type ActivityLog struct {
	ID          int64          `json:"id"`
	UserID      sql.NullInt64  `json:"user_id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	IPAddress   string         `json:"ip_address"`
	Country     string         `json:"country"`
	UserAgent   string         `json:"user_agent"`
	Username    sql.NullString `json:"username"` // joined on read, not stored
	CreatedAt   time.Time      `json:"created_at"`
}
