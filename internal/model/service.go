// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// ServiceCategory groups services in the landing page grid.
type ServiceCategory struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	BgColor   string    `json:"bg_color"`
	SortOrder int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is a single offered service card.
type Service struct {
	ID              int64         `json:"id"`
	CategoryID      sql.NullInt64 `json:"category_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	FullDescription string        `json:"full_description"`
	Image           string        `json:"image"`
	Link            string        `json:"link"`
	IsComingSoon    bool          `json:"is_coming_soon"`
	DisplayOrder    int64         `json:"display_order"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CategoryWithServices is a category plus its active services, ordered, for
// the grouped public listing.
type CategoryWithServices struct {
	ServiceCategory
	Services []Service `json:"services"`
}
