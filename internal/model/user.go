// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including User, content sections, Service, and Media structures.
package model

import (
	"database/sql"
	"time"
)

// User roles.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
)

// User represents an admin panel user.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose in JSON
	FullName     string       `json:"full_name"`
	Role         string       `json:"role"`
	Avatar       string       `json:"avatar"`
	IsActive     bool         `json:"is_active"`
	LastLogin    sql.NullTime `json:"last_login,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsSuperAdmin returns true if the user has the super_admin role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// HasAdminAccess returns true if the user may perform admin mutations.
func (u *User) HasAdminAccess() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// ValidRole reports whether role names a known user role.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEditor:
		return true
	default:
		return false
	}
}
