// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/auth"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/middleware"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// LoginRequest is the login form payload. Login accepts a username or an
// email address.
type LoginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo is the public shape of a user account.
type UserInfo struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Avatar    string     `json:"avatar"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Login authenticates a user by username or email and issues a JWT.
//
// Every failure mode returns the same 401 body so callers cannot probe
// which accounts exist or which are deactivated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Username)
	}
	if login == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{
			"login":    "Login is required",
			"password": "Password is required",
		})
		return
	}

	if h.loginProt != nil {
		if locked, remaining := h.loginProt.IsAccountLocked(login); locked {
			slog.Warn("login attempt on locked account", "login", login, "remaining", remaining)
			writeInvalidCredentials(w)
			return
		}
	}

	user, err := h.queries.GetUserByLogin(r.Context(), login)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("looking up user for login", "error", err)
		}
		h.recordFailure(login)
		writeInvalidCredentials(w)
		return
	}

	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("verifying password", "user_id", user.ID, "error", err)
		writeInvalidCredentials(w)
		return
	}
	if !ok || !user.IsActive {
		h.recordFailure(login)
		writeInvalidCredentials(w)
		return
	}

	// Legacy bcrypt hashes are upgraded to argon2id on successful login.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash, time.Now()); err != nil {
				slog.Warn("rehashing legacy password", "user_id", user.ID, "error", err)
			}
		}
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		slog.Error("issuing token", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to issue token")
		return
	}

	now := time.Now()
	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, now); err != nil {
		slog.Warn("updating last login", "user_id", user.ID, "error", err)
	}
	user.LastLogin = sql.NullTime{Time: now, Valid: true}

	if h.loginProt != nil {
		h.loginProt.RecordSuccessfulLogin(login)
	}
	h.activity.RecordLogin(r.Context(), &user, clientIP(r), r.UserAgent())

	WriteSuccess(w, LoginResponse{Token: token, User: publicUser(user)}, nil)
}

func (h *Handler) recordFailure(login string) {
	if h.loginProt == nil {
		return
	}
	if locked, duration := h.loginProt.RecordFailedAttempt(login); locked {
		slog.Warn("account locked after repeated failures", "login", login, "duration", duration)
	}
}

func writeInvalidCredentials(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid login or password", nil)
}

func publicUser(u model.User) UserInfo {
	info := UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Avatar:   u.Avatar,
	}
	if u.LastLogin.Valid {
		t := u.LastLogin.Time
		info.LastLogin = &t
	}
	return info
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, publicUser(*user), nil)
}

// Logout records a logout event. The token itself stays valid until it
// expires; clients discard it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	h.activity.RecordLogout(r.Context(), user, clientIP(r), r.UserAgent())
	WriteSuccess(w, map[string]string{"message": "Logged out"}, nil)
}

// UpdateProfileRequest is the profile update payload.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// UpdateProfile updates the authenticated user's own profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	err := h.queries.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
		ID:        user.ID,
		Username:  req.Username,
		Email:     req.Email,
		FullName:  strings.TrimSpace(req.FullName),
		Avatar:    strings.TrimSpace(req.Avatar),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating profile", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to update profile")
		return
	}

	updated, err := h.queries.GetUserByID(r.Context(), user.ID)
	if err != nil {
		WriteInternalError(w, "Failed to load updated profile")
		return
	}

	h.activity.Record(r.Context(), &user.ID, model.ActionProfileUpdate, "Updated profile", clientIP(r), r.UserAgent())
	WriteSuccess(w, publicUser(updated), nil)
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// ChangePassword verifies the current password and stores a new hash.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.NewPassword) < MinPasswordLength {
		WriteValidationError(w, map[string]string{
			"new_password": "Password must be at least 6 characters",
		})
		return
	}

	ok, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !ok {
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Current password is incorrect", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		slog.Error("hashing new password", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to change password")
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), user.ID, hash, time.Now()); err != nil {
		slog.Error("storing new password", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to change password")
		return
	}

	h.activity.Record(r.Context(), &user.ID, model.ActionPasswordChange, "Changed password", clientIP(r), r.UserAgent())
	WriteSuccess(w, map[string]string{"message": "Password changed"}, nil)
}
