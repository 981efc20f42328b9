// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/auth"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

func TestLoginSeededAdmin(t *testing.T) {
	db, h := testSetup(t)
	if err := store.Seed(context.Background(), db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	req := newJSONRequest(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`, nil)
	w := executeHandler(t, h.Login, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := unmarshalData[LoginResponse](t, w)
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User.Role != "admin" {
		t.Errorf("expected role admin, got %q", resp.User.Role)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("response body must not contain password fields")
	}
}

func TestLoginByEmail(t *testing.T) {
	db, h := testSetup(t)
	createTestUser(t, db, "dian", "editor")

	req := newJSONRequest(t, http.MethodPost, "/api/auth/login",
		`{"login":"DIAN@example.com","password":"secret123"}`, nil)
	w := executeHandler(t, h.Login, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for email login, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	db, h := testSetup(t)
	createTestUser(t, db, "active", "admin")

	inactive := createTestUser(t, db, "sleepy", "admin")
	if _, err := db.Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, inactive.ID); err != nil {
		t.Fatalf("failed to deactivate user: %v", err)
	}

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"active","password":"wrong"}`},
		{"unknown user", `{"username":"nobody","password":"secret123"}`},
		{"inactive user", `{"username":"sleepy","password":"secret123"}`},
	}

	var firstBody string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/auth/login", tt.body, nil)
			w := executeHandler(t, h.Login, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if detail := unmarshalError(t, w); detail.Code != "invalid_credentials" {
				t.Errorf("expected invalid_credentials, got %q", detail.Code)
			}
			if firstBody == "" {
				firstBody = w.Body.String()
			} else if w.Body.String() != firstBody {
				t.Error("failure responses must be indistinguishable")
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/auth/login", `{"username":""}`, nil)
	w := executeHandler(t, h.Login, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestLoginRehashesLegacyBcrypt(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "legacy", "admin")

	legacyHash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to generate bcrypt hash: %v", err)
	}
	if _, err := db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, string(legacyHash), user.ID); err != nil {
		t.Fatalf("failed to store legacy hash: %v", err)
	}

	req := newJSONRequest(t, http.MethodPost, "/api/auth/login",
		`{"username":"legacy","password":"secret123"}`, nil)
	w := executeHandler(t, h.Login, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated, err := store.New(db).GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if auth.IsBcryptHash(updated.PasswordHash) {
		t.Error("expected the bcrypt hash to be upgraded to argon2id")
	}
	if ok, _ := auth.CheckPassword("secret123", updated.PasswordHash); !ok {
		t.Error("upgraded hash must still verify the password")
	}
}

func TestMe(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "carla", "editor")

	req := withUser(newGetRequest(t, "/api/auth/me", nil), user)
	w := executeHandler(t, h.Me, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	info := unmarshalData[UserInfo](t, w)
	if info.ID != user.ID || info.Username != "carla" || info.Role != "editor" {
		t.Errorf("unexpected user info: %+v", info)
	}
}

func TestLogoutRecordsActivity(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "leaver", "admin")

	req := withUser(newJSONRequest(t, http.MethodPost, "/api/auth/logout", "", nil), user)
	w := executeHandler(t, h.Logout, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	logs, err := store.New(db).ListActivityLogs(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("failed to list activity logs: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "logout" {
		t.Fatalf("expected one logout entry, got %+v", logs)
	}
}

func TestUpdateProfile(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "renate", "admin")

	req := withUser(newJSONRequest(t, http.MethodPut, "/api/auth/profile",
		`{"username":"renate","email":"Renate@Example.COM","full_name":"Renate Example"}`, nil), user)
	w := executeHandler(t, h.UpdateProfile, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	info := unmarshalData[UserInfo](t, w)
	if info.Email != "renate@example.com" {
		t.Errorf("expected lowercased email, got %q", info.Email)
	}
	if info.FullName != "Renate Example" {
		t.Errorf("expected updated full name, got %q", info.FullName)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "val", "admin")

	req := withUser(newJSONRequest(t, http.MethodPut, "/api/auth/profile",
		`{"username":"","email":"not-an-email"}`, nil), user)
	w := executeHandler(t, h.UpdateProfile, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	db, h := testSetup(t)
	user := createTestUser(t, db, "rotate", "admin")

	t.Run("wrong current password", func(t *testing.T) {
		req := withUser(newJSONRequest(t, http.MethodPut, "/api/auth/password",
			`{"current_password":"nope","new_password":"brand-new-pw"}`, nil), user)
		w := executeHandler(t, h.ChangePassword, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("too short", func(t *testing.T) {
		req := withUser(newJSONRequest(t, http.MethodPut, "/api/auth/password",
			`{"current_password":"secret123","new_password":"abc"}`, nil), user)
		w := executeHandler(t, h.ChangePassword, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := withUser(newJSONRequest(t, http.MethodPut, "/api/auth/password",
			`{"current_password":"secret123","new_password":"brand-new-pw"}`, nil), user)
		w := executeHandler(t, h.ChangePassword, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		updated, err := store.New(db).GetUserByID(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("failed to reload user: %v", err)
		}
		if ok, _ := auth.CheckPassword("brand-new-pw", updated.PasswordHash); !ok {
			t.Error("new password must verify after the change")
		}
	})
}
