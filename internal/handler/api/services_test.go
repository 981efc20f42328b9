// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

func createTestCategory(t *testing.T, db *sql.DB, title string, sortOrder int64) int64 {
	t.Helper()
	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO service_categories (title, icon, color, bg_color, sort_order, created_at, updated_at)
		VALUES (?, 'code', '#fff', '#000', ?, ?, ?)`,
		title, sortOrder, now, now)
	if err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func createTestService(t *testing.T, db *sql.DB, categoryID int64, title string, order int64, active bool) model.Service {
	t.Helper()
	now := time.Now()
	svc, err := store.New(db).CreateService(context.Background(), store.CreateServiceParams{
		CategoryID:   sql.NullInt64{Int64: categoryID, Valid: categoryID != 0},
		Title:        title,
		Description:  "desc of " + title,
		DisplayOrder: order,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return svc
}

func TestListServicesFlatAndActive(t *testing.T) {
	db, h := testSetup(t)
	cat := createTestCategory(t, db, "Development", 1)
	createTestService(t, db, cat, "Web", 2, true)
	createTestService(t, db, cat, "Mobile", 1, true)
	createTestService(t, db, cat, "Legacy", 3, false)

	w := executeHandler(t, h.ListServicesFlat, newGetRequest(t, "/api/services/flat", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	flat, _ := unmarshalList[model.Service](t, w)
	if len(flat) != 3 {
		t.Fatalf("expected 3 services in the flat list, got %d", len(flat))
	}
	if flat[0].Title != "Mobile" || flat[1].Title != "Web" {
		t.Errorf("expected display order sorting, got %q then %q", flat[0].Title, flat[1].Title)
	}

	w = executeHandler(t, h.ListActiveServices, newGetRequest(t, "/api/services/active", nil))
	active, _ := unmarshalList[model.Service](t, w)
	if len(active) != 2 {
		t.Fatalf("expected 2 active services, got %d", len(active))
	}
}

func TestListServicesGrouped(t *testing.T) {
	db, h := testSetup(t)
	first := createTestCategory(t, db, "Development", 1)
	second := createTestCategory(t, db, "Design", 2)
	createTestService(t, db, first, "Web", 1, true)
	createTestService(t, db, second, "Branding", 1, true)
	createTestService(t, db, second, "Hidden", 2, false)

	w := executeHandler(t, h.ListServicesGrouped, newGetRequest(t, "/api/services", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	groups, _ := unmarshalList[model.CategoryWithServices](t, w)
	if len(groups) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(groups))
	}
	if groups[0].Title != "Development" {
		t.Errorf("expected sort_order grouping, got %q first", groups[0].Title)
	}
	if len(groups[1].Services) != 1 {
		t.Errorf("expected inactive services to be excluded, got %d", len(groups[1].Services))
	}
}

func TestCreateService(t *testing.T) {
	db, h := testSetup(t)
	cat := createTestCategory(t, db, "Development", 1)

	body := fmt.Sprintf(`{"category_id":%d,"title":"API build","description":"<b>bold</b><script>x</script>","is_active":true}`, cat)
	w := executeHandler(t, h.CreateService, newJSONRequest(t, http.MethodPost, "/api/services", body, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	svc := unmarshalData[model.Service](t, w)
	if svc.ID == 0 || svc.Title != "API build" {
		t.Errorf("unexpected service: %+v", svc)
	}
	if svc.Description != "<b>bold</b>" {
		t.Errorf("expected sanitized description, got %q", svc.Description)
	}
}

func TestCreateServiceValidation(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.CreateService, newJSONRequest(t, http.MethodPost, "/api/services", `{"title":""}`, nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestGetService(t *testing.T) {
	db, h := testSetup(t)
	svc := createTestService(t, db, 0, "Solo", 1, true)

	req := newGetRequest(t, "/api/services/1", map[string]string{"id": fmt.Sprint(svc.ID)})
	w := executeHandler(t, h.GetService, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = newGetRequest(t, "/api/services/999", map[string]string{"id": "999"})
	if w := executeHandler(t, h.GetService, req); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing service, got %d", w.Code)
	}

	req = newGetRequest(t, "/api/services/abc", map[string]string{"id": "abc"})
	if w := executeHandler(t, h.GetService, req); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a garbage id, got %d", w.Code)
	}
}

func TestUpdateService(t *testing.T) {
	db, h := testSetup(t)
	svc := createTestService(t, db, 0, "Before", 1, true)

	req := newJSONRequest(t, http.MethodPut, "/api/services/1",
		`{"title":"After","is_active":false}`, map[string]string{"id": fmt.Sprint(svc.ID)})
	w := executeHandler(t, h.UpdateService, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	updated := unmarshalData[model.Service](t, w)
	if updated.Title != "After" || updated.IsActive {
		t.Errorf("expected full replacement, got %+v", updated)
	}

	req = newJSONRequest(t, http.MethodPut, "/api/services/999",
		`{"title":"Ghost"}`, map[string]string{"id": "999"})
	if w := executeHandler(t, h.UpdateService, req); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing service, got %d", w.Code)
	}
}

func TestDeleteService(t *testing.T) {
	db, h := testSetup(t)
	svc := createTestService(t, db, 0, "Doomed", 1, true)

	req := newDeleteRequest(t, "/api/services/1", map[string]string{"id": fmt.Sprint(svc.ID)})
	if w := executeHandler(t, h.DeleteService, req); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if _, err := store.New(db).GetServiceByID(context.Background(), svc.ID); err != sql.ErrNoRows {
		t.Fatalf("expected the service row to be gone, got %v", err)
	}
}

func TestReorderServices(t *testing.T) {
	db, h := testSetup(t)
	first := createTestService(t, db, 0, "First", 1, true)
	second := createTestService(t, db, 0, "Second", 2, true)

	body := fmt.Sprintf(`{"items":[{"id":%d,"display_order":2},{"id":%d,"display_order":1}]}`, first.ID, second.ID)
	w := executeHandler(t, h.ReorderServices, newJSONRequest(t, http.MethodPut, "/api/services/reorder", body, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	services, err := store.New(db).ListServices(context.Background())
	if err != nil {
		t.Fatalf("failed to list services: %v", err)
	}
	if services[0].Title != "Second" || services[1].Title != "First" {
		t.Errorf("expected swapped order, got %q then %q", services[0].Title, services[1].Title)
	}
}

func TestReorderServicesUnknownIDRollsBack(t *testing.T) {
	db, h := testSetup(t)
	svc := createTestService(t, db, 0, "Only", 1, true)

	body := fmt.Sprintf(`{"items":[{"id":%d,"display_order":5},{"id":999,"display_order":1}]}`, svc.ID)
	w := executeHandler(t, h.ReorderServices, newJSONRequest(t, http.MethodPut, "/api/services/reorder", body, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown id, got %d", w.Code)
	}

	reloaded, err := store.New(db).GetServiceByID(context.Background(), svc.ID)
	if err != nil {
		t.Fatalf("failed to reload service: %v", err)
	}
	if reloaded.DisplayOrder != 1 {
		t.Errorf("expected the whole reorder to roll back, got order %d", reloaded.DisplayOrder)
	}
}

func TestReplaceAllServicesKeepsIDs(t *testing.T) {
	db, h := testSetup(t)
	cat := createTestCategory(t, db, "Development", 1)
	kept := createTestService(t, db, cat, "Kept", 1, true)
	createTestService(t, db, cat, "Dropped", 2, true)

	body := fmt.Sprintf(`{"categories":[{
		"id": %d,
		"title": "Development",
		"icon": "code",
		"services": [
			{"id": %d, "title": "Kept renamed", "is_active": true},
			{"id": 0, "title": "Brand new", "is_active": true}
		]
	}]}`, cat, kept.ID)
	w := executeHandler(t, h.ReplaceAllServices, newJSONRequest(t, http.MethodPut, "/api/services/replace-all", body, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	services, err := store.New(db).ListServices(context.Background())
	if err != nil {
		t.Fatalf("failed to list services: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services after replace, got %d", len(services))
	}
	byTitle := map[string]int64{}
	for _, s := range services {
		byTitle[s.Title] = s.ID
	}
	if byTitle["Kept renamed"] != kept.ID {
		t.Errorf("expected the existing service to keep id %d, got %d", kept.ID, byTitle["Kept renamed"])
	}
	if _, ok := byTitle["Dropped"]; ok {
		t.Error("expected the omitted service to be deleted")
	}
}

func TestReplaceAllServicesValidation(t *testing.T) {
	_, h := testSetup(t)

	body := `{"categories":[{"title":"","services":[]}]}`
	w := executeHandler(t, h.ReplaceAllServices, newJSONRequest(t, http.MethodPut, "/api/services/replace-all", body, nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a category without a title, got %d", w.Code)
	}
}

func TestServicesSectionRoundTrip(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.GetServicesSection, newGetRequest(t, "/api/services/section", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on an unseeded database, got %d", w.Code)
	}

	body := `{"section_label":"Services","title":"What we do","description":"Plenty."}`
	w = executeHandler(t, h.UpdateServicesSection, newJSONRequest(t, http.MethodPut, "/api/services/section", body, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	section := unmarshalData[model.ServicesSection](t, w)
	if section.Title != "What we do" {
		t.Errorf("expected the saved title, got %q", section.Title)
	}
}
