// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

func TestStatsServiceDashboardEmpty(t *testing.T) {
	db := testDB(t)

	stats, err := NewStatsService(db).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.ActiveServices != 0 || stats.TotalMedia != 0 || stats.UnreadSubmissions != 0 {
		t.Errorf("expected zero counters, got %+v", stats)
	}
	if stats.RecentActivity == nil {
		t.Error("recent activity should be an empty slice, not nil")
	}
}

func TestStatsServiceDashboard(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db)
	ctx := context.Background()
	queries := store.New(db)

	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO service_categories (title, icon, color, bg_color, sort_order, created_at, updated_at)
		VALUES ('Consulting', '', '', '', 0, ?, ?)`, now, now)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	catID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("category id: %v", err)
	}
	for i, active := range []bool{true, true, false} {
		_, err := queries.CreateService(ctx, store.CreateServiceParams{
			CategoryID:   nullID(catID),
			Title:        "Service " + string(rune('A'+i)),
			IsActive:     active,
			DisplayOrder: int64(i),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			t.Fatalf("create service: %v", err)
		}
	}

	if _, err := queries.CreateSubmission(ctx, store.CreateSubmissionParams{
		Name: "Visitor", Email: "visitor@example.com", Message: "Hello", CreatedAt: now,
	}); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	for i := 0; i < 7; i++ {
		if err := queries.CreateActivityLog(ctx, store.CreateActivityLogParams{
			UserID:      nullID(user.ID),
			Action:      model.ActionLogin,
			Description: "entry",
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("create activity: %v", err)
		}
	}

	stats, err := NewStatsService(db).Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.ActiveServices != 2 {
		t.Errorf("active services = %d, want 2", stats.ActiveServices)
	}
	if stats.TotalUsers != 1 {
		t.Errorf("total users = %d, want 1", stats.TotalUsers)
	}
	if stats.UnreadSubmissions != 1 {
		t.Errorf("unread submissions = %d, want 1", stats.UnreadSubmissions)
	}
	if stats.TotalActivities != 7 {
		t.Errorf("total activities = %d, want 7", stats.TotalActivities)
	}
	if len(stats.RecentActivity) != 5 {
		t.Errorf("recent activity = %d entries, want 5", len(stats.RecentActivity))
	}
}
