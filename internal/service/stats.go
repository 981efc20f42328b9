// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
)

// recentActivityLimit is how many entries the dashboard shows.
const recentActivityLimit = 5

// DashboardStats aggregates the counters shown on the admin dashboard.
type DashboardStats struct {
	ActiveServices    int64               `json:"active_services"`
	TotalUsers        int64               `json:"total_users"`
	TotalMedia        int64               `json:"total_media"`
	UnreadSubmissions int64               `json:"unread_submissions"`
	TotalActivities   int64               `json:"total_activities"`
	RecentActivity    []model.ActivityLog `json:"recent_activity"`
}

// StatsService computes dashboard statistics.
type StatsService struct {
	queries *store.Queries
}

// NewStatsService creates a new stats service.
func NewStatsService(db *sql.DB) *StatsService {
	return &StatsService{queries: store.New(db)}
}

// Dashboard returns the current dashboard counters and recent activity.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.ActiveServices, err = s.queries.CountActiveServices(ctx); err != nil {
		return nil, fmt.Errorf("counting services: %w", err)
	}
	if stats.TotalUsers, err = s.queries.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if stats.TotalMedia, err = s.queries.CountMedia(ctx); err != nil {
		return nil, fmt.Errorf("counting media: %w", err)
	}
	if stats.UnreadSubmissions, err = s.queries.CountUnreadSubmissions(ctx); err != nil {
		return nil, fmt.Errorf("counting submissions: %w", err)
	}
	if stats.TotalActivities, err = s.queries.CountActivityLogs(ctx); err != nil {
		return nil, fmt.Errorf("counting activity: %w", err)
	}

	stats.RecentActivity, err = s.queries.ListRecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent activity: %w", err)
	}
	if stats.RecentActivity == nil {
		stats.RecentActivity = []model.ActivityLog{}
	}

	return stats, nil
}
