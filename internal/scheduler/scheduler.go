// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/service"
)

// retentionSchedule runs the activity log sweep nightly at 03:00.
const retentionSchedule = "0 3 * * *"

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	activity  *service.ActivityService
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// New creates a scheduler that prunes activity logs older than
// retentionDays.
func New(activity *service.ActivityService, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		activity:  activity,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		cron:      cron.New(),
		logger:    logger,
	}
}

// Start registers the nightly retention sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(retentionSchedule, func() {
		s.SweepActivityLogs(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		"jobs", len(s.cron.Entries()),
		"retention", s.retention,
	)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepActivityLogs deletes activity log entries past the retention
// window and logs a summary.
func (s *Scheduler) SweepActivityLogs(ctx context.Context) {
	deleted, err := s.activity.DeleteOlderThan(ctx, s.retention)
	if err != nil {
		s.logger.Error("activity log sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("activity log sweep finished",
			"deleted", deleted,
			"retention", s.retention,
		)
	}
}
