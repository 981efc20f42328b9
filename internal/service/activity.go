// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store layer:
// activity logging for the audit trail, media upload processing, and
// dashboard statistics.
package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/mileusna/useragent"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/geoip"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/store"
	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/util"
)

// ActivityService records audit trail entries enriched with client
// country and a condensed user agent.
type ActivityService struct {
	queries *store.Queries
	geo     *geoip.Lookup
}

// NewActivityService creates a new activity service. geo may be nil
// when GeoIP lookups are not configured.
func NewActivityService(db *sql.DB, geo *geoip.Lookup) *ActivityService {
	return &ActivityService{
		queries: store.New(db),
		geo:     geo,
	}
}

// Record appends an activity log entry. Logging failures are reported
// but never propagated: an audit write must not break the operation it
// describes.
func (s *ActivityService) Record(ctx context.Context, userID *int64, action, description, ip, rawUserAgent string) {
	country := ""
	if s.geo != nil {
		country = s.geo.LookupCountry(ip)
	}

	err := s.queries.CreateActivityLog(ctx, store.CreateActivityLogParams{
		UserID:      util.NullInt64FromPtr(userID),
		Action:      action,
		Description: description,
		IPAddress:   ip,
		Country:     country,
		UserAgent:   condenseUserAgent(rawUserAgent),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to record activity", "error", err, "action", action)
	}
}

// RecordLogin logs a successful login.
func (s *ActivityService) RecordLogin(ctx context.Context, user *model.User, ip, rawUserAgent string) {
	s.Record(ctx, &user.ID, model.ActionLogin, "User "+user.Username+" logged in", ip, rawUserAgent)
}

// RecordLogout logs a logout.
func (s *ActivityService) RecordLogout(ctx context.Context, user *model.User, ip, rawUserAgent string) {
	s.Record(ctx, &user.ID, model.ActionLogout, "User "+user.Username+" logged out", ip, rawUserAgent)
}

// DeleteOlderThan removes activity log entries past the retention
// period. Returns the number of removed rows.
func (s *ActivityService) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.queries.DeleteActivityLogsBefore(ctx, cutoff)
}

// condenseUserAgent reduces a raw User-Agent header to "Browser x.y on OS"
// so the audit trail stays readable. Unrecognized agents are stored
// truncated rather than dropped.
func condenseUserAgent(raw string) string {
	if raw == "" {
		return ""
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" {
		if len(raw) > 120 {
			return raw[:120]
		}
		return raw
	}

	out := ua.Name
	if ua.Version != "" {
		out += " " + ua.Version
	}
	if ua.OS != "" {
		out += " on " + ua.OS
	}
	return out
}
