// Copyright (c) 2025-2026 Hibiscus Efsya
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Faizpi/hibiscusefsya-landing-page-backend/internal/model"
)

// CreateActivityLogParams holds parameters for CreateActivityLog.
type CreateActivityLogParams struct {
	UserID      sql.NullInt64
	Action      string
	Description string
	IPAddress   string
	Country     string
	UserAgent   string
	CreatedAt   time.Time
}

// CreateActivityLog appends an audit trail entry.
func (q *Queries) CreateActivityLog(ctx context.Context, arg CreateActivityLogParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, action, description, ip_address, country, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.UserID, arg.Action, arg.Description, arg.IPAddress, arg.Country, arg.UserAgent, arg.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting activity log: %w", err)
	}
	return nil
}

// ListActivityLogs returns a page of activity entries, newest first, with the
// acting user's username joined in.
func (q *Queries) ListActivityLogs(ctx context.Context, limit, offset int64) ([]model.ActivityLog, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT a.id, a.user_id, a.action, a.description, a.ip_address, a.country, a.user_agent, a.created_at, u.username
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.ActivityLog, 0)
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Description,
			&l.IPAddress, &l.Country, &l.UserAgent, &l.CreatedAt, &l.Username); err != nil {
			return nil, fmt.Errorf("scanning activity log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountActivityLogs returns the total number of activity entries.
func (q *Queries) CountActivityLogs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting activity logs: %w", err)
	}
	return count, nil
}

// ListRecentActivity returns the newest n activity entries.
func (q *Queries) ListRecentActivity(ctx context.Context, n int64) ([]model.ActivityLog, error) {
	return q.ListActivityLogs(ctx, n, 0)
}

// DeleteActivityLogsBefore removes activity entries older than the cutoff and
// returns how many were deleted. Used by the retention sweep.
func (q *Queries) DeleteActivityLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM activity_logs WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old activity logs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking delete result: %w", err)
	}
	return affected, nil
}
