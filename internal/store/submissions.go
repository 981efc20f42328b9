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

// CreateSubmissionParams holds parameters for CreateSubmission.
type CreateSubmissionParams struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateSubmission stores a new contact form submission.
func (q *Queries) CreateSubmission(ctx context.Context, arg CreateSubmissionParams) (model.ContactSubmission, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (name, email, phone, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message, arg.CreatedAt)
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("inserting submission: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactSubmission{}, fmt.Errorf("getting submission id: %w", err)
	}
	return q.GetSubmissionByID(ctx, id)
}

const submissionColumns = `id, name, email, phone, subject, message, is_read, created_at`

func scanSubmission(row interface{ Scan(...any) error }) (model.ContactSubmission, error) {
	var s model.ContactSubmission
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message, &s.IsRead, &s.CreatedAt)
	return s, err
}

// GetSubmissionByID fetches a single submission.
func (q *Queries) GetSubmissionByID(ctx context.Context, id int64) (model.ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM contact_submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

// ListSubmissions returns a page of submissions, newest first.
func (q *Queries) ListSubmissions(ctx context.Context, limit, offset int64) ([]model.ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+submissionColumns+` FROM contact_submissions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]model.ContactSubmission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// CountSubmissions returns the total number of submissions.
func (q *Queries) CountSubmissions(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting submissions: %w", err)
	}
	return count, nil
}

// CountUnreadSubmissions returns how many submissions are still unread.
func (q *Queries) CountUnreadSubmissions(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions WHERE is_read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread submissions: %w", err)
	}
	return count, nil
}

// MarkSubmissionRead flags a submission as read.
func (q *Queries) MarkSubmissionRead(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `UPDATE contact_submissions SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking submission read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
