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

// CreateMediaParams holds parameters for CreateMedia.
type CreateMediaParams struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Path         string
	Width        sql.NullInt64
	Height       sql.NullInt64
	UploadedBy   sql.NullInt64
	CreatedAt    time.Time
}

// CreateMedia records an uploaded file.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (model.Media, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO media (filename, original_name, mime_type, size, path, width, height, uploaded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Filename, arg.OriginalName, arg.MimeType, arg.Size, arg.Path,
		arg.Width, arg.Height, arg.UploadedBy, arg.CreatedAt)
	if err != nil {
		return model.Media{}, fmt.Errorf("inserting media: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Media{}, fmt.Errorf("getting media id: %w", err)
	}
	return q.GetMediaByID(ctx, id)
}

const mediaColumns = `id, filename, original_name, mime_type, size, path, width, height, uploaded_by, created_at`

func scanMedia(row interface{ Scan(...any) error }) (model.Media, error) {
	var m model.Media
	err := row.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
		&m.Path, &m.Width, &m.Height, &m.UploadedBy, &m.CreatedAt)
	return m, err
}

// GetMediaByID fetches a media record.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

// MediaWithUploader joins a media record with its uploader's username.
type MediaWithUploader struct {
	model.Media
	UploaderName sql.NullString `json:"uploader_name"`
}

// ListMedia returns a page of media records, newest first, with the uploader
// username joined in.
func (q *Queries) ListMedia(ctx context.Context, limit, offset int64) ([]MediaWithUploader, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT m.id, m.filename, m.original_name, m.mime_type, m.size, m.path,
		       m.width, m.height, m.uploaded_by, m.created_at, u.username
		FROM media m
		LEFT JOIN users u ON u.id = m.uploaded_by
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying media: %w", err)
	}
	defer rows.Close()

	items := make([]MediaWithUploader, 0)
	for rows.Next() {
		var m MediaWithUploader
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
			&m.Path, &m.Width, &m.Height, &m.UploadedBy, &m.CreatedAt, &m.UploaderName); err != nil {
			return nil, fmt.Errorf("scanning media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CountMedia returns the total number of media records.
func (q *Queries) CountMedia(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting media: %w", err)
	}
	return count, nil
}

// DeleteMedia removes a media record by id.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
