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

const serviceColumns = `id, category_id, title, description, full_description, image, link, is_coming_soon, display_order, is_active, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (model.Service, error) {
	var s model.Service
	err := row.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Description, &s.FullDescription,
		&s.Image, &s.Link, &s.IsComingSoon, &s.DisplayOrder, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) queryServices(ctx context.Context, query string, args ...any) ([]model.Service, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying services: %w", err)
	}
	defer rows.Close()

	services := make([]model.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// ListServices returns all services ordered by display order.
func (q *Queries) ListServices(ctx context.Context) ([]model.Service, error) {
	return q.queryServices(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY display_order, id`)
}

// ListActiveServices returns active services ordered by display order.
func (q *Queries) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	return q.queryServices(ctx, `SELECT `+serviceColumns+` FROM services WHERE is_active = 1 ORDER BY display_order, id`)
}

// GetServiceByID fetches a single service.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (model.Service, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	return scanService(row)
}

// CountActiveServices returns the number of active services.
func (q *Queries) CountActiveServices(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services WHERE is_active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting active services: %w", err)
	}
	return count, nil
}

// CreateServiceParams holds parameters for CreateService.
type CreateServiceParams struct {
	CategoryID      sql.NullInt64
	Title           string
	Description     string
	FullDescription string
	Image           string
	Link            string
	IsComingSoon    bool
	DisplayOrder    int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateService inserts a new service.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (model.Service, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO services (category_id, title, description, full_description, image, link, is_coming_soon, display_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.CategoryID, arg.Title, arg.Description, arg.FullDescription, arg.Image,
		arg.Link, arg.IsComingSoon, arg.DisplayOrder, arg.IsActive, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Service{}, fmt.Errorf("inserting service: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Service{}, fmt.Errorf("getting service id: %w", err)
	}
	return q.GetServiceByID(ctx, id)
}

// UpdateServiceParams holds parameters for UpdateService.
type UpdateServiceParams struct {
	ID              int64
	CategoryID      sql.NullInt64
	Title           string
	Description     string
	FullDescription string
	Image           string
	Link            string
	IsComingSoon    bool
	DisplayOrder    int64
	IsActive        bool
	UpdatedAt       time.Time
}

// UpdateService replaces all mutable fields of a service.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE services SET category_id = ?, title = ?, description = ?, full_description = ?,
			image = ?, link = ?, is_coming_soon = ?, display_order = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		arg.CategoryID, arg.Title, arg.Description, arg.FullDescription, arg.Image,
		arg.Link, arg.IsComingSoon, arg.DisplayOrder, arg.IsActive, arg.UpdatedAt, arg.ID)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
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

// DeleteService removes a service by id.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting service: %w", err)
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

// ListCategories returns all service categories ordered by sort order.
func (q *Queries) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, title, icon, color, bg_color, sort_order, created_at, updated_at
		FROM service_categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.ServiceCategory, 0)
	for rows.Next() {
		var c model.ServiceCategory
		if err := rows.Scan(&c.ID, &c.Title, &c.Icon, &c.Color, &c.BgColor,
			&c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListCategoriesWithServices returns categories with their active services
// nested, both levels ordered by sort order.
func (q *Queries) ListCategoriesWithServices(ctx context.Context) ([]model.CategoryWithServices, error) {
	categories, err := q.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	services, err := q.ListActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]model.Service)
	for _, s := range services {
		if s.CategoryID.Valid {
			byCategory[s.CategoryID.Int64] = append(byCategory[s.CategoryID.Int64], s)
		}
	}

	result := make([]model.CategoryWithServices, 0, len(categories))
	for _, c := range categories {
		grouped := byCategory[c.ID]
		if grouped == nil {
			grouped = make([]model.Service, 0)
		}
		result = append(result, model.CategoryWithServices{ServiceCategory: c, Services: grouped})
	}
	return result, nil
}

// ReorderItem pairs a service id with its new display order.
type ReorderItem struct {
	ID           int64 `json:"id"`
	DisplayOrder int64 `json:"display_order"`
}

// ReorderServices applies new display orders in a single transaction.
// Either every row moves or none do.
func ReorderServices(ctx context.Context, db *sql.DB, items []ReorderItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reorder transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `
			UPDATE services SET display_order = ?, updated_at = ? WHERE id = ?`,
			item.DisplayOrder, now, item.ID)
		if err != nil {
			return fmt.Errorf("reordering service %d: %w", item.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking reorder result: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("reordering service %d: %w", item.ID, sql.ErrNoRows)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}

// ReplaceCategoryInput is one category in a bulk editor save; services are
// nested in display order.
type ReplaceCategoryInput struct {
	ID       int64 // 0 = new category
	Title    string
	Icon     string
	Color    string
	BgColor  string
	Services []ReplaceServiceInput
}

// ReplaceServiceInput is one service in a bulk editor save.
type ReplaceServiceInput struct {
	ID              int64 // 0 = new service
	Title           string
	Description     string
	FullDescription string
	Image           string
	Link            string
	IsComingSoon    bool
	IsActive        bool
}

// ReplaceAllServices reconciles the full category/service tree against the
// incoming state in one transaction. Rows named by id are updated in place so
// existing ids stay stable; rows absent from the input are deleted; rows with
// id 0 are inserted. Sort orders follow input position.
func ReplaceAllServices(ctx context.Context, db *sql.DB, input []ReplaceCategoryInput) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	keptCategories := make([]int64, 0, len(input))
	keptServices := make([]int64, 0)

	for catIdx, cat := range input {
		var catID int64
		if cat.ID > 0 {
			res, err := tx.ExecContext(ctx, `
				UPDATE service_categories SET title = ?, icon = ?, color = ?, bg_color = ?, sort_order = ?, updated_at = ?
				WHERE id = ?`,
				cat.Title, cat.Icon, cat.Color, cat.BgColor, catIdx, now, cat.ID)
			if err != nil {
				return fmt.Errorf("updating category %d: %w", cat.ID, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("checking category update: %w", err)
			}
			if affected == 0 {
				return fmt.Errorf("updating category %d: %w", cat.ID, sql.ErrNoRows)
			}
			catID = cat.ID
		} else {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO service_categories (title, icon, color, bg_color, sort_order, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				cat.Title, cat.Icon, cat.Color, cat.BgColor, catIdx, now, now)
			if err != nil {
				return fmt.Errorf("inserting category %q: %w", cat.Title, err)
			}
			catID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("getting category id: %w", err)
			}
		}
		keptCategories = append(keptCategories, catID)

		for svcIdx, svc := range cat.Services {
			if svc.ID > 0 {
				res, err := tx.ExecContext(ctx, `
					UPDATE services SET category_id = ?, title = ?, description = ?, full_description = ?,
						image = ?, link = ?, is_coming_soon = ?, display_order = ?, is_active = ?, updated_at = ?
					WHERE id = ?`,
					catID, svc.Title, svc.Description, svc.FullDescription, svc.Image,
					svc.Link, svc.IsComingSoon, svcIdx, svc.IsActive, now, svc.ID)
				if err != nil {
					return fmt.Errorf("updating service %d: %w", svc.ID, err)
				}
				affected, err := res.RowsAffected()
				if err != nil {
					return fmt.Errorf("checking service update: %w", err)
				}
				if affected == 0 {
					return fmt.Errorf("updating service %d: %w", svc.ID, sql.ErrNoRows)
				}
				keptServices = append(keptServices, svc.ID)
			} else {
				res, err := tx.ExecContext(ctx, `
					INSERT INTO services (category_id, title, description, full_description, image, link, is_coming_soon, display_order, is_active, created_at, updated_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					catID, svc.Title, svc.Description, svc.FullDescription, svc.Image,
					svc.Link, svc.IsComingSoon, svcIdx, svc.IsActive, now, now)
				if err != nil {
					return fmt.Errorf("inserting service %q: %w", svc.Title, err)
				}
				svcID, err := res.LastInsertId()
				if err != nil {
					return fmt.Errorf("getting service id: %w", err)
				}
				keptServices = append(keptServices, svcID)
			}
		}
	}

	// Delete services absent from the input, then categories. Service deletes
	// run first so category cascades never race the kept set.
	if err := deleteAbsent(ctx, tx, "services", keptServices); err != nil {
		return err
	}
	if err := deleteAbsent(ctx, tx, "service_categories", keptCategories); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace: %w", err)
	}
	return nil
}

func deleteAbsent(ctx context.Context, tx *sql.Tx, table string, keep []int64) error {
	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
		return nil
	}

	placeholders := "?"
	args := []any{keep[0]}
	for _, id := range keep[1:] {
		placeholders += ", ?"
		args = append(args, id)
	}
	query := `DELETE FROM ` + table + ` WHERE id NOT IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("pruning %s: %w", table, err)
	}
	return nil
}
