package store

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

func createTestCategory(t *testing.T, db *sql.DB, title string, sortOrder int64) int64 {
	t.Helper()

	now := time.Now()
	res, err := db.Exec(`
		INSERT INTO service_categories (title, icon, color, bg_color, sort_order, created_at, updated_at)
		VALUES (?, '', '', '', ?, ?, ?)`, title, sortOrder, now, now)
	if err != nil {
		t.Fatalf("inserting category: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("category id: %v", err)
	}
	return id
}

func createTestService(t *testing.T, q *Queries, title string, order int64, active bool, categoryID int64) int64 {
	t.Helper()

	now := time.Now()
	var catID sql.NullInt64
	if categoryID > 0 {
		catID = sql.NullInt64{Int64: categoryID, Valid: true}
	}
	svc, err := q.CreateService(context.Background(), CreateServiceParams{
		CategoryID:   catID,
		Title:        title,
		Description:  "desc",
		DisplayOrder: order,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	return svc.ID
}

func TestListServices_Ordering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	createTestService(t, q, "third", 2, true, 0)
	createTestService(t, q, "first", 0, false, 0)
	createTestService(t, q, "second", 1, true, 0)

	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("got %d services, want 3", len(services))
	}
	for i, want := range []string{"first", "second", "third"} {
		if services[i].Title != want {
			t.Errorf("services[%d].Title = %q, want %q", i, services[i].Title, want)
		}
	}

	active, err := q.ListActiveServices(ctx)
	if err != nil {
		t.Fatalf("ListActiveServices: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active services, want 2", len(active))
	}
}

func TestUpdateService_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	err := q.UpdateService(context.Background(), UpdateServiceParams{ID: 999, Title: "x", UpdatedAt: time.Now()})
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestDeleteService(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	id := createTestService(t, q, "doomed", 0, true, 0)

	if err := q.DeleteService(ctx, id); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if _, err := q.GetServiceByID(ctx, id); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
	if err := q.DeleteService(ctx, id); err != sql.ErrNoRows {
		t.Errorf("second delete: expected sql.ErrNoRows, got %v", err)
	}
}

func TestReorderServices(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	a := createTestService(t, q, "a", 0, true, 0)
	b := createTestService(t, q, "b", 1, true, 0)
	c := createTestService(t, q, "c", 2, true, 0)

	err := ReorderServices(ctx, db, []ReorderItem{
		{ID: a, DisplayOrder: 2},
		{ID: b, DisplayOrder: 0},
		{ID: c, DisplayOrder: 1},
	})
	if err != nil {
		t.Fatalf("ReorderServices: %v", err)
	}

	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	for i, want := range []string{"b", "c", "a"} {
		if services[i].Title != want {
			t.Errorf("services[%d].Title = %q, want %q", i, services[i].Title, want)
		}
	}
}

func TestReorderServices_RollbackOnUnknownID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	a := createTestService(t, q, "a", 0, true, 0)
	b := createTestService(t, q, "b", 1, true, 0)

	err := ReorderServices(ctx, db, []ReorderItem{
		{ID: a, DisplayOrder: 1},
		{ID: 9999, DisplayOrder: 0}, // unknown id fails the whole batch
		{ID: b, DisplayOrder: 0},
	})
	if err == nil {
		t.Fatal("ReorderServices should fail on unknown id")
	}

	// Original order must be untouched
	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if services[0].Title != "a" || services[1].Title != "b" {
		t.Errorf("order changed despite rollback: %q, %q", services[0].Title, services[1].Title)
	}
}

func TestListCategoriesWithServices(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	webID := createTestCategory(t, db, "Web", 0)
	designID := createTestCategory(t, db, "Design", 1)

	createTestService(t, q, "active web", 0, true, webID)
	createTestService(t, q, "inactive web", 1, false, webID)
	createTestService(t, q, "uncategorized", 0, true, 0)

	grouped, err := q.ListCategoriesWithServices(ctx)
	if err != nil {
		t.Fatalf("ListCategoriesWithServices: %v", err)
	}
	if len(grouped) != 2 {
		t.Fatalf("got %d categories, want 2", len(grouped))
	}
	if grouped[0].Title != "Web" || grouped[1].Title != "Design" {
		t.Errorf("category order: %q, %q", grouped[0].Title, grouped[1].Title)
	}
	if len(grouped[0].Services) != 1 {
		t.Errorf("Web has %d services, want 1 (inactive excluded)", len(grouped[0].Services))
	}
	if len(grouped[1].Services) != 0 {
		t.Errorf("Design has %d services, want 0", len(grouped[1].Services))
	}
	_ = designID
}

func TestReplaceAllServices_PreservesIDs(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	catID := createTestCategory(t, db, "Old Name", 0)
	svcID := createTestService(t, q, "Old Service", 0, true, catID)

	err := ReplaceAllServices(ctx, db, []ReplaceCategoryInput{
		{
			ID:    catID,
			Title: "New Name",
			Services: []ReplaceServiceInput{
				{ID: svcID, Title: "Renamed Service", IsActive: true},
				{Title: "Brand New Service", IsActive: true},
			},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAllServices: %v", err)
	}

	// Existing ids survive the save
	svc, err := q.GetServiceByID(ctx, svcID)
	if err != nil {
		t.Fatalf("GetServiceByID: %v", err)
	}
	if svc.Title != "Renamed Service" {
		t.Errorf("Title = %q, want %q", svc.Title, "Renamed Service")
	}

	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != catID {
		t.Errorf("category id not preserved: %+v", categories)
	}
	if categories[0].Title != "New Name" {
		t.Errorf("category title = %q, want %q", categories[0].Title, "New Name")
	}

	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 2 {
		t.Errorf("got %d services, want 2", len(services))
	}
}

func TestReplaceAllServices_DeletesAbsentRows(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	keepCat := createTestCategory(t, db, "Keep", 0)
	dropCat := createTestCategory(t, db, "Drop", 1)
	keepSvc := createTestService(t, q, "keep", 0, true, keepCat)
	createTestService(t, q, "drop", 0, true, dropCat)

	err := ReplaceAllServices(ctx, db, []ReplaceCategoryInput{
		{
			ID:    keepCat,
			Title: "Keep",
			Services: []ReplaceServiceInput{
				{ID: keepSvc, Title: "keep", IsActive: true},
			},
		},
	})
	if err != nil {
		t.Fatalf("ReplaceAllServices: %v", err)
	}

	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(categories))
	}

	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 1 || services[0].ID != keepSvc {
		t.Errorf("services after replace: %+v", services)
	}
}

func TestReplaceAllServices_RollbackOnFailure(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	catID := createTestCategory(t, db, "Original", 0)
	svcID := createTestService(t, q, "original", 0, true, catID)

	err := ReplaceAllServices(ctx, db, []ReplaceCategoryInput{
		{
			ID:    catID,
			Title: "Changed",
			Services: []ReplaceServiceInput{
				{ID: svcID, Title: "changed", IsActive: true},
				{ID: 9999, Title: "ghost", IsActive: true}, // unknown id forces failure
			},
		},
	})
	if err == nil {
		t.Fatal("ReplaceAllServices should fail on unknown service id")
	}

	// Nothing may have changed
	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if categories[0].Title != "Original" {
		t.Errorf("category title = %q, want untouched %q", categories[0].Title, "Original")
	}
	svc, err := q.GetServiceByID(ctx, svcID)
	if err != nil {
		t.Fatalf("GetServiceByID: %v", err)
	}
	if svc.Title != "original" {
		t.Errorf("service title = %q, want untouched %q", svc.Title, "original")
	}
}

func TestReplaceAllServices_EmptyInputClearsAll(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	catID := createTestCategory(t, db, "Cat", 0)
	createTestService(t, q, "svc", 0, true, catID)

	if err := ReplaceAllServices(ctx, db, nil); err != nil {
		t.Fatalf("ReplaceAllServices: %v", err)
	}

	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("got %d categories, want 0", len(categories))
	}
	services, err := q.ListServices(ctx)
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(services) != 0 {
		t.Errorf("got %d services, want 0", len(services))
	}
}
