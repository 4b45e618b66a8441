package repository

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/deppfellow/go-items/internal/config"
	"github.com/deppfellow/go-items/internal/database"
	"github.com/deppfellow/go-items/internal/model"
	"github.com/rs/zerolog"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestDatabase opens a migrated SQLite file inside t.TempDir().
func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "items.db"),
			MaxOpenConns: 4,
			MaxIdleConns: 2,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(context.Background(), &logger, db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestRepo(t *testing.T) *SQLiteItemRepository {
	t.Helper()
	return NewSQLiteItemRepository(newTestDatabase(t).SQL)
}

func strPtr(s string) *string {
	return &s
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

// ============================================================================
// CRUD
// ============================================================================

func TestSQLiteCreateAndGetItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateItem(ctx, "Kitty", strPtr("Cute cat"))
	assertNoError(t, err)

	if created.ID <= 0 {
		t.Fatalf("expected a positive id, got %d", created.ID)
	}
	assertEqual(t, "Kitty", created.Name)
	assertEqual(t, strPtr("Cute cat"), created.Description)

	fetched, err := repo.GetItemByID(ctx, created.ID)
	assertNoError(t, err)
	assertEqual(t, created, fetched)
}

func TestSQLiteCreateItemWithoutDescription(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateItem(ctx, "", nil)
	assertNoError(t, err)

	fetched, err := repo.GetItemByID(ctx, created.ID)
	assertNoError(t, err)

	assertEqual(t, "", fetched.Name)
	if fetched.Description != nil {
		t.Fatalf("expected nil description, got %q", *fetched.Description)
	}
}

func TestSQLiteListItems(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	items, err := repo.ListItems(ctx)
	assertNoError(t, err)
	if items == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	assertEqual(t, 0, len(items))

	first, err := repo.CreateItem(ctx, "first", nil)
	assertNoError(t, err)
	second, err := repo.CreateItem(ctx, "second", strPtr("two"))
	assertNoError(t, err)

	items, err = repo.ListItems(ctx)
	assertNoError(t, err)
	assertEqual(t, []model.Item{*first, *second}, items)
}

func TestSQLiteUpdateItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	target, err := repo.CreateItem(ctx, "Kitty2", strPtr("Another cat"))
	assertNoError(t, err)
	other, err := repo.CreateItem(ctx, "Other", strPtr("Untouched"))
	assertNoError(t, err)

	updated, err := repo.UpdateItem(ctx, target.ID, "KittyUpdated", strPtr("Updated cat"))
	assertNoError(t, err)
	assertEqual(t, &model.Item{ID: target.ID, Name: "KittyUpdated", Description: strPtr("Updated cat")}, updated)

	// Description is replaced wholesale, including back to null.
	cleared, err := repo.UpdateItem(ctx, target.ID, "KittyUpdated", nil)
	assertNoError(t, err)
	if cleared.Description != nil {
		t.Fatalf("expected nil description after update, got %q", *cleared.Description)
	}

	stillThere, err := repo.GetItemByID(ctx, other.ID)
	assertNoError(t, err)
	assertEqual(t, other, stillThere)
}

func TestSQLiteDeleteItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	item, err := repo.CreateItem(ctx, "Kitty", nil)
	assertNoError(t, err)

	assertNoError(t, repo.DeleteItem(ctx, item.ID))

	_, err = repo.GetItemByID(ctx, item.ID)
	assertNotFound(t, err)

	items, err := repo.ListItems(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, len(items))

	// A second delete of the same id is a miss.
	assertNotFound(t, repo.DeleteItem(ctx, item.ID))
}

// ============================================================================
// Not found
// ============================================================================

func TestSQLiteMissingItem(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	existing, err := repo.CreateItem(ctx, "Kitty", strPtr("Cute cat"))
	assertNoError(t, err)
	missing := existing.ID + 1

	tests := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := repo.GetItemByID(ctx, missing); return err }},
		{"update", func() error { _, err := repo.UpdateItem(ctx, missing, "x", nil); return err }},
		{"delete", func() error { return repo.DeleteItem(ctx, missing) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNotFound(t, tt.call())
		})
	}

	items, err := repo.ListItems(ctx)
	assertNoError(t, err)
	assertEqual(t, []model.Item{*existing}, items)
}

// ============================================================================
// Identity
// ============================================================================

func TestSQLiteIDsAreNeverReused(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.CreateItem(ctx, "first", nil)
	assertNoError(t, err)
	second, err := repo.CreateItem(ctx, "second", nil)
	assertNoError(t, err)
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}

	assertNoError(t, repo.DeleteItem(ctx, second.ID))

	third, err := repo.CreateItem(ctx, "third", nil)
	assertNoError(t, err)
	if third.ID <= second.ID {
		t.Fatalf("expected id greater than deleted id %d, got %d", second.ID, third.ID)
	}
}

func TestSQLiteConcurrentCreates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const workers = 8

	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := repo.CreateItem(ctx, "concurrent", nil)
			if err != nil {
				errs <- err
				return
			}
			ids <- item.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent create failed: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d handed out twice", id)
		}
		seen[id] = true
	}
	assertEqual(t, workers, len(seen))
}

func TestSQLiteCanceledContext(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.ListItems(ctx); err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}
