package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SteNicholas/hudi/catalog"
	"github.com/SteNicholas/hudi/catalog/sqlite"
	"github.com/SteNicholas/hudi/schema"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	dir := t.TempDir()
	store, err := sqlite.Open(context.Background(), filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cat := catalog.New(store)
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func initialSchema() *schema.Schema {
	return schema.NewSchema(0,
		schema.Field{ID: 0, Name: "id", Type: schema.Long, Doc: "record id"},
		schema.Field{ID: 1, Optional: true, Name: "name", Type: schema.String},
		schema.Field{ID: 2, Optional: true, Name: "age", Type: schema.Int},
	)
}

func TestInitAndGet_SQLite(t *testing.T) {
	cat := newCatalog(t)
	ctx := context.Background()

	v, err := cat.Init(ctx, initialSchema())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if v != 1 {
		t.Fatalf("initial version = %d, want 1", v)
	}

	got, err := cat.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VersionID() != 1 {
		t.Errorf("VersionID = %d, want 1", got.VersionID())
	}
	if _, ok := got.FindFieldByName("name"); !ok {
		t.Error("name missing from stored schema")
	}

	_, err = cat.Get(ctx, 99)
	if !schema.IsKind(err, schema.ErrNotFound) {
		t.Fatalf("Get(99) err = %v, want not_found", err)
	}
}

func TestEvolveAndHistory_SQLite(t *testing.T) {
	cat := newCatalog(t)
	ctx := context.Background()

	if _, err := cat.Init(ctx, initialSchema()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	base, err := cat.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	add := schema.NewColumnAddChange(base)
	if err := add.AddColumn("email", schema.String, "contact address", nil); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	next, err := schema.ApplyTableChanges(base, add)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	v, err := cat.Save(ctx, next)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v != 2 {
		t.Fatalf("saved version = %d, want 2", v)
	}

	latest, err := cat.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.VersionID() != 2 {
		t.Errorf("latest VersionID = %d, want 2", latest.VersionID())
	}
	if _, ok := latest.FindFieldByName("email"); !ok {
		t.Error("email missing from latest version")
	}
	if latest.MaxColumnID() != base.MaxColumnID()+1 {
		t.Errorf("MaxColumnID = %d, want %d", latest.MaxColumnID(), base.MaxColumnID()+1)
	}

	// version 1 is untouched by the evolution
	v1, err := cat.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if _, ok := v1.FindFieldByName("email"); ok {
		t.Error("email leaked into version 1")
	}

	entries, err := cat.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("history length = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Version != int64(i+1) {
			t.Errorf("entry %d version = %d, want %d", i, e.Version, i+1)
		}
		if e.Checksum == 0 || len(e.SchemaJSON) == 0 || e.CreatedAt.IsZero() {
			t.Errorf("entry %d incomplete: %+v", i, e)
		}
	}
}

func TestChecksumDetectsCorruption_SQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	ctx := context.Background()

	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	cat := catalog.New(store)
	if _, err := cat.Init(ctx, initialSchema()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// flip a stored payload behind the catalog's back
	if _, err := store.DB().ExecContext(ctx,
		`UPDATE schema_versions SET payload = replace(payload, '"name"', '"nome"') WHERE version = 1`); err != nil {
		t.Fatalf("corrupt payload: %v", err)
	}

	_, err = cat.Get(ctx, 1)
	if !schema.IsKind(err, schema.ErrIO) {
		t.Fatalf("Get err = %v, want io error", err)
	}
	_ = cat.Close()
}
