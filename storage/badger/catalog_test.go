package badger

import (
	"context"
	"testing"

	"github.com/poiesic/datascout/core"
)

func testTableRecord(sourceFile, title string) *core.TableRecord {
	return &core.TableRecord{
		SealID:     42,
		DatasetID:  "sales",
		Location:   "warehouse.sales." + title,
		Title:      title,
		Keywords:   []string{"commerce"},
		Columns:    []core.Column{{Name: "id", Datatype: "INT", Required: true}},
		SourceFile: sourceFile,
		SourceType: core.SourceTypeAVS,
	}
}

func TestCatalogBasics(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	record := testTableRecord("orders.yaml", "Customer Orders")
	if err := repo.AddTableRecords(ctx, record); err != nil {
		t.Fatalf("Failed to add table record: %v", err)
	}

	desc := &core.DescriptionRecord{
		TableName:  "orders",
		Purpose:    "Tracks storefront purchases",
		SourceFile: "orders.txt",
		SourceType: core.SourceTypeAVS,
	}
	if err := repo.AddDescriptionRecords(ctx, desc); err != nil {
		t.Fatalf("Failed to add description record: %v", err)
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table record, got %d", len(tables))
	}
	if tables[0].Title != "Customer Orders" {
		t.Fatalf("Expected 'Customer Orders', got '%s'", tables[0].Title)
	}
	if len(tables[0].Columns) != 1 || tables[0].Columns[0].Name != "id" {
		t.Fatalf("Columns did not round-trip: %+v", tables[0].Columns)
	}

	descs, err := repo.DescriptionRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read description records: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("Expected 1 description record, got %d", len(descs))
	}
	if descs[0].Purpose != "Tracks storefront purchases" {
		t.Fatalf("Unexpected purpose: '%s'", descs[0].Purpose)
	}
}

func TestCatalogImportOrder(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	// Insert in non-alphabetical order; reads must preserve it.
	files := []string{"zebra.yaml", "aardvark.yaml", "middle.yaml"}
	for _, f := range files {
		if err := repo.AddTableRecords(ctx, testTableRecord(f, f)); err != nil {
			t.Fatalf("Failed to add %s: %v", f, err)
		}
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != len(files) {
		t.Fatalf("Expected %d records, got %d", len(files), len(tables))
	}
	for i, f := range files {
		if tables[i].SourceFile != f {
			t.Fatalf("Position %d: expected %s, got %s", i, f, tables[i].SourceFile)
		}
	}
}

func TestCatalogRewriteKeepsPosition(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	if err := repo.AddTableRecords(ctx,
		testTableRecord("orders.yaml", "Orders v1"),
		testTableRecord("employees.yaml", "Employees")); err != nil {
		t.Fatalf("Failed to add records: %v", err)
	}

	// Re-import the first file with updated content.
	if err := repo.AddTableRecords(ctx, testTableRecord("orders.yaml", "Orders v2")); err != nil {
		t.Fatalf("Failed to rewrite record: %v", err)
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 records after rewrite, got %d", len(tables))
	}
	if tables[0].Title != "Orders v2" {
		t.Fatalf("Expected rewritten title at original position, got '%s'", tables[0].Title)
	}
	if tables[1].SourceFile != "employees.yaml" {
		t.Fatalf("Expected employees.yaml second, got '%s'", tables[1].SourceFile)
	}
}

func TestCatalogSourceTypeIdentity(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	avs := testTableRecord("orders.yaml", "AVS Orders")
	dlvs := testTableRecord("orders.yaml", "DLVS Orders")
	dlvs.SourceType = core.SourceTypeDLVS

	if err := repo.AddTableRecords(ctx, avs, dlvs); err != nil {
		t.Fatalf("Failed to add records: %v", err)
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Same file under different source types must store separately, got %d records", len(tables))
	}
}

func TestCatalogReplaceAll(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	if err := repo.AddTableRecords(ctx, testTableRecord("old.yaml", "Old")); err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	newTables := []*core.TableRecord{
		testTableRecord("first.yaml", "First"),
		testTableRecord("second.yaml", "Second"),
	}
	newDescs := []*core.DescriptionRecord{
		{TableName: "first", SourceFile: "first.txt", SourceType: core.SourceTypeDLVS},
	}
	if err := repo.ReplaceAll(ctx, newTables, newDescs); err != nil {
		t.Fatalf("Failed to replace snapshot: %v", err)
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Expected 2 records after replace, got %d", len(tables))
	}
	if tables[0].SourceFile != "first.yaml" || tables[1].SourceFile != "second.yaml" {
		t.Fatalf("Unexpected order after replace: %s, %s", tables[0].SourceFile, tables[1].SourceFile)
	}

	descs, err := repo.DescriptionRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read description records: %v", err)
	}
	if len(descs) != 1 || descs[0].TableName != "first" {
		t.Fatalf("Unexpected descriptions after replace: %+v", descs)
	}
}

func TestCatalogValidation(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	bad := testTableRecord("", "No Source")
	if err := repo.AddTableRecords(ctx, bad); err == nil {
		t.Fatal("Expected error for record without source file")
	}

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 0 {
		t.Fatalf("Rejected record must not be stored, got %d records", len(tables))
	}
}

func TestCatalogEmpty(t *testing.T) {
	repo, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	tables, err := repo.TableRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read table records: %v", err)
	}
	if len(tables) != 0 {
		t.Fatalf("Expected empty snapshot, got %d records", len(tables))
	}

	descs, err := repo.DescriptionRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to read description records: %v", err)
	}
	if len(descs) != 0 {
		t.Fatalf("Expected empty snapshot, got %d records", len(descs))
	}
}
