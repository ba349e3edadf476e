package migrate

import (
	"os"
	"strings"
	"testing"
)

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Product Ratings")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_product_ratings.sql") {
		t.Fatalf("unexpected migration filename: %s", path)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(body), "-- +goose Up") || !strings.Contains(string(body), "-- +goose Down") {
		t.Fatalf("migration template missing goose directives:\n%s", body)
	}
}

func TestCreateSQLMigrationRejectsBadNames(t *testing.T) {
	dir := t.TempDir()

	if _, err := CreateSQLMigration(dir, ""); err == nil {
		t.Fatalf("empty name must be rejected")
	}
	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatalf("symbol-only name must be rejected")
	}
	if _, err := CreateSQLMigration("", "add_products"); err == nil {
		t.Fatalf("empty dir must be rejected")
	}
}
