package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/griphyn/agent-backend/pkg/migrate"
)

func writeMigration(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestValidateDirReportsEveryBadFile(t *testing.T) {
	dir := t.TempDir()

	writeMigration(t, dir, "bad-name.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20260101000000_missing_down.sql", "-- +goose Up\nCREATE TABLE t (id INT);\n")
	writeMigration(t, dir, "20260102000000_ok.sql", "-- +goose Up\nCREATE TABLE u (id INT);\n-- +goose Down\nDROP TABLE u;\n")

	err := migrate.ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "bad-name.sql") {
		t.Errorf("missing filename error in %q", msg)
	}
	if !strings.Contains(msg, "20260101000000_missing_down.sql") {
		t.Errorf("missing goose Down error in %q", msg)
	}
}

func TestValidateDirRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()

	writeMigration(t, dir, "20260101000000_first.sql", "-- +goose Up\n-- +goose Down\n")
	writeMigration(t, dir, "20260101000000_second.sql", "-- +goose Up\n-- +goose Down\n")

	err := migrate.ValidateDir(dir)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}
