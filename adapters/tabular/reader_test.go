package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"vitrine/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// TestReaderProjection tests column projection, reordering and trimming
func TestReaderProjection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.csv",
		"extra, order_id ,customer_state\nx,O1, SP \ny,O2,RJ\n")

	e, err := NewReader().Read(path, []string{"order_id", "customer_state"})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if e.File != "orders.csv" {
		t.Errorf("Expected the base name, got %s", e.File)
	}
	if len(e.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(e.Rows))
	}
	if e.Col("order_id") != 0 || e.Col("customer_state") != 1 {
		t.Error("Expected the projection in required order")
	}
	if e.Col("extra") != -1 {
		t.Error("Expected unprojected columns to be unknown")
	}
	if e.Rows[0][0] != "O1" || e.Rows[0][1] != "SP" {
		t.Errorf("Expected trimmed cells O1/SP, got %q/%q", e.Rows[0][0], e.Rows[0][1])
	}
}

// TestReaderMissingColumn tests the error for an absent required column
func TestReaderMissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.csv", "order_id\nO1\n")

	_, err := NewReader().Read(path, []string{"order_id", "customer_state"})
	if err == nil {
		t.Fatal("Expected an error for a missing column")
	}
	if !errors.HasCode(err, errors.CodeColumnMissing) {
		t.Errorf("Expected code %s, got %s", errors.CodeColumnMissing, errors.GetCode(err))
	}
}

// TestReaderMissingFile tests the error for an absent extract
func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader().Read(filepath.Join(t.TempDir(), "nope.csv"), []string{"order_id"})
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
	if !errors.HasCode(err, errors.CodeDataLoadFailed) {
		t.Errorf("Expected code %s, got %s", errors.CodeDataLoadFailed, errors.GetCode(err))
	}
}

// TestReaderUnsupportedType tests the error for an unknown extension
func TestReaderUnsupportedType(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.txt", "order_id\nO1\n")

	_, err := NewReader().Read(path, []string{"order_id"})
	if err == nil {
		t.Fatal("Expected an error for an unsupported file type")
	}
	if !errors.HasCode(err, errors.CodeDataLoadFailed) {
		t.Errorf("Expected code %s, got %s", errors.CodeDataLoadFailed, errors.GetCode(err))
	}
}

// TestReaderEmptyFile tests the error for a file without a header row
func TestReaderEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.csv", "")

	_, err := NewReader().Read(path, []string{"order_id"})
	if err == nil {
		t.Fatal("Expected an error for an empty file")
	}
	if !errors.HasCode(err, errors.CodeDataLoadFailed) {
		t.Errorf("Expected code %s, got %s", errors.CodeDataLoadFailed, errors.GetCode(err))
	}
}
