package etl

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const billingCSV = `customer_id,billing_amount,tax_amount
1,$100,10
2,$200,20
3,$300,30
4,$400,40
5,$500,50
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	path := writeFile(t, "billing_data.csv", billingCSV)

	got, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	wantCols := []string{"customer_id", "billing_amount", "tax_amount"}
	if !reflect.DeepEqual(got.Columns(), wantCols) {
		t.Errorf("columns = %v, want %v", got.Columns(), wantCols)
	}
	if got.Len() != 5 {
		t.Errorf("row count = %d, want 5", got.Len())
	}
	if cell, _ := got.Get(0, "billing_amount"); cell != "$100" {
		t.Errorf("first billing_amount = %q, want %q", cell, "$100")
	}
	if cell, _ := got.Get(4, "tax_amount"); cell != "50" {
		t.Errorf("last tax_amount = %q, want %q", cell, "50")
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty_file.csv", "")

	got, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected zero rows from empty file, got %d", got.Len())
	}
	if len(got.Columns()) != 0 {
		t.Errorf("expected no columns from empty file, got %v", got.Columns())
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "non_existing_file.csv"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, should also wrap fs.ErrNotExist", err)
	}
}

func TestExtract_RaggedRow(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b,c\n1,2\n")
	if _, err := Extract(path); err == nil {
		t.Error("expected error for ragged row, got nil")
	}
}

func TestExtract_HeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", "customer_id,billing_amount,tax_amount\n")

	got, err := Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected zero rows, got %d", got.Len())
	}
	if len(got.Columns()) != 3 {
		t.Errorf("columns = %v, want 3 columns", got.Columns())
	}
}
