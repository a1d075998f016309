package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadOnlyQuery_CSVSkipsHeaderAndNullsEmptyCells(t *testing.T) {
	path := writeCSV(t, "category,value\nlow,10\nhigh,\nhigh,52\n")

	adapter := NewQueryExecutorAdapter(path, "")
	rows, err := adapter.ReadOnlyQuery(context.Background(), "")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(rows))
	}
	if rows[0][0] != "low" || rows[0][1] != "10" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1][1] != nil {
		t.Fatalf("empty cell must become nil, got %v", rows[1][1])
	}
}

func TestReadOnlyQuery_HeaderOnlyFails(t *testing.T) {
	path := writeCSV(t, "category,value\n")

	adapter := NewQueryExecutorAdapter(path, "")
	if _, err := adapter.ReadOnlyQuery(context.Background(), ""); err == nil {
		t.Fatalf("expected error for a file with no data rows")
	}
}

func TestReadOnlyQuery_MissingFileFails(t *testing.T) {
	adapter := NewQueryExecutorAdapter(filepath.Join(t.TempDir(), "absent.csv"), "")
	if _, err := adapter.ReadOnlyQuery(context.Background(), ""); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestSheetName_Precedence(t *testing.T) {
	adapter := NewQueryExecutorAdapter("data.xlsx", "Configured")

	if got := adapter.sheetName("  "); got != "Configured" {
		t.Fatalf("blank query must use the configured sheet, got %q", got)
	}
	if got := adapter.sheetName("Metrics"); got != "Metrics" {
		t.Fatalf("explicit sheet name must win, got %q", got)
	}

	fallback := NewQueryExecutorAdapter("data.xlsx", "")
	if got := fallback.sheetName(""); got != DefaultSheet {
		t.Fatalf("expected %q, got %q", DefaultSheet, got)
	}
}
