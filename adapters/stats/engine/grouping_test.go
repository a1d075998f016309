package engine

import (
	"testing"

	"varstats/domain/core"
	"varstats/ports"
)

func labeledRows(label string, values ...any) []ports.Row {
	rows := make([]ports.Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, ports.Row{label, v})
	}
	return rows
}

func TestExtract_BoundaryIsStrictlyGreaterThan(t *testing.T) {
	e := NewGroupExtractor()

	rows := labeledRows("exact", 1, 2, 3)
	rows = append(rows, labeledRows("above", 1, 2, 3, 4)...)

	ds, err := e.Extract(rows, 3)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if _, ok := ds.Group("exact"); ok {
		t.Fatalf("group with exactly min_sample_size samples must be excluded")
	}
	above, ok := ds.Group("above")
	if !ok {
		t.Fatalf("group with min_sample_size+1 samples must survive")
	}
	if above.Size() != 4 {
		t.Fatalf("expected 4 samples retained, got %d", above.Size())
	}
}

func TestExtract_NullValuesDoNotCount(t *testing.T) {
	e := NewGroupExtractor()

	// Two real samples plus two nulls: with minSampleSize=2 the nulls
	// must not push the group over the threshold.
	rows := []ports.Row{
		{"g", 10}, {"g", nil}, {"g", 20}, {"g", nil},
	}

	ds, err := e.Extract(rows, 2)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if ds.GroupCount() != 0 {
		t.Fatalf("expected nulls to be skipped entirely, got %d groups", ds.GroupCount())
	}
}

func TestExtract_CoercesNumericRepresentations(t *testing.T) {
	e := NewGroupExtractor()

	rows := []ports.Row{
		{"g", int64(7)},
		{"g", 8.9},           // truncates toward zero
		{"g", []byte("9.2")}, // database drivers hand back bytes
		{"g", "10"},
		{[]byte("g"), 11},
	}

	ds, err := e.Extract(rows, 0)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	g, ok := ds.Group("g")
	if !ok {
		t.Fatalf("expected group %q", "g")
	}
	want := []float64{7, 8, 9, 10, 11}
	got := g.Samples()
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestExtract_NonNumericValueFails(t *testing.T) {
	e := NewGroupExtractor()

	_, err := e.Extract([]ports.Row{{"g", "not a number"}}, 0)
	if !core.IsInvalidInputError(err) {
		t.Fatalf("expected InvalidInput error, got %v", err)
	}
}

func TestExtract_NegativeMinSampleSizeFails(t *testing.T) {
	e := NewGroupExtractor()

	_, err := e.Extract(labeledRows("g", 1, 2, 3), -1)
	if !core.IsInvalidInputError(err) {
		t.Fatalf("expected InvalidInput error, got %v", err)
	}
}

func TestExtract_ShortRowFails(t *testing.T) {
	e := NewGroupExtractor()

	_, err := e.Extract([]ports.Row{{"only-label"}}, 0)
	if !core.IsInvalidInputError(err) {
		t.Fatalf("expected InvalidInput error, got %v", err)
	}
}

func TestExtract_EmptyRowsIsValidEmptyDataset(t *testing.T) {
	e := NewGroupExtractor()

	ds, err := e.Extract(nil, 0)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if ds.GroupCount() != 0 {
		t.Fatalf("expected empty dataset, got %d groups", ds.GroupCount())
	}
}
