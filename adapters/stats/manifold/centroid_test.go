package manifold

import (
	"errors"
	"testing"

	"varstats/domain/core"
	"varstats/domain/embedding"
)

func recordsFrom(vectors ...[]float64) []embedding.Record {
	records := make([]embedding.Record, len(vectors))
	for i, v := range vectors {
		records[i] = embedding.NewRecord("r", v)
	}
	return records
}

func TestCentroid_CoordinateWiseMean(t *testing.T) {
	e := NewCentroidEngine()

	cases := []struct {
		vectors [][]float64
		want    []float64
	}{
		{[][]float64{{1, 0}, {0, 1}}, []float64{0.5, 0.5}},
		{[][]float64{{1, 2}, {3, 4}}, []float64{2, 3}},
		{[][]float64{{5, -5, 0}}, []float64{5, -5, 0}},
	}

	for _, tc := range cases {
		got, err := e.Compute(recordsFrom(tc.vectors...))
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("expected dimension %d, got %d", len(tc.want), len(got))
		}
		for d := range tc.want {
			if got[d] != tc.want[d] {
				t.Fatalf("coordinate %d: expected %v, got %v (full: %v)", d, tc.want[d], got[d], got)
			}
		}
	}
}

func TestCentroid_DoesNotMutateInput(t *testing.T) {
	e := NewCentroidEngine()

	records := recordsFrom([]float64{1, 2}, []float64{3, 4})
	if _, err := e.Compute(records); err != nil {
		t.Fatalf("compute: %v", err)
	}
	if records[0].Vector[0] != 1 || records[1].Vector[1] != 4 {
		t.Fatalf("input vectors were mutated: %v", records)
	}
}

func TestCentroid_RaggedVectorsFail(t *testing.T) {
	e := NewCentroidEngine()

	_, err := e.Compute(recordsFrom([]float64{1, 2}, []float64{3}))
	if !errors.Is(err, core.ErrDimensionMismatch) {
		t.Fatalf("expected DimensionMismatch error, got %v", err)
	}
}

func TestCentroid_EmptyInputFails(t *testing.T) {
	e := NewCentroidEngine()

	_, err := e.Compute(nil)
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("expected EmptyInput error, got %v", err)
	}
}
