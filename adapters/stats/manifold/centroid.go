package manifold

import (
	"gonum.org/v1/gonum/floats"

	"varstats/domain/embedding"
)

// CentroidEngine computes the coordinate-wise arithmetic mean of a
// list of equal-dimension vectors. Record IDs are ignored.
type CentroidEngine struct{}

// NewCentroidEngine creates a new centroid engine
func NewCentroidEngine() *CentroidEngine {
	return &CentroidEngine{}
}

// Compute returns the mean vector, with the input's dimensionality.
// Fails with an EmptyInput error on zero records and a
// DimensionMismatch error on ragged vectors.
func (e *CentroidEngine) Compute(records []embedding.Record) ([]float64, error) {
	dim, err := validateRecords(records)
	if err != nil {
		return nil, err
	}

	centroid := make([]float64, dim)
	for _, r := range records {
		floats.Add(centroid, r.Vector)
	}
	floats.Scale(1/float64(len(records)), centroid)

	return centroid, nil
}
