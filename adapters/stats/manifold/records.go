// Package manifold holds the embedding-space engines: 2-D projection,
// density clustering of the projected points, and centroid
// computation. All engines are pure functions over in-memory records.
package manifold

import (
	"varstats/domain/core"
	"varstats/domain/embedding"
)

// validateRecords checks the shared input contract: at least one
// record, all vectors of equal length. Returns the common dimension.
func validateRecords(records []embedding.Record) (int, error) {
	if len(records) == 0 {
		return 0, core.ErrEmptyInput
	}

	dim := records[0].Dimension()
	for i, r := range records {
		if r.Dimension() != dim {
			return 0, core.NewDimensionMismatchError(i, r.Dimension(), dim)
		}
	}
	return dim, nil
}
