// Package embedding holds the vector data model for the projection,
// clustering and centroid engines.
package embedding

// Record is an opaque identifier paired with a fixed-length vector.
// The identifier is echoed back unchanged by the projection pipeline.
type Record struct {
	ID     string
	Vector []float64
}

// NewRecord builds a Record that owns its vector.
func NewRecord(id string, vector []float64) Record {
	owned := make([]float64, len(vector))
	copy(owned, vector)
	return Record{ID: id, Vector: owned}
}

// Dimension returns the vector length.
func (r Record) Dimension() int { return len(r.Vector) }

// NoiseLabel marks points that belong to no dense cluster.
const NoiseLabel = -1

// ProjectionResult holds parallel arrays over the input records:
// index i in all four refers to the same record, in input order.
type ProjectionResult struct {
	IDs    []string  `json:"ids"`
	XAxis  []float64 `json:"x_axis"`
	YAxis  []float64 `json:"y_axis"`
	Labels []int     `json:"labels"`
}

// Len returns the number of projected records.
func (p ProjectionResult) Len() int { return len(p.IDs) }
