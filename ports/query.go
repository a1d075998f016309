package ports

import (
	"context"
)

// Row is one fixed-arity result tuple from the data source. The
// engines expect 2-tuples of (label, numeric) for the variance tests,
// 2-tuples of (id, vector) for projection/clustering, and 1-tuples of
// (vector) for centroid computation.
type Row []any

// QueryExecutor provides read-only access to tabular data. It is the
// single capability the analysis core consumes; implementations are
// replaceable (PostgreSQL, Excel/CSV) and must be safe for concurrent
// use, each call on its own connection/session.
type QueryExecutor interface {
	// ReadOnlyQuery runs a query and returns the ordered result rows.
	ReadOnlyQuery(ctx context.Context, query string) ([]Row, error)
}
