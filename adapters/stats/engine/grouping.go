package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"varstats/domain/core"
	"varstats/domain/sample"
	"varstats/ports"
)

// GroupExtractor turns raw (label, value) rows into a validated
// grouping of numeric samples per category.
type GroupExtractor struct{}

// NewGroupExtractor creates a new group extractor
func NewGroupExtractor() *GroupExtractor {
	return &GroupExtractor{}
}

// Extract builds a GroupedDataset from (label, numeric-or-null) rows.
// Null values are skipped entirely; non-integer numerics are truncated
// to integers. Only categories with strictly more than minSampleSize
// retained samples survive - a category with exactly minSampleSize
// samples is excluded. An empty or single-category result is valid
// output here; the consuming engine rejects it.
func (e *GroupExtractor) Extract(rows []ports.Row, minSampleSize int) (sample.GroupedDataset, error) {
	if minSampleSize < 0 {
		return sample.GroupedDataset{}, core.NewInvalidInputError("min_sample_size", fmt.Sprintf("must be non-negative, got %d", minSampleSize))
	}

	byLabel := make(map[string][]float64)
	order := make([]string, 0)

	for i, row := range rows {
		if len(row) < 2 {
			return sample.GroupedDataset{}, core.NewInvalidInputError("row", fmt.Sprintf("row %d has %d columns, expected (label, value)", i, len(row)))
		}

		if row[1] == nil {
			continue // nulls are not counted, not placed in any group
		}

		label := coerceLabel(row[0])
		value, err := coerceIntSample(row[1])
		if err != nil {
			return sample.GroupedDataset{}, core.NewInvalidInputError("value", fmt.Sprintf("row %d: %v", i, err))
		}

		if _, seen := byLabel[label]; !seen {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], value)
	}

	groups := make([]sample.Group, 0, len(order))
	for _, label := range order {
		samples := byLabel[label]
		if len(samples) > minSampleSize {
			groups = append(groups, sample.NewGroup(label, samples))
		}
	}

	return sample.NewGroupedDataset(groups), nil
}

// coerceLabel renders the category column as a string key.
func coerceLabel(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// coerceIntSample converts a numeric column value to an integer-valued
// sample, truncating toward zero.
func coerceIntSample(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return math.Trunc(float64(n)), nil
	case float64:
		return math.Trunc(n), nil
	case []byte:
		return parseNumeric(string(n))
	case string:
		return parseNumeric(n)
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", v)
	}
}

func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", s)
	}
	return math.Trunc(f), nil
}
