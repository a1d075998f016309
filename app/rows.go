package app

import (
	"fmt"
	"strconv"
	"strings"

	"varstats/domain/core"
	"varstats/domain/embedding"
	"varstats/ports"
)

// toEmbeddingRecords converts (id, vector) 2-tuples into records.
// Rows with a null vector are skipped, mirroring the null policy of
// the variance extractor.
func toEmbeddingRecords(rows []ports.Row) ([]embedding.Record, error) {
	records := make([]embedding.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, core.NewInvalidInputError("row", fmt.Sprintf("row %d has %d columns, expected (id, vector)", i, len(row)))
		}
		if row[1] == nil {
			continue
		}

		vector, err := coerceVector(row[1])
		if err != nil {
			return nil, core.NewInvalidInputError("vector", fmt.Sprintf("row %d: %v", i, err))
		}
		records = append(records, embedding.NewRecord(coerceID(row[0]), vector))
	}
	return records, nil
}

// toVectorRecords converts 1-tuples of (vector) into records for the
// centroid engine; the synthetic IDs are never surfaced.
func toVectorRecords(rows []ports.Row) ([]embedding.Record, error) {
	records := make([]embedding.Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < 1 {
			return nil, core.NewInvalidInputError("row", fmt.Sprintf("row %d is empty, expected (vector)", i))
		}
		if row[0] == nil {
			continue
		}

		vector, err := coerceVector(row[0])
		if err != nil {
			return nil, core.NewInvalidInputError("vector", fmt.Sprintf("row %d: %v", i, err))
		}
		records = append(records, embedding.NewRecord(strconv.Itoa(i), vector))
	}
	return records, nil
}

func coerceID(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// coerceVector accepts the shapes drivers hand back for an embedding
// column: a float slice, a generic slice, or the textual array forms
// "[0.1, 0.2]" (pgvector) and "{0.1, 0.2}" (float8[]).
func coerceVector(v any) ([]float64, error) {
	switch vec := v.(type) {
	case []float64:
		out := make([]float64, len(vec))
		copy(out, vec)
		return out, nil
	case []float32:
		out := make([]float64, len(vec))
		for i, f := range vec {
			out[i] = float64(f)
		}
		return out, nil
	case []any:
		out := make([]float64, len(vec))
		for i, elem := range vec {
			f, err := coerceFloat(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %v", i, err)
			}
			out[i] = f
		}
		return out, nil
	case []byte:
		return parseVectorLiteral(string(vec))
	case string:
		return parseVectorLiteral(vec)
	default:
		return nil, fmt.Errorf("unsupported vector type %T", v)
	}
}

func coerceFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("non-numeric element of type %T", v)
	}
}

func parseVectorLiteral(s string) ([]float64, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	trimmed = strings.TrimPrefix(trimmed, "{")
	trimmed = strings.TrimSuffix(trimmed, "}")
	if strings.TrimSpace(trimmed) == "" {
		return nil, fmt.Errorf("empty vector literal %q", s)
	}

	parts := strings.Split(trimmed, ",")
	out := make([]float64, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("element %d of %q is not numeric", i, s)
		}
		out[i] = f
	}
	return out, nil
}
