package database

import (
	"math"

	"github.com/01moynul/paper-graph-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CollectRows drains rows into pass-through models.Row values, keeping the
// database's row order and column order. It always closes rows. An empty
// result set yields an empty, non-nil slice.
func CollectRows(rows pgx.Rows) ([]models.Row, error) {
	defer rows.Close()

	var columns []string
	result := make([]models.Row, 0)

	for rows.Next() {
		if columns == nil {
			columns = columnNames(rows)
		}

		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}

		result = append(result, models.NewRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func columnNames(rows pgx.Rows) []string {
	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// normalizeValue turns driver values that have no natural JSON form into
// the form a client expects. uuid columns decode as [16]byte and would
// otherwise encode as an array of numbers. NaN and Infinity have no JSON
// form and become null.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil
		}
		return val
	case pgtype.InfinityModifier:
		return val.String()
	case []any:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	default:
		return v
	}
}
