package tabular

import "go.uber.org/zap"

// FilterEqual returns a new table containing the rows where the named column
// equals value. The header is shared with the input. An absent column is a
// SchemaError, not an empty result.
func FilterEqual(t *Table, column, value string) (*Table, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, &SchemaError{Column: column}
	}

	out := &Table{Header: t.Header}
	for _, row := range t.Rows {
		if idx < len(row) && row[idx] == value {
			out.Rows = append(out.Rows, row)
		}
	}

	zap.L().Info("filtered rows",
		zap.String("column", column),
		zap.String("value", value),
		zap.Int("kept", len(out.Rows)),
		zap.Int("total", len(t.Rows)),
	)

	return out, nil
}
