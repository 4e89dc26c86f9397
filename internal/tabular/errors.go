package tabular

import "fmt"

// MissingInputError reports a required input path that does not exist. It is
// raised before any load is attempted so callers fail fast with no partial
// state.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input not found: %s", e.Path)
}

// SchemaError reports a column that an operation requires but the dataset
// does not carry.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", e.Column)
}
