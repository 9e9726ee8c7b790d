package charts

import (
	"errors"
	"fmt"
)

var (
	// ErrNoNumericColumns is returned when a chart needs numeric columns and there are none.
	ErrNoNumericColumns = errors.New("no numeric columns")
	// ErrNotEnoughNumericColumns is returned when a scatter plot has fewer than two metrics.
	ErrNotEnoughNumericColumns = errors.New("not enough numeric columns")
)

// MissingColumnError is returned when a chart requires a column the table does not have.
type MissingColumnError struct {
	Chart  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s chart requires column %q", e.Chart, e.Column)
}

// SelectionError is returned when a selected column cannot be used as a metric.
type SelectionError struct {
	Field  string
	Column string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Column, e.Reason)
}
