package dataset

import (
	"math"
	"strconv"
	"strings"

	"mdtable-dashboard/internal/markdown"
)

// Well-known column names in dataset tables.
const (
	ColumnDatasetType = "Dataset Type"
	ColumnDatasetName = "Dataset Name"
	ColumnGenerator   = "Generator"
	ColumnNid         = "Nid"
	ColumnNsamples    = "Nsamples"
)

// Column describes a table column and whether it can be charted as a metric.
type Column struct {
	Name    string `json:"name"`
	Index   int    `json:"-"`
	Numeric bool   `json:"numeric"`
}

// Dataset wraps a table with its column classification.
type Dataset struct {
	table   *markdown.Table
	columns []Column
}

// New classifies the columns of t. A nil table yields an empty Dataset.
func New(t *markdown.Table) *Dataset {
	if t == nil {
		t = &markdown.Table{}
	}
	return &Dataset{table: t, columns: Classify(t)}
}

// Classify marks a column numeric when every non-empty value parses as a
// number. Columns with no values at all are not numeric.
func Classify(t *markdown.Table) []Column {
	columns := make([]Column, len(t.Columns))
	for i, name := range t.Columns {
		columns[i] = Column{Name: name, Index: i, Numeric: isNumericColumn(t.Rows, i)}
	}
	return columns
}

func isNumericColumn(rows [][]string, index int) bool {
	seen := false
	for _, row := range rows {
		value := strings.TrimSpace(row[index])
		if value == "" {
			continue
		}
		if _, ok := parseNumber(value); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// parseNumber rejects NaN and infinities, which cannot be plotted or JSON encoded.
func parseNumber(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Table returns the underlying table.
func (d *Dataset) Table() *markdown.Table {
	return d.table
}

// Columns returns the classified columns in table order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.table.Rows)
}

// NumericColumns returns the names of numeric columns in table order.
func (d *Dataset) NumericColumns() []string {
	var names []string
	for _, col := range d.columns {
		if col.Numeric {
			names = append(names, col.Name)
		}
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.column(name)
	return ok
}

// IsNumeric reports whether name is a numeric column.
func (d *Dataset) IsNumeric(name string) bool {
	col, ok := d.column(name)
	return ok && col.Numeric
}

// Values returns the raw cell values of a column, or nil if it does not exist.
func (d *Dataset) Values(name string) []string {
	col, ok := d.column(name)
	if !ok {
		return nil
	}
	values := make([]string, len(d.table.Rows))
	for i, row := range d.table.Rows {
		values[i] = row[col.Index]
	}
	return values
}

// Floats returns a numeric column as float64 values. Empty cells become nil.
// It returns nil if the column is missing or not numeric.
func (d *Dataset) Floats(name string) []*float64 {
	col, ok := d.column(name)
	if !ok || !col.Numeric {
		return nil
	}
	values := make([]*float64, len(d.table.Rows))
	for i, row := range d.table.Rows {
		if f, ok := parseNumber(row[col.Index]); ok {
			values[i] = &f
		}
	}
	return values
}

func (d *Dataset) column(name string) (Column, bool) {
	for _, col := range d.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
