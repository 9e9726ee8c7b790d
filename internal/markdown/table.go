package markdown

import "strings"

// DefaultTableMarker is the header text that marks the start of the dataset table.
const DefaultTableMarker = "| Dataset Type"

const (
	cellDelimiter  = "|"
	blockSeparator = "\n\n"
)

// Table is a pipe-delimited markdown table parsed into rows of strings.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
	// SkippedRows counts data lines dropped because their cell count did not
	// match the header. It is informational only.
	SkippedRows int
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// TableExtractor locates and parses the first table that starts with Marker.
type TableExtractor struct {
	Marker string
}

// NewTableExtractor creates a TableExtractor. An empty marker falls back to DefaultTableMarker.
func NewTableExtractor(marker string) *TableExtractor {
	if marker == "" {
		marker = DefaultTableMarker
	}
	return &TableExtractor{Marker: marker}
}

// ExtractTable parses the dataset table using DefaultTableMarker.
// It returns nil when the document has no such table.
func ExtractTable(content string) *Table {
	return NewTableExtractor(DefaultTableMarker).Extract(content)
}

// Extract parses the table block beginning at the marker and ending at the
// next blank line (or end of document). The first line is the header, the
// second is the separator row and is skipped. Data lines whose cell count
// differs from the header are dropped.
// Returns nil if the marker is not found.
func (e *TableExtractor) Extract(content string) *Table {
	start := strings.Index(content, e.Marker)
	if start == -1 {
		return nil
	}

	end := strings.Index(content[start:], blockSeparator)
	if end == -1 {
		end = len(content)
	} else {
		end += start
	}

	lines := strings.Split(strings.TrimSpace(content[start:end]), "\n")

	table := &Table{
		Columns: splitCells(lines[0]),
		Rows:    [][]string{},
	}

	if len(lines) < 3 {
		return table
	}

	for _, line := range lines[2:] {
		row := splitCells(line)
		if len(row) != len(table.Columns) {
			table.SkippedRows++
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// splitCells splits a table line on the delimiter, trims each cell and drops
// empty ones. Leading and trailing pipes therefore never produce cells, but
// neither does a genuinely empty cell.
func splitCells(line string) []string {
	parts := strings.Split(line, cellDelimiter)
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		if cell := strings.TrimSpace(part); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
