package charts

import (
	"fmt"
	"strings"

	"mdtable-dashboard/internal/dataset"
)

var (
	barHoverColumns     = []string{dataset.ColumnGenerator, dataset.ColumnNid, dataset.ColumnNsamples}
	scatterHoverColumns = []string{dataset.ColumnDatasetName, dataset.ColumnGenerator}
)

// Bar compares metric across datasets: one bar per Dataset Name, coloured by
// Dataset Type when that column exists.
func Bar(d *dataset.Dataset, metric string) (*Figure, error) {
	if !d.HasColumn(dataset.ColumnDatasetName) {
		return nil, &MissingColumnError{Chart: KindBar, Column: dataset.ColumnDatasetName}
	}
	if err := requireNumeric(d, "metric", metric); err != nil {
		return nil, err
	}

	names := d.Values(dataset.ColumnDatasetName)
	values := d.Floats(metric)
	hover := hoverText(d, barHoverColumns)

	traces := make([]Trace, 0)
	for _, group := range groupRows(d) {
		trace := Trace{
			Type:          "bar",
			Name:          group.name,
			X:             make([]any, 0, len(group.rows)),
			Y:             make([]any, 0, len(group.rows)),
			HoverTemplate: "%{x}<br>" + metric + "=%{y}<br>%{text}<extra>%{fullData.name}</extra>",
		}
		for _, i := range group.rows {
			trace.X = append(trace.X, names[i])
			trace.Y = append(trace.Y, values[i])
			trace.Text = append(trace.Text, hover[i])
		}
		traces = append(traces, trace)
	}

	return &Figure{
		Kind: KindBar,
		Data: traces,
		Layout: Layout{
			Title:   Label{Text: fmt.Sprintf("Comparison of %s across Datasets", metric)},
			XAxis:   Axis{Title: Label{Text: dataset.ColumnDatasetName}, TickAngle: -45},
			YAxis:   Axis{Title: Label{Text: metric}},
			BarMode: "relative",
			Legend:  &Title{Title: Label{Text: legendTitle(d)}},
		},
	}, nil
}

// Heatmap plots every numeric column for every row. Rows are labelled by
// their position in the table, top to bottom.
func Heatmap(d *dataset.Dataset) (*Figure, error) {
	metrics := d.NumericColumns()
	if len(metrics) == 0 {
		return nil, ErrNoNumericColumns
	}

	columns := make([][]*float64, len(metrics))
	for j, metric := range metrics {
		columns[j] = d.Floats(metric)
	}

	x := make([]any, len(metrics))
	for j, metric := range metrics {
		x[j] = metric
	}

	y := make([]any, d.Len())
	z := make([][]*float64, d.Len())
	for i := range z {
		y[i] = i
		z[i] = make([]*float64, len(metrics))
		for j := range metrics {
			z[i][j] = columns[j][i]
		}
	}

	return &Figure{
		Kind: KindHeatmap,
		Data: []Trace{{
			Type:          "heatmap",
			X:             x,
			Y:             y,
			Z:             z,
			HoverTemplate: "Metrics: %{x}<br>Dataset: %{y}<br>Score: %{z}<extra></extra>",
			ColorBar:      &ColorBar{Title: Label{Text: "Score"}},
		}},
		Layout: Layout{
			Title: Label{Text: "Heatmap of All Metrics"},
			XAxis: Axis{Title: Label{Text: "Metrics"}},
			YAxis: Axis{Title: Label{Text: "Dataset"}, AutoRange: "reversed", Type: "category"},
		},
	}, nil
}

// Scatter plots two metrics against each other, one trace per Dataset Type.
func Scatter(d *dataset.Dataset, xMetric, yMetric string) (*Figure, error) {
	if len(d.NumericColumns()) < 2 {
		return nil, ErrNotEnoughNumericColumns
	}
	if !d.HasColumn(dataset.ColumnDatasetType) {
		return nil, &MissingColumnError{Chart: KindScatter, Column: dataset.ColumnDatasetType}
	}
	if err := requireNumeric(d, "x", xMetric); err != nil {
		return nil, err
	}
	if err := requireNumeric(d, "y", yMetric); err != nil {
		return nil, err
	}
	if xMetric == yMetric {
		return nil, &SelectionError{Field: "y", Column: yMetric, Reason: "must differ from x"}
	}

	xs := d.Floats(xMetric)
	ys := d.Floats(yMetric)
	hover := hoverText(d, scatterHoverColumns)

	traces := make([]Trace, 0)
	for _, group := range groupRows(d) {
		trace := Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          group.name,
			X:             make([]any, 0, len(group.rows)),
			Y:             make([]any, 0, len(group.rows)),
			HoverTemplate: xMetric + "=%{x}<br>" + yMetric + "=%{y}<br>%{text}<extra>%{fullData.name}</extra>",
		}
		for _, i := range group.rows {
			trace.X = append(trace.X, xs[i])
			trace.Y = append(trace.Y, ys[i])
			trace.Text = append(trace.Text, hover[i])
		}
		traces = append(traces, trace)
	}

	return &Figure{
		Kind: KindScatter,
		Data: traces,
		Layout: Layout{
			Title:  Label{Text: fmt.Sprintf("%s vs %s", xMetric, yMetric)},
			XAxis:  Axis{Title: Label{Text: xMetric}},
			YAxis:  Axis{Title: Label{Text: yMetric}},
			Legend: &Title{Title: Label{Text: dataset.ColumnDatasetType}},
		},
	}, nil
}

func requireNumeric(d *dataset.Dataset, field, column string) error {
	if !d.HasColumn(column) {
		return &SelectionError{Field: field, Column: column, Reason: "no such column"}
	}
	if !d.IsNumeric(column) {
		return &SelectionError{Field: field, Column: column, Reason: "column is not numeric"}
	}
	return nil
}

type rowGroup struct {
	name string
	rows []int
}

// groupRows partitions rows by Dataset Type in order of first appearance.
// Without that column every row lands in a single unnamed group.
func groupRows(d *dataset.Dataset) []rowGroup {
	types := d.Values(dataset.ColumnDatasetType)
	if types == nil {
		all := make([]int, d.Len())
		for i := range all {
			all[i] = i
		}
		return []rowGroup{{rows: all}}
	}

	var groups []rowGroup
	index := make(map[string]int)
	for i, typ := range types {
		g, ok := index[typ]
		if !ok {
			g = len(groups)
			index[typ] = g
			groups = append(groups, rowGroup{name: typ})
		}
		groups[g].rows = append(groups[g].rows, i)
	}
	return groups
}

// hoverText builds one "Column=value" line per present column for every row.
func hoverText(d *dataset.Dataset, columns []string) []string {
	text := make([]string, d.Len())
	for _, column := range columns {
		values := d.Values(column)
		if values == nil {
			continue
		}
		for i, value := range values {
			if text[i] != "" {
				text[i] += "<br>"
			}
			text[i] += column + "=" + value
		}
	}
	return text
}

func legendTitle(d *dataset.Dataset) string {
	if d.HasColumn(dataset.ColumnDatasetType) {
		return dataset.ColumnDatasetType
	}
	return ""
}

// Selection holds the user-chosen columns for the bar and scatter charts.
type Selection struct {
	Metric string `json:"metric,omitempty"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
}

// Resolve fills the empty fields of sel the way the dashboard's pickers
// default: the first numeric column for the bar metric and scatter x axis,
// and the first numeric column other than x for the scatter y axis.
// Fields that are already set are kept as given.
func Resolve(d *dataset.Dataset, sel Selection) Selection {
	sel.Metric = strings.TrimSpace(sel.Metric)
	sel.X = strings.TrimSpace(sel.X)
	sel.Y = strings.TrimSpace(sel.Y)

	metrics := d.NumericColumns()
	if len(metrics) == 0 {
		return sel
	}
	if sel.Metric == "" {
		sel.Metric = metrics[0]
	}
	if sel.X == "" {
		sel.X = metrics[0]
	}
	if sel.Y == "" {
		for _, m := range metrics {
			if m != sel.X {
				sel.Y = m
				break
			}
		}
	}
	return sel
}
