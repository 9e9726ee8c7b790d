package charts

// Figure is a chart description in the shape Plotly.newPlot expects:
// the client passes Data and Layout straight through.
type Figure struct {
	Kind   string  `json:"kind"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single Plotly trace.
type Trace struct {
	Type          string       `json:"type"`
	Name          string       `json:"name,omitempty"`
	Mode          string       `json:"mode,omitempty"`
	X             []any        `json:"x,omitempty"`
	Y             []any        `json:"y,omitempty"`
	Z             [][]*float64 `json:"z,omitempty"`
	Text          []string     `json:"text,omitempty"`
	HoverTemplate string       `json:"hovertemplate,omitempty"`
	ColorBar      *ColorBar    `json:"colorbar,omitempty"`
}

// Layout is the subset of the Plotly layout the dashboard uses.
type Layout struct {
	Title   Label  `json:"title"`
	XAxis   Axis   `json:"xaxis"`
	YAxis   Axis   `json:"yaxis"`
	BarMode string `json:"barmode,omitempty"`
	Legend  *Title `json:"legend,omitempty"`
}

// Label is a Plotly text object.
type Label struct {
	Text string `json:"text"`
}

// Title wraps a Label the way Plotly nests legend and colorbar titles.
type Title struct {
	Title Label `json:"title"`
}

// Axis configures one axis.
type Axis struct {
	Title     Label  `json:"title"`
	TickAngle int    `json:"tickangle,omitempty"`
	AutoRange string `json:"autorange,omitempty"`
	Type      string `json:"type,omitempty"`
}

// ColorBar configures the heatmap colour scale legend.
type ColorBar struct {
	Title Label `json:"title"`
}

// Chart kinds.
const (
	KindBar     = "bar"
	KindHeatmap = "heatmap"
	KindScatter = "scatter"
)
