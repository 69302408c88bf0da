package models

type ChartKind string

const (
	Scatter ChartKind = "scatter"
	Bar     ChartKind = "bar"
	Line    ChartKind = "line"
)

// ChartSpec binds table columns to chart channels.
type ChartSpec struct {
	Kind       ChartKind `json:"kind"`
	Title      string    `json:"title"`
	XField     string    `json:"x"`
	YField     string    `json:"y"`
	ColorField string    `json:"color,omitempty"`
	SizeField  string    `json:"size,omitempty"`
	HoverField string    `json:"hover,omitempty"`
	// Limit caps the rows plotted; zero plots all of them.
	Limit int `json:"limit,omitempty"`
}
