// Package charts picks a chart for a normalized table and draws it.
package charts

import (
	"feed-dashboard/models"
	"feed-dashboard/sources"
)

// MaxRows bounds the bar and line charts.
const MaxRows = 20

// Select looks at the table columns and returns the chart to draw, or nil
// when the table gets no chart. Checks run in a fixed order and the first
// match wins, so a table carrying Magnitude is always a scatter.
func Select(table models.Table) *models.ChartSpec {
	switch {
	case table.HasColumn(sources.ColMagnitude):
		return &models.ChartSpec{
			Kind:       models.Scatter,
			Title:      "Earthquakes - last 24 hours",
			XField:     sources.ColTime,
			YField:     sources.ColMagnitude,
			SizeField:  sources.ColMagnitude,
			ColorField: sources.ColMagnitude,
			HoverField: sources.ColPlace,
		}
	case table.HasColumn(sources.ColValue):
		x := sources.ColCity
		if !table.HasColumn(x) {
			x = sources.ColLocation
		}
		return &models.ChartSpec{
			Kind:       models.Bar,
			Title:      "Air quality - latest measurement per location",
			XField:     x,
			YField:     sources.ColValue,
			ColorField: sources.ColParameter,
			Limit:      MaxRows,
		}
	case table.HasColumn(sources.ColCurrentPrice):
		return &models.ChartSpec{
			Kind:   models.Line,
			Title:  "Crypto prices (USD)",
			XField: sources.ColName,
			YField: sources.ColCurrentPrice,
			Limit:  MaxRows,
		}
	}
	return nil
}
