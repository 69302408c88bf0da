package handlers

import (
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"feed-dashboard/charts"
	"feed-dashboard/commentary"
	"feed-dashboard/fetcher"
	"feed-dashboard/models"

	"github.com/rs/zerolog/log"
)

// TableRows is how many rows the table view shows.
const TableRows = 20

// View is one rendered refresh of the dashboard, shared by the HTML page and
// the JSON API.
type View struct {
	Requested  string            `json:"requested"`
	Source     string            `json:"source"`
	FellBack   bool              `json:"fell_back"`
	Failed     []string          `json:"failed,omitempty"`
	Columns    []string          `json:"columns"`
	Rows       [][]string        `json:"rows"`
	Total      int               `json:"total"`
	Chart      *models.ChartSpec `json:"chart,omitempty"`
	Commentary [2]string         `json:"commentary"`

	chartPNG []byte
}

func buildView(outcome fetcher.Outcome, withImage bool) View {
	table := outcome.Table
	head := table.Head(TableRows)

	v := View{
		Requested: outcome.Requested,
		Source:    outcome.Served,
		FellBack:  outcome.FellBack(),
		Failed:    outcome.Failed(),
		Columns:   head.Columns,
		Rows:      make([][]string, 0, head.Len()),
		Total:     table.Len(),
	}
	for _, row := range head.Rows {
		cells := make([]string, len(head.Columns))
		for i, c := range head.Columns {
			cells[i] = formatValue(row[c])
		}
		v.Rows = append(v.Rows, cells)
	}

	v.Commentary[0], v.Commentary[1] = commentary.Generate(outcome.Served, table.Len())

	if spec := charts.Select(table); spec != nil {
		v.Chart = spec
		if withImage {
			b, err := charts.PNG(table, *spec)
			switch {
			case errors.Is(err, charts.ErrNothingToPlot):
			case err != nil:
				log.Error().Err(err).Str("source", outcome.Served).Str("kind", string(spec.Kind)).Msg("could not render chart")
			default:
				v.chartPNG = b
			}
		}
	}
	return v
}

// ChartURI is the rendered chart as a data URI, empty when there is none.
func (v View) ChartURI() string {
	if len(v.chartPNG) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(v.chartPNG)
}

func formatValue(v models.Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02 15:04:05 MST")
	}
	return ""
}
