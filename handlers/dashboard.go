package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"feed-dashboard/fetcher"
	"feed-dashboard/sources"

	"github.com/gin-gonic/gin"
)

type DashboardData struct {
	Options []SourceOption
	Error   string
	View    *View
	// Chart is a data URI produced by the chart renderer, never user input.
	Chart template.URL
}

type SourceOption struct {
	Name     string
	Selected bool
}

func (h *Handlers) options(selected string) []SourceOption {
	names := h.catalog.Names()
	options := make([]SourceOption, len(names))
	for i, n := range names {
		options[i] = SourceOption{Name: n, Selected: n == selected}
	}
	return options
}

// selected is the source named by the query, or the default one when the
// parameter is missing or blank.
func (h *Handlers) selected(c *gin.Context) string {
	if source := strings.TrimSpace(c.Query("source")); source != "" {
		return source
	}
	return h.catalog.Default()
}

func (h *Handlers) Dashboard(c *gin.Context) {
	source := h.selected(c)

	outcome, err := h.fetcher.Load(c.Request.Context(), h.catalog, source)
	if errors.Is(err, sources.ErrUnknownSource) {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Unknown data source"})
		return
	}

	data := DashboardData{
		Options: h.options(source),
	}
	if err != nil {
		// every failure kind looks the same to the user; the fetcher has logged the detail
		data.Error = fetcher.UserMessage
		c.HTML(http.StatusOK, "dashboard.html", data)
		return
	}

	view := buildView(outcome, true)
	data.View = &view
	data.Chart = template.URL(view.ChartURI())

	c.HTML(http.StatusOK, "dashboard.html", data)
}
