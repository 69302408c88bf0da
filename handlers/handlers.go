package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"feed-dashboard/fetcher"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Catalog is the source registry as the handlers see it.
type Catalog interface {
	fetcher.Catalog
	Default() string
}

type Handlers struct {
	catalog Catalog
	fetcher *fetcher.Fetcher
}

func New(catalog Catalog, f *fetcher.Fetcher) *Handlers {
	return &Handlers{
		catalog: catalog,
		fetcher: f,
	}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// Router wires every route of the dashboard.
func Router(h *Handlers) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	r.GET("/dashboard", h.Dashboard)

	api := r.Group("/api")
	{
		api.GET("/sources", h.GetSources)
		api.GET("/data", h.GetData)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}
