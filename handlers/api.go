package handlers

import (
	"errors"
	"net/http"

	"feed-dashboard/fetcher"
	"feed-dashboard/sources"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources": h.catalog.Names(),
		"default": h.catalog.Default(),
	})
}

func (h *Handlers) GetData(c *gin.Context) {
	source := h.selected(c)

	outcome, err := h.fetcher.Load(c.Request.Context(), h.catalog, source)
	if err != nil {
		if errors.Is(err, sources.ErrUnknownSource) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": fetcher.UserMessage})
		return
	}

	c.JSON(http.StatusOK, buildView(outcome, false))
}
