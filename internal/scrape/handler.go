package scrape

import (
	"errors"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/shared/server/respond"
	"seo-backend/internal/sites"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sites/scrape", h.scrape)
	rg.POST("/sites/scrape/stream", h.stream)
}

func (h *Handler) scrape(c *gin.Context) {
	siteID := c.PostForm("site_id")
	count, err := h.Svc.Scrape(c.Request.Context(), siteID)
	if err != nil {
		if errors.Is(err, sites.ErrNotFound) {
			respond.Fail(c, "Site not found")
			return
		}
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "count": count})
}

func (h *Handler) stream(c *gin.Context) {
	siteID := c.PostForm("site_id")

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(200)

	out := NewStreamer(c.Writer, func() { c.Writer.Flush() })
	h.Svc.Stream(c.Request.Context(), siteID, out)
}
