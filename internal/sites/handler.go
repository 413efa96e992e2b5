package sites

import (
	"errors"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sites", h.create)
	rg.GET("/sites", h.list)
	rg.GET("/pages", h.pages)
	rg.POST("/pages/delete", h.deletePages)
}

func (h *Handler) create(c *gin.Context) {
	rawURL := c.PostForm("url")
	site, err := h.Svc.Register(c.Request.Context(), rawURL)
	if err != nil {
		if errors.Is(err, ErrDuplicateDomain) {
			respond.Fail(c, "This domain is already registered")
			return
		}
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "domain": site.Domain})
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Fail(c, "Failed to load sites")
		return
	}
	if list == nil {
		list = []Site{}
	}
	respond.OK(c, gin.H{"success": true, "sites": list})
}

func (h *Handler) pages(c *gin.Context) {
	siteID := c.Query("site_id")
	pages, err := h.Svc.Pages(c.Request.Context(), siteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Fail(c, "Site not found")
			return
		}
		respond.Fail(c, err.Error())
		return
	}
	urls := make([]gin.H, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, gin.H{"url": p.URL})
	}
	respond.OK(c, gin.H{"success": true, "pages": urls})
}

type deletePagesRequest struct {
	SiteID string   `json:"site_id"`
	URLs   []string `json:"urls"`
}

func (h *Handler) deletePages(c *gin.Context) {
	var req deletePagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, "Invalid request body")
		return
	}
	deleted, err := h.Svc.DeletePages(c.Request.Context(), req.SiteID, req.URLs)
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "deletedCount": deleted})
}
