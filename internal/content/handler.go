package content

import (
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
	rg.POST("/content", h.create)
	rg.POST("/content/improvement", h.improvement)
	rg.POST("/content/cluster", h.cluster)
}

func (h *Handler) create(c *gin.Context) {
	var structure Structure
	if err := c.ShouldBindJSON(&structure); err != nil {
		respond.Fail(c, "Invalid request body")
		return
	}
	markdown, err := h.Svc.CreateContent(c.Request.Context(), structure)
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "content": markdown})
}

type improvementRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

func (h *Handler) improvement(c *gin.Context) {
	var req improvementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, "Invalid request body")
		return
	}
	result, err := h.Svc.ExecuteImprovement(c.Request.Context(), req.URL, req.Type)
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "result": result})
}

func (h *Handler) cluster(c *gin.Context) {
	result, err := h.Svc.ExecuteCluster(c.Request.Context(), c.PostForm("url"))
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{"success": true, "result": result})
}
