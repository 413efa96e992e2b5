package analyses

import (
	"errors"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/shared/config"
	"seo-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
	Cfg *config.Config
}

func NewHandler(svc *Service, cfg *config.Config) *Handler {
	return &Handler{Svc: svc, Cfg: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/multi", h.multi)
	rg.POST("/analyses/seo", h.seo)
	rg.POST("/analyses/check", h.check)
	rg.POST("/analyses/results", h.results)
}

func forceFlag(c *gin.Context) bool {
	v := c.PostForm("force_reanalyze")
	return v == "true" || v == "1"
}

func (h *Handler) multi(c *gin.Context) {
	if !h.Cfg.HasAllProviderKeys() {
		respond.FailWithDebug(c,
			"API keys are not configured. Set GEMINI_API_KEY, OPENAI_API_KEY and CLAUDE_API_KEY.",
			gin.H{
				"gemini": h.Cfg.GeminiAPIKey != "",
				"openai": h.Cfg.OpenAIAPIKey != "",
				"claude": h.Cfg.ClaudeAPIKey != "",
			})
		return
	}

	out, err := h.Svc.AnalyzeMulti(c.Request.Context(), c.PostForm("url"), forceFlag(c))
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{
		"success":         true,
		"multiAIResults":  out.Results,
		"finalSuggestion": out.FinalSuggestion,
		"fromCache":       out.FromCache,
		"analysisDate":    out.AnalysisDate,
	})
}

func (h *Handler) seo(c *gin.Context) {
	out, err := h.Svc.AnalyzeSEO(c.Request.Context(), c.PostForm("url"), forceFlag(c))
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{
		"success":            true,
		"improvements":       out.Improvements,
		"clusterSuggestions": out.ClusterSuggestions,
		"analysis":           out.Audit,
		"fromCache":          out.FromCache,
	})
}

func (h *Handler) check(c *gin.Context) {
	has, date, err := h.Svc.Check(c.Request.Context(), c.PostForm("url"))
	if err != nil {
		respond.Fail(c, err.Error())
		return
	}
	payload := gin.H{"success": true, "hasAnalysis": has}
	if has {
		payload["analysisDate"] = date
	}
	respond.OK(c, payload)
}

func (h *Handler) results(c *gin.Context) {
	out, err := h.Svc.CachedResults(c.Request.Context(), c.PostForm("url"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Fail(c, "No analysis found for this URL")
			return
		}
		respond.Fail(c, err.Error())
		return
	}
	respond.OK(c, gin.H{
		"success":         true,
		"multiAIResults":  out.Results,
		"finalSuggestion": out.FinalSuggestion,
		"fromCache":       true,
		"analysisDate":    out.AnalysisDate,
	})
}
