package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/analyses"
	"seo-backend/internal/content"
	"seo-backend/internal/fetch"
	"seo-backend/internal/llm"
	"seo-backend/internal/llm/claude"
	"seo-backend/internal/llm/gemini"
	"seo-backend/internal/llm/openai"
	"seo-backend/internal/scrape"
	"seo-backend/internal/shared/config"
	"seo-backend/internal/shared/server/middleware"
	"seo-backend/internal/shared/server/respond"
	"seo-backend/internal/shared/storage/db"
	"seo-backend/internal/sites"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Clients expect a JSON 405 for wrong-method calls, not gin's default 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(respond.MethodNotAllowed)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var siteRepo sites.Repo
	var multiRepo, seoRepo analyses.Repo
	if sqlDB != nil {
		siteRepo = &sites.PGRepo{DB: sqlDB}
		multiRepo = analyses.NewMultiAIRepo(sqlDB)
		seoRepo = analyses.NewSEORepo(sqlDB)
	} else {
		siteRepo = sites.NewMemoryRepo()
		multiRepo = analyses.NewMemoryRepo()
		seoRepo = analyses.NewMemoryRepo()
	}

	providers := buildProviders(cfg)

	fetcher := fetch.New(cfg.FetchTimeout)

	siteSvc := sites.NewService(siteRepo)
	siteHandler := sites.NewHandler(siteSvc)

	scrapeSvc := scrape.NewService(siteRepo, scrape.NewCollyCrawler(cfg.FetchTimeout))
	scrapeHandler := scrape.NewHandler(scrapeSvc)

	analysisSvc := &analyses.Service{
		Multi:   multiRepo,
		SEO:     seoRepo,
		Fetcher: fetcher,
		Clients: providers.analysis,
		Gemini:  providers.gemini,
	}
	analysisHandler := analyses.NewHandler(analysisSvc, &cfg)

	contentSvc := content.NewService(fetcher, providers.content)
	contentHandler := content.NewHandler(contentSvc)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	siteHandler.RegisterRoutes(api)
	scrapeHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)
	contentHandler.RegisterRoutes(api)

	return r
}

// providers holds the constructed LLM clients: the analysis fan-out set, the
// Gemini analysis client, and a separate Gemini content client with the
// long-form timeout and a warmer temperature.
type providers struct {
	analysis []llm.Client
	gemini   llm.Client
	content  llm.Client
}

func buildProviders(cfg config.Config) providers {
	var p providers
	if g, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AnalysisTimeout); err != nil {
		log.Printf("gemini client disabled: %v", err)
	} else {
		p.analysis = append(p.analysis, g)
		p.gemini = g
	}
	// Content generation gets its own client: analysis replies are bounded
	// by AnalysisTimeout, full articles need ContentTimeout.
	if g, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ContentTimeout); err == nil {
		p.content = g.WithTemperature(0.5)
	}
	if o, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AnalysisTimeout); err != nil {
		log.Printf("openai client disabled: %v", err)
	} else {
		p.analysis = append(p.analysis, o)
	}
	if cl, err := claude.NewClient(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.AnalysisTimeout); err != nil {
		log.Printf("claude client disabled: %v", err)
	} else {
		p.analysis = append(p.analysis, cl)
	}
	return p
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
