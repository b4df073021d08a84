package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/enhance"
	"resume-tailor-backend/internal/llm"
	"resume-tailor-backend/internal/llm/gemini"
	"resume-tailor-backend/internal/resumes"
	"resume-tailor-backend/internal/services/health"
	"resume-tailor-backend/internal/shared/config"
	"resume-tailor-backend/internal/shared/metrics"
	"resume-tailor-backend/internal/shared/server/middleware"
	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
// The cooldown limiter's sweeper runs until ctx is done.
func NewRouter(ctx context.Context, cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed", nil)
	})

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(),
	)

	cooldown := middleware.NewCooldownLimiter(cfg.EnhanceCooldown, nil)
	cooldown.StartSweeper(ctx)

	// Dependencies
	var llmClient llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:          cfg.GeminiAPIKey,
			Model:           cfg.GeminiModel,
			Temperature:     cfg.GenTemperature,
			TopP:            cfg.GenTopP,
			MaxOutputTokens: cfg.GenMaxOutputTokens,
			Timeout:         cfg.GeminiTimeout,
		})
		if err != nil {
			log.Printf("gemini client init failed: %v", err)
		} else {
			llmClient = client
		}
	} else {
		log.Printf("GEMINI_API_KEY not set; enhancement requests will fail")
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(ctx, conn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				conn = nil
			}
			sqlDB = conn
		}
	}

	var resumeRepo resumes.Repo
	if sqlDB != nil {
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
	}
	resumeSvc := &resumes.Service{Repo: resumeRepo}
	resumeHandler := resumes.NewHandler(resumeSvc)

	enhanceSvc := &enhance.Service{LLM: llmClient, Model: cfg.GeminiModel}
	enhanceHandler := enhance.NewHandler(enhanceSvc)

	healthSvc := health.NewService()

	// The enhancement endpoint keeps its historical top-level path and sits
	// behind the per-identifier cooldown.
	enhanceHandler.RegisterRoutes(r.Group("/", middleware.Cooldown(cooldown)))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	resumeHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
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
