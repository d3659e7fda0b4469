package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abduss/pdfvault/internal/config"
	"github.com/abduss/pdfvault/internal/document"
	"github.com/abduss/pdfvault/internal/logger"
	"github.com/abduss/pdfvault/internal/metrics"
	"github.com/abduss/pdfvault/web"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config          config.Config
	DB              *pgxpool.Pool
	DocumentService *document.Service
	// BlobCheck reports whether the blob backend is reachable; nil skips it
	// during readiness probes.
	BlobCheck func(ctx context.Context) error
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	metrics.InitMetrics()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware(deps.Config.CORS))

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	if deps.DocumentService != nil {
		document.RegisterRoutes(&router.RouterGroup, deps.DocumentService)
	}

	router.Use(static.Serve("/", embedFolder(web.DistFS, "dist")))
	router.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index())
	})

	return router
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return originAllowed(cfg.AllowedOrigins, origin)
		},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", logger.CorrelationIDHeader},
		ExposeHeaders: []string{"Content-Disposition", logger.CorrelationIDHeader},
		MaxAge:        12 * time.Hour,
	})
}

// originAllowed accepts origins from the configured list plus Vercel preview
// deployments (https://<anything>.vercel.app).
func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	if rest, ok := strings.CutPrefix(origin, "https://"); ok {
		if strings.HasSuffix(rest, ".vercel.app") && !strings.ContainsAny(rest, "/:") {
			return true
		}
	}
	return false
}
