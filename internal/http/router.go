// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, cron authentication, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Cron endpoints isolated behind their own auth middleware
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/parkstats/go-revenue-backend/internal/cache"
	"github.com/parkstats/go-revenue-backend/internal/config"
	"github.com/parkstats/go-revenue-backend/internal/http/handlers"
	"github.com/parkstats/go-revenue-backend/internal/http/middleware"
	"github.com/parkstats/go-revenue-backend/internal/networks"
	"github.com/parkstats/go-revenue-backend/internal/notify"
	"github.com/parkstats/go-revenue-backend/internal/secrets"
	"github.com/parkstats/go-revenue-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. fallbackUserID is the admin account unassigned revenue is
// attributed to, resolved at startup.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and security headers
//
// The /api/cron group additionally carries CronAuth; the scheduler is the
// only intended caller.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, memo *cache.Cache, cfg config.Config, fallbackUserID string) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); payloads here are small JSON bodies
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/cache/clients
	var box *secrets.Box
	if cfg.MasterKey != "" {
		b, err := secrets.NewBox(cfg.MasterKey)
		if err != nil {
			log.Warn().Err(err).Msg("MASTER_KEY invalid; stored accounts disabled")
		} else {
			box = b
		}
	}

	syncSvc := &services.SyncService{
		DB:              db,
		Cache:           memo,
		Box:             box,
		Notifier:        notify.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.AdminTo),
		FallbackUserID:  fallbackUserID,
		DefaultRevShare: cfg.DefaultRevShare,
		Lookback:        cfg.SyncLookback,
		SedoFactory: func(creds networks.SedoCredentials) services.SedoAPI {
			return networks.NewSedoClient(cfg.Sedo.Endpoint, creds, cfg.FetchTimeout)
		},
		YandexFactory: func(creds networks.YandexCredentials) services.YandexAPI {
			return networks.NewYandexClient(cfg.Yandex.Endpoint, creds, cfg.FetchTimeout)
		},
	}
	if creds := (networks.SedoCredentials{PartnerID: cfg.Sedo.PartnerID, SignKey: cfg.Sedo.SignKey}); creds.Configured() {
		syncSvc.Sedo = networks.NewSedoClient(cfg.Sedo.Endpoint, creds, cfg.FetchTimeout)
	}
	if creds := (networks.YandexCredentials{Token: cfg.Yandex.Token}); creds.Configured() {
		syncSvc.Yandex = networks.NewYandexClient(cfg.Yandex.Endpoint, creds, cfg.FetchTimeout)
	}

	reportSvc := services.NewReportService(db, memo, cfg.CacheShortTTL, cfg.CacheMediumTTL)
	assignSvc := services.NewAssignmentService(db, memo)
	acctSvc := services.NewAccountService(db, box)
	h := handlers.New(syncSvc, reportSvc, assignSvc, acctSvc)

	// Cron surface: shared-secret auth, bypassed only in development.
	cron := r.Group("/api/cron", middleware.CronAuth(cfg.CronSecret, cfg.IsDevelopment()))
	{
		cron.GET("/sync-sedo", h.CronSyncSedo)
		cron.GET("/sync-yandex", h.CronSyncYandex)
	}

	// Public API. Report payloads compress well.
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		// Sync
		api.POST("/sync/:network", h.ManualSync)
		api.GET("/sync/status", h.SyncStatus)

		// Reports
		api.GET("/reports/summary", h.GetSummary)
		api.GET("/reports/domains", h.GetDomains)
		api.GET("/reports/networks", h.GetNetworks)

		// Admin
		api.PUT("/admin/assignments", h.UpsertAssignment)
		api.DELETE("/admin/assignments", h.RemoveAssignment)
		api.GET("/admin/assignments", h.ListAssignments)
		api.POST("/admin/accounts", h.CreateAccount)
		api.GET("/admin/accounts", h.ListAccounts)
		api.DELETE("/admin/accounts/:id", h.DeactivateAccount)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the
// cap will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
