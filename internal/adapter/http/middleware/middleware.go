package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"blogapp/internal/core/telemetry"
	"blogapp/pkg/config"
)

// SetupGinMiddleware installs the middleware every route shares, in order.
func SetupGinMiddleware(router *gin.Engine, cfg *config.AppConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger) {
	httpsEnforcer := NewHTTPSEnforcer(cfg.EnforceHTTPS, logger.Logger.Logger)
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	router.Use(CurrentMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}
}
