package server

import (
	"time"

	"cityguardian/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointHealth     = "/"
	EndPointSendReport = "/send-report"
	EndPointMetrics    = "/metrics"
)

// NewRouter builds the gin router with CORS and all endpoints wired.
func NewRouter(h *handlers.Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(EndPointHealth, h.Health)
	router.POST(EndPointSendReport, h.SendReport)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	return router
}
