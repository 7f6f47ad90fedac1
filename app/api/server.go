package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the report preview HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Report endpoints
	r.GET("/reports", handler.ListReports)
	r.GET("/reports/:date", handler.GetReport)
	r.GET("/reports/:date/data", handler.GetReportData)

	// Health endpoint
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Trendscout",
			"version":     handler.version,
			"description": "Weekly startup trend scraper with AI-driven opportunity analysis",
			"endpoints": map[string]string{
				"reports": "/reports",
				"report":  "/reports/<yyyymmdd>",
				"data":    "/reports/<yyyymmdd>/data",
				"health":  "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
