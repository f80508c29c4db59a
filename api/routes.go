package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port        string
	MaxFileSize int64
	TempDir     string
	Logger      *logrus.Logger
}

func SetupRoutes(r *gin.Engine, config *Config) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/extract", func(c *gin.Context) { HandleExtract(c, config) })
		apiGroup.POST("/info", func(c *gin.Context) { HandleInfo(c, config) })
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
