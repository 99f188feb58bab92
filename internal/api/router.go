package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires the analysis routes onto a fresh gin engine
func NewRouter(handler *AnalysisHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/analyses", handler.CreateAnalysis)
		api.GET("/analyses", handler.ListAnalyses)
		api.GET("/analyses/:id", handler.GetAnalysis)
	}
	return router
}
