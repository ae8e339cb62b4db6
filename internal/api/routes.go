package api

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine with all routes registered.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logRoute())

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/detect", handler.Detect)
		v1.POST("/extract", handler.Extract)
		v1.POST("/company", handler.Company)
		v1.POST("/report", handler.Report)
	}
	return router
}
