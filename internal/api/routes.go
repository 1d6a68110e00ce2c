package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API endpoints on the given router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.POST("/properties/search", handler.SearchProperties)
		api.GET("/properties/viewport", handler.GetViewport)
		api.GET("/properties/:id", handler.GetProperty)

		api.POST("/offers/calculate", handler.CalculateOffer)
		api.POST("/offers/report", handler.CreateReport)

		api.GET("/leads", handler.GetLeads)
		api.POST("/leads/filter", handler.FilterLeads)
		api.POST("/leads/:id/score", handler.ScoreLead)

		api.GET("/market/stats", handler.GetMarketStats)
		api.GET("/market/trends", handler.GetMarketTrends)
		api.GET("/market/insights", handler.GetMarketInsights)

		api.POST("/ai/analyze-property", handler.AnalyzeProperty)
		api.POST("/email/generate", handler.GenerateEmail)

		api.GET("/status", handler.GetStatus)
	}
}
