package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

type Handlers struct {
	Analysis *AnalysisHandler
	Game     *GameHandler
	Watch    *WatchHandler
	// History is nil when no database is configured
	History *HistoryHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")

	api.POST("/analyze", h.Analysis.Analyze)

	api.POST("/games", h.Game.CreateGame)
	api.GET("/games", h.Watch.GetLiveGames)
	api.GET("/games/:id", h.Game.GetGame)

	// Only the holder of the game token may play
	protected := api.Group("/games/:id")
	protected.Use(middleware.GameAuthMiddleware())
	{
		protected.POST("/moves", h.Game.MakeMove)
		protected.POST("/reset", h.Game.ResetGame)
	}

	if h.History != nil {
		api.GET("/history", h.History.GetHistory)
		api.GET("/history/:id", h.History.GetGameDetails)
	}
}
