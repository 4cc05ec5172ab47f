package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playsnooker/backend/internal/api/handlers"
	"github.com/playsnooker/backend/internal/config"
	"github.com/playsnooker/backend/internal/game"
	"github.com/playsnooker/backend/internal/middleware"
	"github.com/playsnooker/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, mgr *game.MatchManager, hub *ws.Hub, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db, cfg))
			auth.POST("/login", handlers.Login(db, cfg))
		}

		match := v1.Group("/match")
		{
			match.POST("", handlers.RequireAuth(cfg), handlers.CreateMatch(mgr, db))
			match.POST("/:token/join", handlers.RequireAuth(cfg), handlers.JoinMatch(mgr))
			match.GET("/:token", handlers.GetMatchState(mgr))
			match.GET("/:token/ws", handlers.HandleMatchWebSocket(mgr, hub))
		}

		v1.GET("/leaderboard/breaks", handlers.BreakLeaderboard(db))
	}
}
