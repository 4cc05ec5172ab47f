package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playsnooker/backend/internal/game"
	"github.com/playsnooker/backend/internal/ws"
)

// HandleMatchWebSocket hands the upgrade off to the ws package.
func HandleMatchWebSocket(mgr *game.MatchManager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws.HandleWebSocket(c, mgr, hub)
	}
}
