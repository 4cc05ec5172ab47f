package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playsnooker/backend/internal/game"
	"github.com/playsnooker/backend/internal/models"
)

type createMatchRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// CreateMatch opens a new two-player match and returns the join token plus
// the creator's player token for the websocket.
func CreateMatch(mgr *game.MatchManager, db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "display_name is required")
			return
		}
		dbID := c.GetInt("player_id")

		m := mgr.CreateMatch(req.DisplayName, dbID)
		c.JSON(http.StatusCreated, gin.H{
			"match_id":     m.ID,
			"match_token":  m.Token,
			"player_id":    m.Player1.ID,
			"player_token": m.Player1.PlayerToken,
		})
	}
}

// JoinMatch seats the caller as the second player.
func JoinMatch(mgr *game.MatchManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "display_name is required")
			return
		}
		dbID := c.GetInt("player_id")

		m, err := mgr.JoinMatch(c.Param("token"), req.DisplayName, dbID)
		if err != nil {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"match_id":     m.ID,
			"match_token":  m.Token,
			"player_id":    m.Player2.ID,
			"player_token": m.Player2.PlayerToken,
		})
	}
}

// GetMatchState returns a read-only snapshot: ball positions, scores, aim
// state and placement flags. Clients poll this before the websocket is up.
func GetMatchState(mgr *game.MatchManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := mgr.GetMatch(c.Param("token"))
		if err != nil {
			respondError(c, http.StatusNotFound, "match not found")
			return
		}
		// The match loop mutates the simulation under the match lock.
		m.Lock()
		payload := gin.H{
			"match_id":              m.ID,
			"status":                m.Status,
			"balls":                 m.Sim.Balls(),
			"match":                 m.Sim.Match(),
			"shot":                  m.Sim.ShotState(),
			"balls_moving":          m.Sim.BallsMoving(),
			"cue_placement_pending": m.Sim.CuePlacementPending(),
			"winner":                m.Winner,
		}
		m.Unlock()
		c.JSON(http.StatusOK, payload)
	}
}

// BreakLeaderboard lists the top career breaks.
func BreakLeaderboard(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []models.BreakEntry
		err := db.Select(&entries,
			`SELECT display_name, highest_break FROM players
			 WHERE highest_break > 0
			 ORDER BY highest_break DESC LIMIT 20`)
		if err != nil && err != sql.ErrNoRows {
			respondError(c, http.StatusInternalServerError, "leaderboard lookup failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"breaks": entries})
	}
}
