package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"
	"github.com/playsnooker/backend/internal/config"
	"github.com/playsnooker/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

type registerRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
}

// Register creates a player account with a bcrypt-hashed PIN and returns a
// session token.
func Register(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "phone_number, display_name and pin are required")
			return
		}
		if !phonePattern.MatchString(req.PhoneNumber) {
			respondError(c, http.StatusBadRequest, "invalid phone number")
			return
		}
		if len(req.Pin) < 4 || len(req.Pin) > 8 {
			respondError(c, http.StatusBadRequest, "pin must be 4-8 digits")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to hash pin")
			return
		}

		var id int
		err = db.QueryRow(
			`INSERT INTO players (phone_number, display_name, pin_hash) VALUES ($1, $2, $3) RETURNING id`,
			req.PhoneNumber, req.DisplayName, string(hash)).Scan(&id)
		if err != nil {
			respondError(c, http.StatusConflict, "phone number already registered")
			return
		}

		token, err := issueToken(id, req.PhoneNumber, cfg)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to issue token")
			return
		}
		log.Printf("[AUTH] registered player %d (%s)", id, req.DisplayName)
		c.JSON(http.StatusCreated, gin.H{"player_id": id, "token": token})
	}
}

// Login verifies the PIN and returns a session token.
func Login(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "phone_number and pin are required")
			return
		}

		var player models.Player
		err := db.Get(&player, `SELECT * FROM players WHERE phone_number = $1`, req.PhoneNumber)
		if err == sql.ErrNoRows {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "lookup failed")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(player.PinHash), []byte(req.Pin)) != nil {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if _, err := db.Exec(`UPDATE players SET last_active = NOW() WHERE id = $1`, player.ID); err != nil {
			log.Printf("[AUTH] failed to touch last_active for player %d: %v", player.ID, err)
		}

		token, err := issueToken(player.ID, player.PhoneNumber, cfg)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to issue token")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"player_id":     player.ID,
			"display_name":  player.DisplayName,
			"highest_break": player.HighestBreak,
			"token":         token,
		})
	}
}

func issueToken(playerID int, phone string, cfg *config.Config) (string, error) {
	exp := time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute)
	claims := jwt.MapClaims{
		"player_id": playerID,
		"phone":     phone,
		"exp":       exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
