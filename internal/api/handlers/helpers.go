package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/playsnooker/backend/internal/config"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// playerIDFromRequest extracts and validates the bearer token, returning the
// DB player id.
func playerIDFromRequest(c *gin.Context, cfg *config.Config) (int, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, errors.New("missing bearer token")
	}
	token := strings.TrimPrefix(header, "Bearer ")

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["player_id"].(float64)
	if !ok {
		return 0, errors.New("invalid player id claim")
	}
	return int(id), nil
}

// RequireAuth aborts the request unless a valid bearer token is present and
// stashes the player id in the context.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := playerIDFromRequest(c, cfg)
		if err != nil {
			respondError(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}
		c.Set("player_id", id)
		c.Next()
	}
}
