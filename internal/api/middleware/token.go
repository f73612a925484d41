package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	spotifyTokenKey    = "spotify_token"
	spotifyTokenCookie = "spotify_access_token"
)

// SpotifyToken extracts the caller's Spotify access token from the
// Authorization header (Bearer scheme) or the spotify_access_token cookie.
// Token validation is Spotify's job; we only require presence.
func SpotifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractSpotifyToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Spotify authorization required",
				"message": "Provide a Spotify access token via Authorization: Bearer or the spotify_access_token cookie",
			})
			c.Abort()
			return
		}

		c.Set(spotifyTokenKey, token)
		c.Next()
	}
}

// GetSpotifyToken retrieves the Spotify access token set by SpotifyToken.
func GetSpotifyToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(spotifyTokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok && token != ""
}

func extractSpotifyToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(after)
	}

	cookie, err := c.Cookie(spotifyTokenCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie)
}
