package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every issued token. SessionID is rotated at each
// login; Redis-backed state (admin mode, join intent) is keyed by it, so
// a fresh login never inherits privileged flags from an older session.
type Claims struct {
	Email     string `json:"email"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken signs a 24h bearer token for the given identity.
func IssueToken(email, userID, sessionID string) (string, error) {
	claims := &Claims{
		Email:     email,
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ExtractClaims parses and validates the Authorization header.
func ExtractClaims(c *gin.Context) (*Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("missing Authorization header")
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header {
		return nil, errors.New("malformed Authorization header")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// AuthRequired aborts with 401 unless the request carries a valid token.
// The verified claims are stashed on the context for the handlers.
func AuthRequired(c *gin.Context) {
	claims, err := ExtractClaims(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Set("email", claims.Email)
	c.Set("user_id", claims.UserID)
	c.Set("session_id", claims.SessionID)
	c.Next()
}

// SessionUserID returns the authenticated user id set by AuthRequired.
func SessionUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// SessionID returns the session id set by AuthRequired.
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}

// SessionEmail returns the authenticated email set by AuthRequired.
func SessionEmail(c *gin.Context) string {
	return c.GetString("email")
}
