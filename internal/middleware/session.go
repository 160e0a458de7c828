package middleware

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the signed session id.
	SessionCookie = "purecheck_session"

	sessionContextKey = "sessionID"
	sessionLifetime   = 7 * 24 * time.Hour
)

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, errors.New("SESSION_SECRET not set")
	}
	return []byte(secret), nil
}

func signSessionID(sessionID string) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(sessionLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseSessionID(tokenString string) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid session claims")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("missing session id")
	}
	return sid, nil
}

// Session attaches a session id to every request. An absent or invalid
// cookie just mints a fresh session instead of rejecting the request; the
// cookie is signed so a client cannot pick another session's id.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""

		if cookie, err := c.Cookie(SessionCookie); err == nil {
			sessionID, _ = parseSessionID(cookie)
		}

		if sessionID == "" {
			sessionID = uuid.New().String()

			signed, err := signSessionID(sessionID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "session initialization failed"})
				c.Abort()
				return
			}
			c.SetCookie(SessionCookie, signed, int(sessionLifetime.Seconds()), "/", "", false, true)
		}

		c.Set(sessionContextKey, sessionID)
		c.Next()
	}
}

// SessionID returns the session id attached by Session.
func SessionID(c *gin.Context) string {
	id, _ := c.Get(sessionContextKey)
	s, _ := id.(string)
	return s
}
