package api

import (
	crand "crypto/rand"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ericogr/grid-arena/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 12 * time.Hour

type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

var (
	devSecretOnce sync.Once
	devSecret     []byte
	devSecretErr  error
)

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvSessionSecret)
	if secret != "" {
		return []byte(secret), nil
	}
	// Generate an in-memory secret for development if not set. Generated
	// exactly once; concurrent first requests must agree on it.
	devSecretOnce.Do(func() {
		devSecret = make([]byte, 32)
		if _, err := crand.Read(devSecret); err != nil {
			devSecretErr = errors.New("failed to generate dev session secret")
		}
	})
	if devSecretErr != nil {
		return nil, devSecretErr
	}
	return devSecret, nil
}

// createSessionToken mints a guest session token for a player UUID.
func createSessionToken(playerID, name string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return getSessionSecret()
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// bearerToken extracts the session token from the Authorization header, or
// from the "token" query parameter for websocket upgrades (browsers cannot
// set headers on those).
func bearerToken(c *gin.Context) string {
	h := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(h, constants.BearerPrefix) {
		return strings.TrimPrefix(h, constants.BearerPrefix)
	}
	return c.Query("token")
}

// AuthRequired validates the session token and injects identity into context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set("playerID", claims.Subject)
		c.Set("playerName", claims.Name)
		c.Next()
	}
}
