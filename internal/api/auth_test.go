package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/grid-arena/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")

	token, err := createSessionToken("uuid-123", "Alice", time.Hour)
	require.NoError(t, err)

	claims, err := parseAndValidateSession(token)
	require.NoError(t, err)
	require.Equal(t, "uuid-123", claims.Subject)
	require.Equal(t, "Alice", claims.Name)
}

func TestDevSecret_StableAcrossConcurrentCalls(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "")

	var wg sync.WaitGroup
	secrets := make([][]byte, 8)
	for i := range secrets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := getSessionSecret()
			if err != nil {
				t.Errorf("secret generation failed: %v", err)
				return
			}
			secrets[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(secrets); i++ {
		require.True(t, bytes.Equal(secrets[0], secrets[i]),
			"every caller must see the same generated secret")
	}
}

func TestSessionToken_ExpiredRejected(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")

	token, err := createSessionToken("uuid-123", "Alice", -time.Minute)
	require.NoError(t, err)

	_, err = parseAndValidateSession(token)
	require.Error(t, err)
}

func TestSessionToken_WrongSecretRejected(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "secret-one")
	token, err := createSessionToken("uuid-123", "Alice", time.Hour)
	require.NoError(t, err)

	t.Setenv(constants.EnvSessionSecret, "secret-two")
	_, err = parseAndValidateSession(token)
	require.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthRequired(), func(c *gin.Context) {
		id, _ := c.Get("playerID")
		c.String(http.StatusOK, id.(string))
	})

	// No token at all.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Bearer header.
	token, err := createSessionToken("uuid-123", "Alice", time.Hour)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "uuid-123", w.Body.String())

	// Query parameter fallback used by websocket upgrades.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
