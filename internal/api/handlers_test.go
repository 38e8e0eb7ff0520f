package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/service"
	"github.com/ericogr/grid-arena/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubRepo struct{}

func (stubRepo) ListBoards() ([]storage.BoardTemplate, error) { return nil, nil }

func (stubRepo) GetBoard(name string) (*game.Board, error) { return nil, storage.ErrBoardNotFound }

func (stubRepo) SaveBoard(b *game.Board) error { return nil }

func (stubRepo) UpsertProfile(uuid, name string) error { return nil }

func (stubRepo) UpdateStatsOnGameEnd(ids []string, winner string) error { return nil }

func (stubRepo) RecordQuit(uuid string) error { return nil }

func (stubRepo) GetTopPlayers(limit int) ([]storage.PlayerProfile, error) { return nil, nil }

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv(constants.EnvSessionSecret, "test-secret")
	gin.SetMode(gin.TestMode)

	manager := service.NewManager(stubRepo{}, service.Tunables{})
	handler := NewRoomHandler(stubRepo{}, manager)

	router := gin.New()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.POST(constants.RouteSession, handler.CreateSession)
	apiRoutes.GET(constants.RouteRooms, handler.ListRooms)
	protected := apiRoutes.Group("")
	protected.Use(AuthRequired())
	protected.POST(constants.RouteRooms, handler.CreateRoom)
	protected.POST(constants.RouteRoomJoin, handler.JoinRoom)
	return router
}

func postJSON(router *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	w := postJSON(router, "/api/session", `{"name": "`+name+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	require.NotEmpty(t, resp["playerId"])
	return resp["token"]
}

func TestCreateSession_RequiresName(t *testing.T) {
	router := testRouter(t)
	w := postJSON(router, "/api/session", `{}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoomLifecycleOverREST(t *testing.T) {
	router := testRouter(t)
	organizer := createSession(t, router, "Alice")
	guest := createSession(t, router, "Bob")

	// Creating a room requires a session.
	w := postJSON(router, "/api/rooms", `{}`, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/api/rooms", `{}`, organizer)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	code := created["accessCode"]
	require.Len(t, code, 4)

	// The fresh room shows up as open.
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	var rooms []service.RoomSummary
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	require.Equal(t, code, rooms[0].AccessCode)

	// Another player can join it; a bogus code cannot be joined.
	w = postJSON(router, "/api/rooms/join", `{"accessCode": "`+code+`"}`, guest)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/rooms/join", `{"accessCode": "XXXX"}`, guest)
	require.Equal(t, http.StatusNotFound, w.Code)
}
