package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/service"
	"github.com/ericogr/grid-arena/internal/storage"
	"github.com/ericogr/grid-arena/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomHandler serves the REST surface: guest sessions, room lifecycle and
// read-only game data. The realtime play itself happens on the socket.
type RoomHandler struct {
	repo    storage.Repository
	manager *service.Manager
}

func NewRoomHandler(repo storage.Repository, manager *service.Manager) *RoomHandler {
	return &RoomHandler{repo: repo, manager: manager}
}

type createSessionRequest struct {
	Name string `json:"name"`
}

// CreateSession mints a guest identity: a fresh player UUID bound to a
// display name, returned as a signed session token.
func (h *RoomHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameRequired})
		return
	}
	playerID := uuid.NewString()
	if err := h.repo.UpsertProfile(playerID, req.Name); err != nil {
		logging.Error("failed to upsert profile", err, logging.Fields{constants.LogFieldPlayer: playerID})
	}
	token, err := createSessionToken(playerID, req.Name, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"playerId": playerID,
		"name":     req.Name,
	})
}

func playerFromContext(c *gin.Context) *game.PlayerState {
	id, _ := c.Get("playerID")
	name, _ := c.Get("playerName")
	return &game.PlayerState{
		ID:       id.(string),
		Name:     name.(string),
		Position: game.NoPosition,
		Spawn:    game.NoPosition,
	}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	room, err := h.manager.CreateRoom(playerFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"accessCode": room.AccessCode})
}

type joinRoomRequest struct {
	AccessCode string `json:"accessCode"`
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AccessCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := h.manager.JoinRoom(req.AccessCode, playerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomClosed):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		case errors.Is(err, service.ErrRoomLocked), errors.Is(err, service.ErrGameStarted):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrRoomLocked})
		case errors.Is(err, service.ErrRoomFull):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrRoomFull})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessCode": room.AccessCode})
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ListOpenRooms())
}

func (h *RoomHandler) ListBoards(c *gin.Context) {
	boards, err := h.repo.ListBoards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoards})
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *RoomHandler) GetBoard(c *gin.Context) {
	board, err := h.repo.GetBoard(c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBoardNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoards})
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *RoomHandler) ListLeaderboard(c *gin.Context) {
	players, err := h.repo.GetTopPlayers(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaders})
		return
	}
	c.JSON(http.StatusOK, players)
}

func (h *RoomHandler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}
