package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
	sendQueueSize  = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer on the upgrade request.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// intentEnvelope is the client-to-server wire shape.
type intentEnvelope struct {
	Intent string          `json:"intent"`
	Data   json.RawMessage `json:"data"`
}

// RoomSocket upgrades an authenticated request to the room's event stream.
// Each connection runs a read pump feeding intents into the room loop and a
// write pump draining the subscriber channel, the usual gorilla pairing.
func (h *RoomHandler) RoomSocket(c *gin.Context) {
	playerID, _ := c.Get("playerID")
	code := c.Param("code")
	room, ok := h.manager.Room(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldRoom: code})
		return
	}

	send := make(chan []byte, sendQueueSize)
	room.Attach(playerID.(string), send)

	go writePump(conn, send)
	go readPump(conn, room, playerID.(string))
}

func readPump(conn *websocket.Conn, room *service.Room, playerID string) {
	defer func() {
		room.Detach(playerID)
		room.Post(service.Intent{Name: constants.IntentDisconnectPlayer, PlayerID: playerID})
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// A client that floods intents gets throttled, not disconnected; turn
	// play rarely needs more than a message a second.
	limiter := rate.NewLimiter(5, 10)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("websocket read failed", logging.Fields{
					constants.LogFieldPlayer: playerID,
					constants.LogFieldReason: err.Error(),
				})
			}
			return
		}
		if !limiter.Allow() {
			continue
		}
		var env intentEnvelope
		if err := json.Unmarshal(data, &env); err != nil || env.Intent == "" {
			continue
		}
		room.Post(service.Intent{Name: env.Intent, PlayerID: playerID, Data: env.Data})
	}
}

func writePump(conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
