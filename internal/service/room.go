package service

import (
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/dedupe"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/storage"
)

// MaxPlayers caps the roster of one room, virtual players included.
const MaxPlayers = 4

// WinsToVictory ends the game for the first player reaching this many fight
// wins.
const WinsToVictory = 3

var (
	ErrRoomLocked  = errors.New("room is locked")
	ErrRoomFull    = errors.New("room is full")
	ErrGameStarted = errors.New("game already started")
	ErrRoomClosed  = errors.New("room is closed")
)

// Tunables are the runtime knobs shared by every room of a manager.
type Tunables struct {
	TurnDuration       time.Duration
	CombatTurnDuration time.Duration
	PlaybackTick       time.Duration
	FleeSuccessChance  float64
}

type joinRequest struct {
	player  *game.PlayerState
	errChan chan error
}

type attachRequest struct {
	playerID string
	send     chan<- []byte
}

// playbackState is the in-flight movement sequence of the active player.
// While it runs no other mutation touches that player's position; an
// end-turn request is queued and applied the instant the sequence finishes.
type playbackState struct {
	player *game.PlayerState
	path   []game.Position
	idx    int
}

// Room owns all mutable state behind one access code. Every mutation happens
// on the room's own goroutine (the run loop); the exported methods only pass
// messages in, so rooms are isolated state machines and a failure in one can
// never corrupt another.
type Room struct {
	AccessCode  string
	OrganizerID string

	locked  bool
	session *game.GameSession
	fight   *game.FightState

	timer     *turnTimer
	suspended *turnTimer

	running        bool
	reachable      game.PathMap
	playback       *playbackState
	pendingEndTurn bool
	pendingDoor    *game.Position
	pendingTarget  string
	botPending     bool
	ready          map[string]bool

	summary atomic.Pointer[RoomSummary]

	roller game.Roller
	cfg    Tunables
	repo   storage.Repository

	inbox    chan Intent
	joins    chan joinRequest
	attaches chan attachRequest
	detaches chan string
	closing  chan struct{}

	subscribers map[string]chan<- []byte
	onEmpty     func(code string)
}

func newRoom(code string, organizer *game.PlayerState, repo storage.Repository, cfg Tunables, onEmpty func(string)) *Room {
	if cfg.TurnDuration <= 0 {
		cfg.TurnDuration = 30 * time.Second
	}
	if cfg.CombatTurnDuration <= 0 {
		cfg.CombatTurnDuration = 5 * time.Second
	}
	if cfg.PlaybackTick <= 0 {
		cfg.PlaybackTick = 150 * time.Millisecond
	}
	r := &Room{
		AccessCode:  code,
		OrganizerID: organizer.ID,
		session:     &game.GameSession{Players: []*game.PlayerState{organizer}},
		ready:       make(map[string]bool),
		roller:      game.NewRoller(),
		cfg:         cfg,
		repo:        repo,
		inbox:       make(chan Intent, 256),
		joins:       make(chan joinRequest),
		attaches:    make(chan attachRequest, 16),
		detaches:    make(chan string, 16),
		closing:     make(chan struct{}),
		subscribers: make(map[string]chan<- []byte),
		onEmpty:     onEmpty,
	}
	r.publishSummary()
	return r
}

// Post queues an intent for the room loop. Posting to a closed room is a
// silent no-op, mirroring the tolerant handling of late client packets.
func (r *Room) Post(intent Intent) {
	select {
	case r.inbox <- intent:
	case <-r.closing:
	}
}

// Join adds a player to the roster, serialized through the room loop.
func (r *Room) Join(p *game.PlayerState) error {
	req := joinRequest{player: p, errChan: make(chan error, 1)}
	select {
	case r.joins <- req:
	case <-r.closing:
		return ErrRoomClosed
	}
	select {
	case err := <-req.errChan:
		return err
	case <-r.closing:
		return ErrRoomClosed
	}
}

// Attach registers a subscriber channel receiving the room's serialized
// events for one player connection.
func (r *Room) Attach(playerID string, send chan<- []byte) {
	select {
	case r.attaches <- attachRequest{playerID: playerID, send: send}:
	case <-r.closing:
	}
}

// Detach unregisters a subscriber channel. The connection teardown posts a
// disconnect intent separately; detaching only stops event delivery.
func (r *Room) Detach(playerID string) {
	select {
	case r.detaches <- playerID:
	case <-r.closing:
	}
}

// Summary returns the lobby-facing snapshot of the room. The room loop
// republishes it after every roster, lock or start change, so reading it
// never touches live room state from another goroutine.
func (r *Room) Summary() RoomSummary {
	return *r.summary.Load()
}

func (r *Room) publishSummary() {
	r.summary.Store(&RoomSummary{
		AccessCode:  r.AccessCode,
		PlayerCount: len(r.session.Players),
		Locked:      r.locked,
		Started:     r.session.Started,
	})
}

func (r *Room) run() {
	second := time.NewTicker(time.Second)
	playTick := time.NewTicker(r.cfg.PlaybackTick)
	defer second.Stop()
	defer playTick.Stop()

	for {
		select {
		case intent := <-r.inbox:
			r.handleIntent(intent)
		case req := <-r.joins:
			req.errChan <- r.handleJoin(req.player)
		case req := <-r.attaches:
			r.subscribers[req.playerID] = req.send
		case id := <-r.detaches:
			delete(r.subscribers, id)
		case <-second.C:
			r.tickSecond()
		case <-playTick.C:
			r.tickPlayback()
		case <-r.closing:
			return
		}
	}
}

func (r *Room) handleJoin(p *game.PlayerState) error {
	if r.locked {
		return ErrRoomLocked
	}
	if r.session.Started {
		return ErrGameStarted
	}
	if len(r.session.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	r.session.Players = append(r.session.Players, p)
	r.publishSummary()
	r.emit(game.PlayerJoined{Player: p}, game.PlayerList{Players: r.session.Players})
	return nil
}

// teardown closes the room for good and unregisters it from the manager.
// Idempotent: late removals can cascade into a second call.
func (r *Room) teardown() {
	select {
	case <-r.closing:
		return
	default:
	}
	close(r.closing)
	if r.onEmpty != nil {
		r.onEmpty(r.AccessCode)
	}
	logging.Info("room closed", logging.Fields{constants.LogFieldRoom: r.AccessCode})
}

type eventEnvelope struct {
	Event string     `json:"event"`
	Data  game.Event `json:"data"`
}

// emit serializes events once and fans them out to every subscriber. Slow
// consumers are skipped rather than blocking the room loop.
func (r *Room) emit(events ...game.Event) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		b, err := json.Marshal(eventEnvelope{Event: ev.EventName(), Data: ev})
		if err != nil {
			logging.Error("failed to encode event", err, logging.Fields{constants.LogFieldRoom: r.AccessCode})
			continue
		}
		for _, ch := range r.subscribers {
			select {
			case ch <- b:
			default:
			}
		}
	}
}

func (r *Room) sendTo(playerID string, ev game.Event) {
	ch, ok := r.subscribers[playerID]
	if !ok {
		return
	}
	b, err := json.Marshal(eventEnvelope{Event: ev.EventName(), Data: ev})
	if err != nil {
		return
	}
	select {
	case ch <- b:
	default:
	}
}

// loadBoard fetches a board template, deduplicating concurrent loads of the
// same template across rooms, and hands back a private copy safe to mutate.
func (r *Room) loadBoard(name string) (*game.Board, error) {
	v, err, _ := dedupe.BoardGroup.Do(name, func() (interface{}, error) {
		return r.repo.GetBoard(name)
	})
	if err != nil {
		return nil, err
	}
	return copyBoard(v.(*game.Board)), nil
}

func copyBoard(src *game.Board) *game.Board {
	dst := &game.Board{Name: src.Name, Cols: src.Cols, Rows: src.Rows, Grid: make([][]game.Cell, len(src.Grid))}
	for y := range src.Grid {
		dst.Grid[y] = make([]game.Cell, len(src.Grid[y]))
		copy(dst.Grid[y], src.Grid[y])
	}
	return dst
}
