package service

import (
	"fmt"
	"sync"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
	"github.com/ericogr/grid-arena/internal/storage"
)

const accessCodeSpace = 10000

// RoomSummary is the lobby-facing view of a room.
type RoomSummary struct {
	AccessCode  string `json:"accessCode"`
	PlayerCount int    `json:"playerCount"`
	Locked      bool   `json:"locked"`
	Started     bool   `json:"started"`
}

// Manager tracks every live room by access code. Rooms mutate themselves on
// their own goroutines; the manager only guards the registry map.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	repo   storage.Repository
	cfg    Tunables
	roller game.Roller
}

func NewManager(repo storage.Repository, cfg Tunables) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		repo:   repo,
		cfg:    cfg,
		roller: game.NewRoller(),
	}
}

// CreateRoom spins up a room under a fresh four-digit access code with the
// given player as organizer, and starts its loop.
func (m *Manager) CreateRoom(organizer *game.PlayerState) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.rooms) >= accessCodeSpace {
		return nil, fmt.Errorf("no access codes available")
	}
	var code string
	for {
		code = fmt.Sprintf("%04d", m.roller.Intn(accessCodeSpace))
		if _, taken := m.rooms[code]; !taken {
			break
		}
	}

	room := newRoom(code, organizer, m.repo, m.cfg, m.remove)
	m.rooms[code] = room
	go room.run()

	logging.Info("room created", logging.Fields{
		constants.LogFieldRoom:   code,
		constants.LogFieldPlayer: organizer.ID,
	})
	return room, nil
}

// Room returns the live room for an access code, if any.
func (m *Manager) Room(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// JoinRoom adds a player to an existing room.
func (m *Manager) JoinRoom(code string, p *game.PlayerState) (*Room, error) {
	room, ok := m.Room(code)
	if !ok {
		return nil, ErrRoomClosed
	}
	if err := room.Join(p); err != nil {
		return nil, err
	}
	return room, nil
}

// ListOpenRooms returns summaries of rooms still accepting players. The
// summaries are snapshots published by each room loop, never reads of live
// room state.
func (m *Manager) ListOpenRooms() []RoomSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomSummary, 0, len(m.rooms))
	for _, r := range m.rooms {
		s := r.Summary()
		if s.Locked || s.Started {
			continue
		}
		out = append(out, s)
	}
	return out
}

// remove is each room's onEmpty callback.
func (m *Manager) remove(code string) {
	m.mu.Lock()
	delete(m.rooms, code)
	m.mu.Unlock()
}
