package game

import "github.com/ericogr/grid-arena/internal/constants"

// Event is a domain event produced by the engine as a value. Components
// return events instead of emitting onto a bus; the room loop forwards them
// to the transport boundary.
type Event interface {
	EventName() string
}

type PlayerJoined struct {
	Player *PlayerState `json:"player"`
}

func (PlayerJoined) EventName() string { return constants.EventPlayerJoined }

type PlayerList struct {
	Players []*PlayerState `json:"players"`
}

func (PlayerList) EventName() string { return constants.EventPlayerList }

type RoomLocked struct{}

func (RoomLocked) EventName() string { return constants.EventRoomLocked }

type RoomUnlocked struct{}

func (RoomUnlocked) EventName() string { return constants.EventRoomUnlocked }

type PlayerRemoved struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason,omitempty"`
}

func (PlayerRemoved) EventName() string { return constants.EventPlayerRemoved }

type PlayerDisconnected struct {
	PlayerID string `json:"player_id"`
}

func (PlayerDisconnected) EventName() string { return constants.EventPlayerDisconnected }

// AdminDisconnected tells clients the whole room is being torn down because
// the organizer left before the game started.
type AdminDisconnected struct{}

func (AdminDisconnected) EventName() string { return constants.EventAdminDisconnected }

type GameStarted struct {
	Session *GameSession `json:"session"`
}

func (GameStarted) EventName() string { return constants.EventGameStarted }

type TurnChanged struct {
	PlayerID  string  `json:"player_id"`
	Reachable PathMap `json:"reachable"`
}

func (TurnChanged) EventName() string { return constants.EventTurnChanged }

type MovementBroadcast struct {
	PlayerID  string   `json:"player_id"`
	From      Position `json:"from"`
	To        Position `json:"to"`
	Remaining int      `json:"remaining_movement"`
}

func (MovementBroadcast) EventName() string { return constants.EventMovementBroadcast }

type DoorChanged struct {
	Position Position    `json:"position"`
	Terrain  TerrainKind `json:"terrain"`
}

func (DoorChanged) EventName() string { return constants.EventDoorChanged }

type TimerTick struct {
	Kind      string `json:"kind"`
	Remaining int    `json:"remaining_seconds"`
}

func (TimerTick) EventName() string { return constants.EventTimerTick }

type TurnEnded struct {
	PlayerID string `json:"player_id"`
}

func (TurnEnded) EventName() string { return constants.EventTurnEnded }

type DebugModeChanged struct {
	Enabled bool `json:"enabled"`
}

func (DebugModeChanged) EventName() string { return constants.EventDebugModeChanged }

type FightInit struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	First   string `json:"first"`
}

func (FightInit) EventName() string { return constants.EventFightInit }

// FightTurnSwitched carries the post-exchange snapshot of both fighters so
// clients can render lives and last rolls without tracking deltas.
type FightTurnSwitched struct {
	CurrentPlayer string    `json:"current_player"`
	Player1       FightInfo `json:"player1"`
	Player2       FightInfo `json:"player2"`
}

func (FightTurnSwitched) EventName() string { return constants.EventFightTurnSwitched }

// FightEnded reports the outcome. Winner and Loser are empty on a mutual
// disengage (successful flee or forced teardown).
type FightEnded struct {
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
}

func (FightEnded) EventName() string { return constants.EventFightEnded }

// ErrorNotice tells one player why their intent was rejected. It is sent
// only to the offending connection, never broadcast.
type ErrorNotice struct {
	Intent  string `json:"intent"`
	Message string `json:"message"`
}

func (ErrorNotice) EventName() string { return constants.EventError }

// JournalEntry is a human-readable line mirrored to the room's chat journal.
type JournalEntry struct {
	Message string `json:"message"`
}

func (JournalEntry) EventName() string { return constants.EventJournalEntry }
