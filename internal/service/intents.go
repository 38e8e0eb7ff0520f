package service

import (
	"encoding/json"

	"github.com/ericogr/grid-arena/internal/game"
)

// Intent is one client request addressed to a room, serialized through the
// room's inbox so state mutations never interleave. Data holds the
// intent-specific payload, decoded inside the room loop.
type Intent struct {
	Name     string
	PlayerID string
	Data     json.RawMessage
}

// ShareCharacterPayload carries a player's chosen character build.
type ShareCharacterPayload struct {
	Name         string        `json:"name"`
	Avatar       string        `json:"avatar"`
	Life         int           `json:"life"`
	Speed        int           `json:"speed"`
	AttackPower  int           `json:"attack_power"`
	DefensePower int           `json:"defense_power"`
	AttackDice   game.DiceKind `json:"attack_dice"`
	DefenseDice  game.DiceKind `json:"defense_dice"`
}

// ConfigureGamePayload starts game setup: which board to load and which
// virtual players to add.
type ConfigureGamePayload struct {
	BoardName      string          `json:"board_name"`
	VirtualPlayers []game.BotStyle `json:"virtual_players"`
}

// MovePayload submits a previously-offered path by its destination.
type MovePayload struct {
	To game.Position `json:"to"`
}

// DebugMovePayload is a direct single-cell teleport, debug mode only.
type DebugMovePayload struct {
	To game.Position `json:"to"`
}

// ToggleDoorPayload names the door cell to flip.
type ToggleDoorPayload struct {
	Position game.Position `json:"position"`
}

// FightInitPayload names the opponent to engage.
type FightInitPayload struct {
	TargetID string `json:"target_id"`
}

// RemovePlayerPayload names the player the organizer wants out.
type RemovePlayerPayload struct {
	PlayerID string `json:"player_id"`
}
