package game

// GameSession aggregates the mutable state of one running game. It is owned
// exclusively by its room and must only be touched from the room's intent
// loop; there is no locking at this level.
type GameSession struct {
	Board            *Board         `json:"board"`
	Players          []*PlayerState `json:"players"`
	CurrentTurnIndex int            `json:"current_turn_index"`
	DebugMode        bool           `json:"debug_mode"`
	Started          bool           `json:"started"`
}

// ActivePlayer returns the player whose turn it is, or nil before the game
// starts or after everyone left.
func (s *GameSession) ActivePlayer() *PlayerState {
	if len(s.Players) == 0 || s.CurrentTurnIndex < 0 || s.CurrentTurnIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentTurnIndex]
}

// PlayerByID finds a player in the roster, or nil.
func (s *GameSession) PlayerByID(id string) *PlayerState {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AdvanceTurn moves CurrentTurnIndex to the next player, wrapping around.
func (s *GameSession) AdvanceTurn() {
	if len(s.Players) == 0 {
		s.CurrentTurnIndex = 0
		return
	}
	s.CurrentTurnIndex = (s.CurrentTurnIndex + 1) % len(s.Players)
}
