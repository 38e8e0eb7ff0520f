package service

import (
	"errors"

	"github.com/ericogr/grid-arena/internal/engine"
	"github.com/ericogr/grid-arena/internal/game"
)

var (
	ErrNotEnoughSpawns = errors.New("board has fewer spawn points than players")
	ErrDoorNotAdjacent = errors.New("door is not adjacent to the player")
	ErrNotADoor        = errors.New("target cell is not a door")
	ErrNoActionsLeft   = errors.New("no actions remaining")
	ErrDoorBlocked     = errors.New("door cell is occupied")
)

// itemStatBoost is applied once when a boost item is picked up.
const itemStatBoost = 2

// ApplyStep moves a player one cell, maintaining occupancy on both cells,
// terrain stance modifiers and item pickups, and deducts the step's movement
// cost. Callers are responsible for step legality; the room loop only feeds
// steps from validated paths (or debug moves).
func ApplyStep(s *game.GameSession, p *game.PlayerState, to game.Position) []game.Event {
	var events []game.Event

	from := p.Position
	if old := s.Board.At(from); old != nil && old.Occupant == p.ID {
		old.Occupant = ""
	}
	cell := s.Board.At(to)
	if cell == nil {
		return events
	}
	cell.Occupant = p.ID
	p.Position = to
	p.OnIce = cell.Terrain == game.TerrainIce

	if cost, ok := game.MoveCost(cell.Terrain); ok {
		p.MovementPts -= cost
		if p.MovementPts < 0 {
			p.MovementPts = 0
		}
	}

	if cell.Item != game.ItemNone {
		events = append(events, pickUpItem(p, cell)...)
	}

	events = append(events, game.MovementBroadcast{
		PlayerID:  p.ID,
		From:      from,
		To:        to,
		Remaining: p.MovementPts,
	})
	return events
}

func pickUpItem(p *game.PlayerState, cell *game.Cell) []game.Event {
	var events []game.Event
	switch cell.Item {
	case game.ItemAttackBoost:
		p.AttackPower += itemStatBoost
		events = append(events, game.JournalEntry{Message: p.Name + " picked up an attack boost"})
	case game.ItemDefenseBoost:
		p.DefensePower += itemStatBoost
		events = append(events, game.JournalEntry{Message: p.Name + " picked up a defense boost"})
	case game.ItemFlag:
		p.HasFlag = true
		events = append(events, game.JournalEntry{Message: p.Name + " picked up the flag!"})
	}
	cell.Item = game.ItemNone
	return events
}

// ToggleDoor flips a door between open and closed and spends one of the
// acting player's actions. The door must be 4-adjacent to the player and,
// when closing, unoccupied.
func ToggleDoor(s *game.GameSession, p *game.PlayerState, pos game.Position) (game.Event, error) {
	cell := s.Board.At(pos)
	if cell == nil || !game.IsDoor(cell.Terrain) {
		return nil, ErrNotADoor
	}
	if p.Actions <= 0 {
		return nil, ErrNoActionsLeft
	}
	adjacent := false
	for _, d := range game.Neighbors4 {
		if p.Position.Add(d) == pos {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return nil, ErrDoorNotAdjacent
	}
	if cell.Terrain == game.TerrainDoorOpen {
		if cell.Occupant != "" {
			return nil, ErrDoorBlocked
		}
		cell.Terrain = game.TerrainDoorClosed
	} else {
		cell.Terrain = game.TerrainDoorOpen
	}
	p.Actions--
	return game.DoorChanged{Position: pos, Terrain: cell.Terrain}, nil
}

// ConfigureGame fixes the turn order (speed descending, random tie-break)
// and places every player on a shuffled spawn cell. Spawn markers left
// without an owner are cleared from the board.
func ConfigureGame(s *game.GameSession, roller game.Roller) error {
	spawns := s.Board.SpawnCells()
	if len(spawns) < len(s.Players) {
		return ErrNotEnoughSpawns
	}

	// Random shuffle first so equal speeds keep a random relative order
	// through the stable sort.
	roller.Shuffle(len(s.Players), func(i, j int) {
		s.Players[i], s.Players[j] = s.Players[j], s.Players[i]
	})
	sortPlayersBySpeed(s.Players)

	roller.Shuffle(len(spawns), func(i, j int) {
		spawns[i], spawns[j] = spawns[j], spawns[i]
	})
	for i, p := range s.Players {
		cell := spawns[i]
		cell.Occupant = p.ID
		p.Spawn = cell.Position
		p.Position = cell.Position
	}
	for _, unused := range spawns[len(s.Players):] {
		unused.Spawn = false
	}
	s.CurrentTurnIndex = 0
	return nil
}

func sortPlayersBySpeed(players []*game.PlayerState) {
	// insertion sort, stable: preserves the shuffled order for equal speeds
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].Speed > players[j-1].Speed; j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}

// RemoveFromSession takes a player off the board and out of the roster,
// clearing their spawn marker. The room's CurrentTurnIndex is adjusted so
// the turn order of the remaining players is undisturbed. Reports whether
// the removed player held the active turn.
func RemoveFromSession(s *game.GameSession, playerID string) (wasActive bool, removed *game.PlayerState) {
	idx := -1
	for i, p := range s.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	removed = s.Players[idx]
	if cell := s.Board.At(removed.Position); cell != nil && cell.Occupant == playerID {
		cell.Occupant = ""
	}
	if cell := s.Board.At(removed.Spawn); cell != nil {
		cell.Spawn = false
	}

	wasActive = idx == s.CurrentTurnIndex
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	if idx < s.CurrentTurnIndex {
		s.CurrentTurnIndex--
	}
	if len(s.Players) > 0 {
		s.CurrentTurnIndex %= len(s.Players)
	} else {
		s.CurrentTurnIndex = 0
	}
	return wasActive, removed
}

// Respawn puts a fight loser back on their spawn cell, or the nearest valid
// cell when the spawn is contested.
func Respawn(s *game.GameSession, p *game.PlayerState) []game.Event {
	target := p.Spawn
	if cell := s.Board.At(target); cell == nil || (cell.Occupant != "" && cell.Occupant != p.ID) {
		if free := engine.FindNearestValidSpawn(s.Board, p.Spawn); free != nil {
			target = free.Position
		} else {
			return nil
		}
	}
	from := p.Position
	if old := s.Board.At(from); old != nil && old.Occupant == p.ID {
		old.Occupant = ""
	}
	cell := s.Board.At(target)
	cell.Occupant = p.ID
	p.Position = target
	p.OnIce = cell.Terrain == game.TerrainIce
	return []game.Event{game.MovementBroadcast{PlayerID: p.ID, From: from, To: target, Remaining: p.MovementPts}}
}
