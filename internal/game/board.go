package game

// Position addresses a cell on the board grid. X grows to the right,
// Y grows downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoPosition marks a player that has not been placed on the board yet.
var NoPosition = Position{X: -1, Y: -1}

// TerrainKind is a string alias for the terrain of a cell. Using a dedicated
// type instead of plain string makes code safer and self-documenting.
type TerrainKind string

const (
	TerrainFloor      TerrainKind = "floor"
	TerrainWall       TerrainKind = "wall"
	TerrainWater      TerrainKind = "water"
	TerrainIce        TerrainKind = "ice"
	TerrainDoorClosed TerrainKind = "closed-door"
	TerrainDoorOpen   TerrainKind = "open-door"
)

// ItemKind identifies a pickup placed on a cell.
type ItemKind string

const (
	ItemNone         ItemKind = ""
	ItemFlag         ItemKind = "flag"
	ItemAttackBoost  ItemKind = "attack-boost"
	ItemDefenseBoost ItemKind = "defense-boost"
)

// Cell is a single board tile. Occupant holds the ID of the player standing
// on the cell ("" when empty). Invariant: Occupant is set if and only if some
// player's Position equals the cell's Position.
type Cell struct {
	Position Position    `json:"position"`
	Terrain  TerrainKind `json:"terrain"`
	Item     ItemKind    `json:"item,omitempty"`
	Occupant string      `json:"occupant,omitempty"`
	Spawn    bool        `json:"spawn,omitempty"`
}

// Board is the playable grid. Cells are indexed [y][x].
type Board struct {
	Name string   `json:"name"`
	Cols int      `json:"cols"`
	Rows int      `json:"rows"`
	Grid [][]Cell `json:"grid"`
}

func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Cols && p.Y < b.Rows
}

// At returns the cell at p, or nil when p is out of bounds.
func (b *Board) At(p Position) *Cell {
	if !b.InBounds(p) {
		return nil
	}
	return &b.Grid[p.Y][p.X]
}

// SpawnCells lists every cell marked as a spawn point.
func (b *Board) SpawnCells() []*Cell {
	var spawns []*Cell
	for y := range b.Grid {
		for x := range b.Grid[y] {
			if b.Grid[y][x].Spawn {
				spawns = append(spawns, &b.Grid[y][x])
			}
		}
	}
	return spawns
}

// MoveCost returns the movement point cost of entering terrain t. The second
// return value is false for impassable terrain (walls and closed doors).
func MoveCost(t TerrainKind) (int, bool) {
	switch t {
	case TerrainFloor, TerrainDoorOpen:
		return 1, true
	case TerrainIce:
		return 0, true
	case TerrainWater:
		return 2, true
	default:
		return 0, false
	}
}

// IsDoor reports whether t is a door, open or closed.
func IsDoor(t TerrainKind) bool {
	return t == TerrainDoorClosed || t == TerrainDoorOpen
}

// Neighbors4 are the orthogonal neighbor offsets, in reading order.
var Neighbors4 = [4]Position{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// Neighbors8 adds the diagonal offsets, used only for spawn relocation.
var Neighbors8 = [8]Position{
	{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}
