package engine

import (
	"testing"

	"github.com/ericogr/grid-arena/internal/game"
)

// boardFromRows builds a board from glyph rows, same vocabulary as the
// config file: '.' floor, '#' wall, '~' water, '*' ice, 'd'/'o' doors,
// 'S' spawn, 'F'/'A'/'D' items.
func boardFromRows(rows ...string) *game.Board {
	b := &game.Board{Name: "test", Cols: len(rows[0]), Rows: len(rows), Grid: make([][]game.Cell, len(rows))}
	for y, row := range rows {
		b.Grid[y] = make([]game.Cell, len(row))
		for x := range row {
			cell := game.Cell{Position: game.Position{X: x, Y: y}, Terrain: game.TerrainFloor}
			switch row[x] {
			case '#':
				cell.Terrain = game.TerrainWall
			case '~':
				cell.Terrain = game.TerrainWater
			case '*':
				cell.Terrain = game.TerrainIce
			case 'd':
				cell.Terrain = game.TerrainDoorClosed
			case 'o':
				cell.Terrain = game.TerrainDoorOpen
			case 'S':
				cell.Spawn = true
			case 'F':
				cell.Item = game.ItemFlag
			case 'A':
				cell.Item = game.ItemAttackBoost
			case 'D':
				cell.Item = game.ItemDefenseBoost
			}
			b.Grid[y][x] = cell
		}
	}
	return b
}

func TestReachableCells_RespectsBudgetAndCosts(t *testing.T) {
	b := boardFromRows(".~..")
	paths := ReachableCells(b, game.Position{X: 0, Y: 0}, 3)

	// water (2) then floor (1) spends the full budget
	info, ok := paths[game.Key(game.Position{X: 2, Y: 0})]
	if !ok {
		t.Fatalf("expected (2,0) to be reachable")
	}
	if info.Cost != 3 {
		t.Fatalf("expected cost 3 to (2,0), got %d", info.Cost)
	}
	if _, ok := paths[game.Key(game.Position{X: 3, Y: 0})]; ok {
		t.Fatalf("(3,0) costs 4 and should be beyond a budget of 3")
	}
	if _, ok := paths[game.Key(game.Position{X: 0, Y: 0})]; ok {
		t.Fatalf("the starting cell must not be offered as a destination")
	}
}

func TestReachableCells_ZeroBudget(t *testing.T) {
	b := boardFromRows("...")
	if paths := ReachableCells(b, game.Position{X: 0, Y: 0}, 0); len(paths) != 0 {
		t.Fatalf("expected no reachable cells with zero budget, got %d", len(paths))
	}
}

func TestReachableCells_ExcludesWallsOccupiedAndClosedDoors(t *testing.T) {
	b := boardFromRows(".#.", "...", ".d.")
	b.At(game.Position{X: 0, Y: 1}).Occupant = "other"

	paths := ReachableCells(b, game.Position{X: 1, Y: 1}, 5)
	for _, blocked := range []game.Position{
		{X: 1, Y: 0}, // wall
		{X: 0, Y: 1}, // occupied
		{X: 1, Y: 2}, // closed door
	} {
		if _, ok := paths[game.Key(blocked)]; ok {
			t.Fatalf("expected %v to be unreachable", blocked)
		}
	}
	if _, ok := paths[game.Key(game.Position{X: 2, Y: 1})]; !ok {
		t.Fatalf("expected the open floor at (2,1) to be reachable")
	}
}

func TestReachableCells_IceIsFree(t *testing.T) {
	b := boardFromRows(".***.")
	paths := ReachableCells(b, game.Position{X: 0, Y: 0}, 1)
	info, ok := paths[game.Key(game.Position{X: 4, Y: 0})]
	if !ok {
		t.Fatalf("expected the far floor cell across the ice to be reachable")
	}
	if info.Cost != 1 {
		t.Fatalf("expected cost 1 across ice, got %d", info.Cost)
	}
	if len(info.Path) != 4 {
		t.Fatalf("expected a 4-step path, got %d steps", len(info.Path))
	}
}

func TestReachableCells_EqualCostPrefersFewerSteps(t *testing.T) {
	// Two cost-3 routes to (2,0): straight through the water in two steps,
	// or around over the ice in four. The offer must carry the shorter one.
	b := boardFromRows(
		".~.",
		".*.",
	)
	paths := ReachableCells(b, game.Position{X: 0, Y: 0}, 5)
	info, ok := paths[game.Key(game.Position{X: 2, Y: 0})]
	if !ok {
		t.Fatalf("expected (2,0) to be reachable")
	}
	if info.Cost != 3 {
		t.Fatalf("expected cost 3 to (2,0), got %d", info.Cost)
	}
	if len(info.Path) != 2 {
		t.Fatalf("equal-cost routes must break ties on step count, got %d steps", len(info.Path))
	}
	if info.Path[0] != (game.Position{X: 1, Y: 0}) {
		t.Fatalf("expected the direct route through the water, got %v", info.Path)
	}
}

func TestReachableCells_PathStartsAfterOrigin(t *testing.T) {
	b := boardFromRows("...")
	paths := ReachableCells(b, game.Position{X: 0, Y: 0}, 2)
	info := paths[game.Key(game.Position{X: 2, Y: 0})]
	if len(info.Path) != 2 {
		t.Fatalf("expected path of 2 steps, got %d", len(info.Path))
	}
	if info.Path[0] == (game.Position{X: 0, Y: 0}) {
		t.Fatalf("path must not include the origin")
	}
	if info.Path[len(info.Path)-1] != (game.Position{X: 2, Y: 0}) {
		t.Fatalf("path must end at the destination")
	}
}

func TestCanAct(t *testing.T) {
	b := boardFromRows("...", ".d.", "...")
	if !CanAct(b, game.Position{X: 1, Y: 0}) {
		t.Fatalf("expected an adjacent door to allow acting")
	}
	if CanAct(b, game.Position{X: 0, Y: 2}) {
		t.Fatalf("expected no action with nothing adjacent")
	}
	b2 := boardFromRows("...")
	b2.At(game.Position{X: 1, Y: 0}).Occupant = "enemy"
	if !CanAct(b2, game.Position{X: 0, Y: 0}) {
		t.Fatalf("expected an adjacent occupant to allow acting")
	}
}

func TestFindNearestValidSpawn(t *testing.T) {
	b := boardFromRows("#..", "#..", "###")
	origin := game.Position{X: 1, Y: 0}
	b.At(origin).Occupant = "camper"

	cell := FindNearestValidSpawn(b, origin)
	if cell == nil {
		t.Fatalf("expected a relocation cell")
	}
	if cell.Occupant != "" {
		t.Fatalf("relocation cell must be free, got occupant %q", cell.Occupant)
	}
	dx, dy := cell.Position.X-origin.X, cell.Position.Y-origin.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		t.Fatalf("expected a cell in the first ring, got %v", cell.Position)
	}
}

func TestFindNearestValidSpawn_PrefersOrigin(t *testing.T) {
	b := boardFromRows("...")
	origin := game.Position{X: 1, Y: 0}
	cell := FindNearestValidSpawn(b, origin)
	if cell == nil || cell.Position != origin {
		t.Fatalf("expected the free origin itself, got %+v", cell)
	}
}
