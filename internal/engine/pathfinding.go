package engine

import (
	"container/heap"

	"github.com/ericogr/grid-arena/internal/game"
)

// pathNode is a frontier entry for the cost-relaxation search.
type pathNode struct {
	pos   game.Position
	cost  int
	steps int
	index int
}

type pathQueue []*pathNode

func (q pathQueue) Len() int { return len(q) }

func (q pathQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].steps < q[j].steps
}

func (q pathQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *pathQueue) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *pathQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// ReachableCells computes every cell reachable from start within the given
// movement point budget and the cheapest path to each. Cost ties are broken
// by preferring the path with fewer steps, so a repeated computation offers
// the same routes. Cells occupied by another player and impassable terrain
// are excluded, as is the starting cell itself.
func ReachableCells(b *game.Board, start game.Position, budget int) game.PathMap {
	result := make(game.PathMap)
	if budget <= 0 || b.At(start) == nil {
		return result
	}

	type visit struct {
		cost  int
		steps int
	}
	best := map[game.Position]visit{start: {}}
	prev := map[game.Position]game.Position{}

	q := &pathQueue{{pos: start}}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(*pathNode)
		if v, ok := best[cur.pos]; ok && (cur.cost > v.cost || (cur.cost == v.cost && cur.steps > v.steps)) {
			continue
		}
		for _, d := range game.Neighbors4 {
			np := cur.pos.Add(d)
			cell := b.At(np)
			if cell == nil || cell.Occupant != "" {
				continue
			}
			stepCost, passable := game.MoveCost(cell.Terrain)
			if !passable {
				continue
			}
			cost := cur.cost + stepCost
			if cost > budget {
				continue
			}
			steps := cur.steps + 1
			if v, seen := best[np]; seen && (cost > v.cost || (cost == v.cost && steps >= v.steps)) {
				continue
			}
			best[np] = visit{cost: cost, steps: steps}
			prev[np] = cur.pos
			heap.Push(q, &pathNode{pos: np, cost: cost, steps: steps})
		}
	}

	for pos, v := range best {
		if pos == start {
			continue
		}
		result[game.Key(pos)] = game.PathInfo{Path: rebuildPath(prev, start, pos), Cost: v.cost}
	}
	return result
}

func rebuildPath(prev map[game.Position]game.Position, start, end game.Position) []game.Position {
	var rev []game.Position
	for at := end; at != start; at = prev[at] {
		rev = append(rev, at)
	}
	path := make([]game.Position, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// CanAct reports whether a player standing at pos has something useful left
// to spend an action on: an adjacent occupied cell (attack) or an adjacent
// door, open or closed (toggle).
func CanAct(b *game.Board, pos game.Position) bool {
	for _, d := range game.Neighbors4 {
		cell := b.At(pos.Add(d))
		if cell == nil {
			continue
		}
		if cell.Occupant != "" || game.IsDoor(cell.Terrain) {
			return true
		}
	}
	return false
}

// FindNearestValidSpawn searches outward from origin, diagonals included,
// for the closest cell that is not a wall, not a door and unoccupied. Used
// when a player's saved spawn cell is contested on respawn. Returns nil when
// the whole board is saturated.
func FindNearestValidSpawn(b *game.Board, origin game.Position) *game.Cell {
	if c := b.At(origin); c != nil && spawnable(c) {
		return c
	}
	visited := map[game.Position]bool{origin: true}
	frontier := []game.Position{origin}
	for len(frontier) > 0 {
		var next []game.Position
		for _, p := range frontier {
			for _, d := range game.Neighbors8 {
				np := p.Add(d)
				if visited[np] {
					continue
				}
				visited[np] = true
				cell := b.At(np)
				if cell == nil {
					continue
				}
				if spawnable(cell) {
					return cell
				}
				next = append(next, np)
			}
		}
		frontier = next
	}
	return nil
}

func spawnable(c *game.Cell) bool {
	return c.Terrain != game.TerrainWall && !game.IsDoor(c.Terrain) && c.Occupant == ""
}
