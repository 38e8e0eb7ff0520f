package engine

import "github.com/ericogr/grid-arena/internal/game"

// Scoring weights for the virtual player frontier search. The flag
// short-circuits everything else.
const (
	scoreFlag             = 1000
	scoreAffordableBonus  = 2
	scoreOpponentAggro    = 5
	scoreOpponentDefend   = 1
	scoreItemMatch        = 4
	scoreRetreatToSpawn   = 1
	maxFrontierExpansions = 4096
)

// Instruction is the bounded plan produced for a virtual player's turn. Path
// holds the affordable cell steps to play back (start excluded); at most one
// of OpenDoor / AttackTarget is set, to be applied once the path completes.
// EndTurn is set when the bot has nothing useful left to do.
type Instruction struct {
	Path         []game.Position
	OpenDoor     *game.Position
	AttackTarget string
	EndTurn      bool
}

// FightChoice is the bot's decision inside an active fight.
type FightChoice int

const (
	FightAttack FightChoice = iota
	FightFlee
)

type botCandidate struct {
	pos   game.Position
	score int
}

// PlanTurn runs a breadth-first frontier search from the bot's position and
// converts the best-scoring destination into a bounded instruction. Closed
// doors are treated as traversable during the search since the bot can open
// them; the conversion step stops at the first door or occupied cell and
// emits the matching action instead of walking through.
func PlanTurn(session *game.GameSession, bot *game.PlayerState) Instruction {
	board := session.Board
	start := bot.Position

	visited := map[game.Position]bool{start: true}
	prev := map[game.Position]game.Position{}
	frontier := []game.Position{start}

	var best *botCandidate
	expansions := 0

	consider := func(c botCandidate) bool {
		if best == nil || c.score > best.score {
			cc := c
			best = &cc
		}
		return c.score >= scoreFlag
	}

search:
	for len(frontier) > 0 && expansions < maxFrontierExpansions {
		var next []game.Position
		for _, p := range frontier {
			for _, d := range game.Neighbors4 {
				np := p.Add(d)
				if visited[np] {
					continue
				}
				cell := board.At(np)
				if cell == nil || cell.Terrain == game.TerrainWall {
					continue
				}
				visited[np] = true
				prev[np] = p
				expansions++

				if score, interesting := scoreCell(session, bot, cell, pathAffordable(board, prev, start, np, bot.MovementPts)); interesting {
					if consider(botCandidate{pos: np, score: score}) {
						break search
					}
				}
				// Occupied cells end a branch; everything else keeps expanding.
				if cell.Occupant == "" {
					next = append(next, np)
				}
			}
		}
		frontier = next
	}

	if best == nil {
		return Instruction{EndTurn: true}
	}
	return boundInstruction(board, bot, rebuildPath(prev, start, best.pos))
}

// scoreCell rates a discovered cell for tactical interest.
func scoreCell(session *game.GameSession, bot *game.PlayerState, cell *game.Cell, affordable bool) (int, bool) {
	if cell.Item == game.ItemFlag {
		return scoreFlag, true
	}

	score := 0
	interesting := false

	if cell.Occupant != "" && cell.Occupant != bot.ID {
		interesting = true
		if bot.AI.Style == game.StyleAggressive {
			score += scoreOpponentAggro
		} else {
			score += scoreOpponentDefend
		}
	}

	if wanted := styleItem(bot.AI.Style); cell.Item == wanted && cell.Item != game.ItemNone {
		interesting = true
		score += scoreItemMatch
	}

	// Hurt defensive bots fall back to their spawn when nothing better shows.
	if bot.AI.Style == game.StyleDefensive && bot.Position != bot.Spawn &&
		cell.Position == bot.Spawn {
		interesting = true
		score += scoreRetreatToSpawn
	}

	if interesting && affordable {
		score += scoreAffordableBonus
	}
	return score, interesting
}

func styleItem(style game.BotStyle) game.ItemKind {
	if style == game.StyleAggressive {
		return game.ItemAttackBoost
	}
	return game.ItemDefenseBoost
}

// pathAffordable reports whether the discovered route to end fits the bot's
// remaining movement points.
func pathAffordable(b *game.Board, prev map[game.Position]game.Position, start, end game.Position, budget int) bool {
	total := 0
	for at := end; at != start; at = prev[at] {
		cell := b.At(at)
		if cell == nil {
			return false
		}
		cost, passable := game.MoveCost(cell.Terrain)
		if !passable {
			// Closed doors cost an action, not movement.
			if cell.Terrain == game.TerrainDoorClosed {
				continue
			}
			return false
		}
		total += cost
	}
	return total <= budget
}

// boundInstruction walks the planned path cell by cell and truncates it to
// what the bot can actually afford, stopping early with a door or fight
// action when one is reached and an action remains.
func boundInstruction(b *game.Board, bot *game.PlayerState, path []game.Position) Instruction {
	inst := Instruction{}
	remaining := bot.MovementPts

	for _, step := range path {
		cell := b.At(step)
		if cell == nil {
			break
		}
		if cell.Terrain == game.TerrainDoorClosed {
			if bot.Actions > 0 {
				pos := step
				inst.OpenDoor = &pos
			}
			break
		}
		if cell.Occupant != "" && cell.Occupant != bot.ID {
			if bot.Actions > 0 {
				inst.AttackTarget = cell.Occupant
			}
			break
		}
		cost, passable := game.MoveCost(cell.Terrain)
		if !passable || cost > remaining {
			break
		}
		remaining -= cost
		inst.Path = append(inst.Path, step)
	}

	if len(inst.Path) == 0 && inst.OpenDoor == nil && inst.AttackTarget == "" {
		inst.EndTurn = true
	}
	return inst
}

// PlanFightAction is the bot's only in-fight decision: a defensive bot below
// half life with flee attempts remaining flees, everyone else attacks.
func PlanFightAction(fighter *game.Fighter) FightChoice {
	p := fighter.Player
	if p.AI != nil && p.AI.Style == game.StyleDefensive &&
		fighter.CurrentLife*2 < p.Life && fighter.FleeAttempts > 0 {
		return FightFlee
	}
	return FightAttack
}
