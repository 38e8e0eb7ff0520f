package service

import (
	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/engine"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
)

// startTurn opens the active player's turn: resets their per-turn budget,
// offers the reachable path map, arms the movement countdown and lets a
// virtual player plan immediately.
func (r *Room) startTurn() {
	active := r.session.ActivePlayer()
	if active == nil {
		return
	}
	active.ResetTurn()
	r.reachable = r.reachableFor(active)
	r.pendingEndTurn = false
	r.pendingDoor = nil
	r.pendingTarget = ""
	r.botPending = false
	r.timer = newTurnTimer(TimerMovement, int(r.cfg.TurnDuration.Seconds()))

	r.emit(
		game.TurnChanged{PlayerID: active.ID, Reachable: r.reachable},
		r.timer.tickEvent(),
		game.JournalEntry{Message: active.Name + "'s turn"},
	)
	logging.Info("turn started", logging.Fields{
		constants.LogFieldRoom:   r.AccessCode,
		constants.LogFieldPlayer: active.ID,
	})

	if active.IsVirtual() {
		// Scheduled through the room loop rather than planned inline. An
		// all-bot roster would otherwise chain turn into turn on the same
		// stack with no bound.
		r.botPending = true
	}
}

// endTurn closes the current turn and opens the next one.
func (r *Room) endTurn() {
	active := r.session.ActivePlayer()
	if active == nil {
		return
	}
	r.timer = nil
	r.playback = nil
	r.pendingEndTurn = false
	r.pendingDoor = nil
	r.pendingTarget = ""
	r.botPending = false
	r.reachable = nil
	r.emit(
		game.TimerTick{Kind: string(TimerMovement), Remaining: 0},
		game.TurnEnded{PlayerID: active.ID},
	)
	r.session.AdvanceTurn()
	r.startTurn()
}

// refreshReachable republishes the path offer after a position, budget or
// board change mid-turn.
func (r *Room) refreshReachable() {
	active := r.session.ActivePlayer()
	if active == nil {
		return
	}
	r.reachable = r.reachableFor(active)
	r.emit(game.TurnChanged{PlayerID: active.ID, Reachable: r.reachable})
}

// evaluateTurnEnd ends the turn automatically once the active player has
// nothing left to do: no movement budget or nowhere to go, and no action
// worth keeping the turn open for.
func (r *Room) evaluateTurnEnd() {
	if !r.running || r.fight != nil || r.playback != nil {
		return
	}
	active := r.session.ActivePlayer()
	if active == nil {
		return
	}
	canMove := active.MovementPts > 0 && len(r.reachable) > 0
	canAct := active.Actions > 0 && engine.CanAct(r.session.Board, active.Position)
	if !canMove && !canAct {
		r.endTurn()
	}
}

// tickPlayback advances the in-flight movement sequence by one cell. Steps
// are applied and broadcast individually so every client animates the same
// route the server validated.
func (r *Room) tickPlayback() {
	if r.playback == nil {
		r.runPendingBot()
		return
	}
	pb := r.playback
	step := pb.path[pb.idx]
	cell := r.session.Board.At(step)
	if cell == nil || (cell.Occupant != "" && cell.Occupant != pb.player.ID) {
		// The route went stale under us; stop where we are.
		r.finishPlayback()
		return
	}
	r.emit(ApplyStep(r.session, pb.player, step)...)
	if r.checkFlagVictory(pb.player) {
		return
	}
	pb.idx++
	if pb.idx >= len(pb.path) {
		r.finishPlayback()
	}
}

// finishPlayback resolves whatever was queued behind the movement sequence:
// a deferred end-turn, a door toggle or a fight initiation, then re-offers
// paths for the remaining budget.
func (r *Room) finishPlayback() {
	pb := r.playback
	r.playback = nil
	if pb == nil {
		return
	}
	mover := pb.player

	if r.pendingEndTurn {
		r.endTurn()
		return
	}

	if r.pendingDoor != nil {
		pos := *r.pendingDoor
		r.pendingDoor = nil
		if ev, err := ToggleDoor(r.session, mover, pos); err == nil {
			r.emit(ev)
		}
	}
	if r.pendingTarget != "" {
		targetID := r.pendingTarget
		r.pendingTarget = ""
		if target := r.session.PlayerByID(targetID); target != nil {
			if err := r.initFight(mover, target); err == nil {
				return
			}
		}
	}

	r.refreshReachable()
	if mover.IsVirtual() && r.session.ActivePlayer() == mover {
		r.botPending = true
		return
	}
	r.evaluateTurnEnd()
}

// runPendingBot executes one scheduled virtual-player instruction. Each
// playback tick runs at most one, so a stalemate between bots cycles through
// the loop a turn at a time instead of growing the stack.
func (r *Room) runPendingBot() {
	if !r.botPending || !r.running || r.fight != nil {
		return
	}
	r.botPending = false
	active := r.session.ActivePlayer()
	if active == nil || !active.IsVirtual() {
		return
	}
	r.botAct(active)
}

// botAct asks the planner for the bot's next instruction and executes it.
// Movement is streamed through the same playback machinery as human moves,
// so spectators cannot tell a virtual player's steps apart. Completed
// instructions reschedule through the loop; the plan converges on EndTurn
// because the budget only ever shrinks.
func (r *Room) botAct(bot *game.PlayerState) {
	if r.fight != nil || r.playback != nil {
		return
	}
	inst := engine.PlanTurn(r.session, bot)
	if inst.EndTurn {
		r.endTurn()
		return
	}
	r.pendingDoor = inst.OpenDoor
	r.pendingTarget = inst.AttackTarget

	if len(inst.Path) > 0 {
		r.playback = &playbackState{player: bot, path: inst.Path}
		return
	}

	// No movement; resolve the queued action in place.
	if r.pendingDoor != nil {
		pos := *r.pendingDoor
		r.pendingDoor = nil
		if ev, err := ToggleDoor(r.session, bot, pos); err == nil {
			r.emit(ev)
			r.refreshReachable()
			r.botAct(bot)
			return
		}
	}
	if r.pendingTarget != "" {
		targetID := r.pendingTarget
		r.pendingTarget = ""
		if target := r.session.PlayerByID(targetID); target != nil {
			if r.initFight(bot, target) == nil {
				return
			}
		}
	}
	r.endTurn()
}
