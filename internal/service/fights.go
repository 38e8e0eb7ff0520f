package service

import (
	"errors"
	"fmt"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/engine"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"
)

var (
	ErrFightInProgress   = errors.New("a fight is already in progress")
	ErrTargetNotAdjacent = errors.New("target is not adjacent")
	ErrSelfFight         = errors.New("cannot fight yourself")
)

// tickSecond drives the room's single live countdown and lets a virtual
// fighter take its combat action at a human pace.
func (r *Room) tickSecond() {
	if r.timer != nil && !r.timer.paused {
		expired := r.timer.tick()
		r.emit(r.timer.tickEvent())
		if expired {
			switch r.timer.kind {
			case TimerMovement:
				r.endTurn()
				return
			case TimerCombat:
				// A fighter who lets the clock run out attacks by default.
				if r.fight != nil {
					r.doAttack()
					return
				}
			}
		}
	}
	if r.fight != nil && r.fight.Current.Player.IsVirtual() {
		r.botFightAct()
	}
}

// initFight starts a duel between two adjacent players. The movement
// countdown freezes with its exact remaining time and resumes untouched
// once the fight settles.
func (r *Room) initFight(initiator, target *game.PlayerState) error {
	if r.fight != nil {
		return ErrFightInProgress
	}
	if initiator.ID == target.ID {
		return ErrSelfFight
	}
	if initiator.Actions <= 0 {
		return ErrNoActionsLeft
	}
	dx := initiator.Position.X - target.Position.X
	dy := initiator.Position.Y - target.Position.Y
	if dx*dx+dy*dy != 1 {
		return ErrTargetNotAdjacent
	}

	initiator.Actions--
	r.fight = game.NewFightState(initiator, target)
	if r.timer != nil && r.timer.kind == TimerMovement {
		r.timer.paused = true
		r.suspended = r.timer
	}
	r.timer = newTurnTimer(TimerCombat, int(r.cfg.CombatTurnDuration.Seconds()))

	r.emit(
		game.FightInit{Player1: r.fight.P1.Player.ID, Player2: r.fight.P2.Player.ID, First: r.fight.Current.Player.ID},
		r.timer.tickEvent(),
		game.JournalEntry{Message: initiator.Name + " attacks " + target.Name},
	)
	logging.Info("fight started", logging.Fields{
		constants.LogFieldRoom:   r.AccessCode,
		constants.LogFieldPlayer: initiator.ID,
	})
	return nil
}

func (r *Room) doAttack() {
	f := r.fight
	if f == nil {
		return
	}
	attacker := f.Current.Player
	defender := f.Opponent().Player
	res := engine.ResolveAttack(f, r.session.DebugMode, r.roller)
	r.emit(game.JournalEntry{Message: fmt.Sprintf(
		"%s rolls %d against %s's %d: %d damage",
		attacker.Name, res.AttackerRoll, defender.Name, res.DefenderRoll, res.Damage,
	)})
	if res.DefenderDown {
		attacker.Wins++
		r.endFight(f.Current, f.Opponent())
		return
	}
	r.switchFightTurn()
}

func (r *Room) doFlee() {
	f := r.fight
	if f == nil {
		return
	}
	runner := f.Current.Player
	res := engine.ResolveFlee(f, r.cfg.FleeSuccessChance, r.roller)
	if res.Success {
		r.emit(game.JournalEntry{Message: runner.Name + " fled the fight"})
		r.endFight(nil, nil)
		return
	}
	r.emit(game.JournalEntry{Message: fmt.Sprintf(
		"%s failed to flee (%d attempts left)", runner.Name, res.AttemptsLeft,
	)})
	r.switchFightTurn()
}

func (r *Room) switchFightTurn() {
	f := r.fight
	f.SwitchTurn()
	r.timer = newTurnTimer(TimerCombat, int(r.cfg.CombatTurnDuration.Seconds()))
	r.emit(
		game.FightTurnSwitched{
			CurrentPlayer: f.Current.Player.ID,
			Player1:       f.P1.FightInfo,
			Player2:       f.P2.FightInfo,
		},
		r.timer.tickEvent(),
	)
}

// endFight settles a duel. A decisive fight respawns the loser at (or near)
// their spawn point; a flee leaves both where they stand. Either way the
// suspended movement countdown resumes with the seconds it had left.
func (r *Room) endFight(winner, loser *game.Fighter) {
	winnerID, loserID := "", ""
	if winner != nil {
		winnerID = winner.Player.ID
	}
	if loser != nil {
		loserID = loser.Player.ID
	}
	r.emit(game.FightEnded{Winner: winnerID, Loser: loserID})
	r.fight = nil

	if loser != nil {
		// A defeated carrier drops the flag where they fell; respawning
		// them with it would hand over a capture for free.
		if loser.Player.HasFlag {
			loser.Player.HasFlag = false
			if cell := r.session.Board.At(loser.Player.Position); cell != nil && cell.Item == game.ItemNone {
				cell.Item = game.ItemFlag
			}
			r.emit(game.JournalEntry{Message: loser.Player.Name + " dropped the flag"})
		}
		r.emit(Respawn(r.session, loser.Player)...)
		r.emit(game.JournalEntry{Message: loser.Player.Name + " was defeated and respawns"})
	}

	r.timer = r.suspended
	r.suspended = nil
	if r.timer != nil {
		r.timer.paused = false
		r.emit(r.timer.tickEvent())
	}

	if winner != nil && winner.Player.Wins >= WinsToVictory {
		r.gameOver(winner.Player, winner.Player.Name+" won "+fmt.Sprint(WinsToVictory)+" fights and takes the game!")
		return
	}
	if !r.running {
		return
	}

	active := r.session.ActivePlayer()
	if active == nil {
		return
	}
	if loser != nil && loser.Player.ID == active.ID {
		// Losing a fight on your own turn ends it.
		r.endTurn()
		return
	}
	r.refreshReachable()
	if active.IsVirtual() {
		r.botPending = true
		return
	}
	r.evaluateTurnEnd()
}

// abortFightFor resolves a fight whose participant left the room. The
// remaining fighter takes the win without dice.
func (r *Room) abortFightFor(leavingID string) {
	f := r.fight
	if f == nil || !f.Involves(leavingID) {
		return
	}
	var winner *game.Fighter
	if f.P1.Player.ID == leavingID {
		winner = f.P2
	} else {
		winner = f.P1
	}
	winner.Player.Wins++
	r.emit(game.JournalEntry{Message: winner.Player.Name + " wins the fight by forfeit"})
	r.endFight(winner, nil)
}

func (r *Room) botFightAct() {
	f := r.fight
	if f == nil {
		return
	}
	switch engine.PlanFightAction(f.Current) {
	case engine.FightFlee:
		r.doFlee()
	default:
		r.doAttack()
	}
}
