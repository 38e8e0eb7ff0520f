package service

import (
	"encoding/json"

	"github.com/ericogr/grid-arena/internal/constants"
	"github.com/ericogr/grid-arena/internal/engine"
	"github.com/ericogr/grid-arena/internal/game"
	"github.com/ericogr/grid-arena/internal/logging"

	"github.com/google/uuid"
)

// handleIntent dispatches one client intent inside the room loop. Invalid or
// out-of-state intents are logged and ignored: a live multiplayer session
// races client requests against server state changes all the time and none
// of those races may crash the room.
func (r *Room) handleIntent(intent Intent) {
	switch intent.Name {
	case constants.IntentShareCharacter:
		r.handleShareCharacter(intent)
	case constants.IntentLockRoom:
		r.handleLock(intent, true)
	case constants.IntentUnlockRoom:
		r.handleLock(intent, false)
	case constants.IntentRemovePlayer:
		r.handleRemovePlayer(intent)
	case constants.IntentQuitGame:
		r.removePlayer(intent.PlayerID, "quit")
	case constants.IntentDisconnectPlayer:
		r.removePlayer(intent.PlayerID, "disconnected")
	case constants.IntentConfigureGame:
		r.handleConfigureGame(intent)
	case constants.IntentReady:
		r.handleReady(intent)
	case constants.IntentMove:
		r.handleMove(intent)
	case constants.IntentDebugMove:
		r.handleDebugMove(intent)
	case constants.IntentToggleDoor:
		r.handleToggleDoor(intent)
	case constants.IntentEndTurn:
		r.handleEndTurn(intent)
	case constants.IntentFightInit:
		r.handleFightInit(intent)
	case constants.IntentFightAttack:
		r.handleFightAttack(intent)
	case constants.IntentFightFlee:
		r.handleFightFlee(intent)
	case constants.IntentToggleDebugMode:
		r.handleToggleDebug(intent)
	default:
		r.rejectIntent(intent, "unknown intent")
	}
}

func (r *Room) rejectIntent(intent Intent, reason string) {
	r.sendTo(intent.PlayerID, game.ErrorNotice{Intent: intent.Name, Message: reason})
	logging.Warn("intent ignored", logging.Fields{
		constants.LogFieldRoom:   r.AccessCode,
		constants.LogFieldPlayer: intent.PlayerID,
		constants.LogFieldIntent: intent.Name,
		constants.LogFieldReason: reason,
	})
}

func (r *Room) handleShareCharacter(intent Intent) {
	if r.session.Started {
		r.rejectIntent(intent, "game already started")
		return
	}
	p := r.session.PlayerByID(intent.PlayerID)
	if p == nil {
		r.rejectIntent(intent, "player not in room")
		return
	}
	var payload ShareCharacterPayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	applyCharacter(p, payload)
	r.emit(game.PlayerList{Players: r.session.Players})
}

func applyCharacter(p *game.PlayerState, c ShareCharacterPayload) {
	if c.Name != "" {
		p.Name = c.Name
	}
	p.Avatar = c.Avatar
	p.Life = statOrDefault(c.Life, 4)
	p.Speed = statOrDefault(c.Speed, 4)
	p.AttackPower = statOrDefault(c.AttackPower, 4)
	p.DefensePower = statOrDefault(c.DefensePower, 4)
	p.AttackDice = diceOrDefault(c.AttackDice, game.DiceD6)
	p.DefenseDice = diceOrDefault(c.DefenseDice, game.DiceD4)
}

func statOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func diceOrDefault(d, def game.DiceKind) game.DiceKind {
	if d != game.DiceD4 && d != game.DiceD6 {
		return def
	}
	return d
}

func (r *Room) handleLock(intent Intent, lock bool) {
	if intent.PlayerID != r.OrganizerID {
		r.rejectIntent(intent, "only the organizer can lock or unlock")
		return
	}
	r.locked = lock
	r.publishSummary()
	if lock {
		r.emit(game.RoomLocked{})
	} else {
		r.emit(game.RoomUnlocked{})
	}
}

func (r *Room) handleRemovePlayer(intent Intent) {
	if intent.PlayerID != r.OrganizerID {
		r.rejectIntent(intent, "only the organizer can remove players")
		return
	}
	var payload RemovePlayerPayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil || payload.PlayerID == "" {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	r.removePlayer(payload.PlayerID, "removed by organizer")
}

func (r *Room) handleConfigureGame(intent Intent) {
	if intent.PlayerID != r.OrganizerID {
		r.rejectIntent(intent, "only the organizer can configure the game")
		return
	}
	if r.session.Started {
		r.rejectIntent(intent, "game already started")
		return
	}
	var payload ConfigureGamePayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil || payload.BoardName == "" {
		r.rejectIntent(intent, "invalid payload")
		return
	}

	board, err := r.loadBoard(payload.BoardName)
	if err != nil {
		// Fatal to this game-creation attempt only; the room stays usable.
		logging.Error("board load failed", err, logging.Fields{
			constants.LogFieldRoom:  r.AccessCode,
			constants.LogFieldBoard: payload.BoardName,
		})
		r.sendTo(intent.PlayerID, game.JournalEntry{Message: "Board '" + payload.BoardName + "' could not be loaded"})
		return
	}

	for _, style := range payload.VirtualPlayers {
		if len(r.session.Players) >= MaxPlayers {
			break
		}
		r.session.Players = append(r.session.Players, newVirtualPlayer(style, len(r.session.Players)))
	}

	r.session.Board = board
	if err := ConfigureGame(r.session, r.roller); err != nil {
		logging.Error("game configuration failed", err, logging.Fields{constants.LogFieldRoom: r.AccessCode})
		r.session.Board = nil
		return
	}
	r.session.Started = true
	r.locked = true
	r.publishSummary()
	r.emit(game.GameStarted{Session: r.session}, game.PlayerList{Players: r.session.Players})
	logging.Info("game started", logging.Fields{
		constants.LogFieldRoom:  r.AccessCode,
		constants.LogFieldBoard: payload.BoardName,
	})
}

var botNames = [...]string{"Rusty", "Clank", "Bolt", "Vex"}

func newVirtualPlayer(style game.BotStyle, index int) *game.PlayerState {
	if style != game.StyleAggressive && style != game.StyleDefensive {
		style = game.StyleAggressive
	}
	name := botNames[index%len(botNames)]
	p := &game.PlayerState{
		ID:           uuid.NewString(),
		Name:         name,
		Avatar:       "bot",
		Life:         4,
		Speed:        4,
		AttackPower:  4,
		DefensePower: 4,
		AttackDice:   game.DiceD4,
		DefenseDice:  game.DiceD4,
		Position:     game.NoPosition,
		Spawn:        game.NoPosition,
		AI:           &game.AIProfile{Style: style},
	}
	if style == game.StyleAggressive {
		p.Speed = 6
		p.AttackDice = game.DiceD6
	} else {
		p.Life = 6
		p.DefenseDice = game.DiceD6
	}
	return p
}

func (r *Room) handleReady(intent Intent) {
	if !r.session.Started || r.running {
		r.rejectIntent(intent, "not waiting for ready")
		return
	}
	if r.session.PlayerByID(intent.PlayerID) == nil {
		r.rejectIntent(intent, "player not in room")
		return
	}
	r.ready[intent.PlayerID] = true
	for _, p := range r.session.Players {
		if !p.IsVirtual() && !r.ready[p.ID] {
			return
		}
	}
	r.running = true
	r.startTurn()
}

func (r *Room) activeHuman(intent Intent) *game.PlayerState {
	if !r.running {
		r.rejectIntent(intent, "game not running")
		return nil
	}
	active := r.session.ActivePlayer()
	if active == nil || active.ID != intent.PlayerID {
		r.rejectIntent(intent, "not this player's turn")
		return nil
	}
	if r.fight != nil {
		r.rejectIntent(intent, "fight in progress")
		return nil
	}
	return active
}

func (r *Room) handleMove(intent Intent) {
	active := r.activeHuman(intent)
	if active == nil {
		return
	}
	if r.playback != nil {
		r.rejectIntent(intent, "movement already in flight")
		return
	}
	var payload MovePayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	// The client picks a destination among the offered paths; the server
	// replays its own stored route, never the client's.
	info, ok := r.reachable[game.Key(payload.To)]
	if !ok || info.Cost > active.MovementPts {
		r.rejectIntent(intent, "destination not reachable")
		return
	}
	r.playback = &playbackState{player: active, path: info.Path}
}

func (r *Room) handleDebugMove(intent Intent) {
	active := r.activeHuman(intent)
	if active == nil {
		return
	}
	if !r.session.DebugMode {
		r.rejectIntent(intent, "debug mode disabled")
		return
	}
	if r.playback != nil {
		r.rejectIntent(intent, "movement already in flight")
		return
	}
	var payload DebugMovePayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	cell := r.session.Board.At(payload.To)
	if cell == nil || cell.Occupant != "" {
		r.rejectIntent(intent, "target cell unavailable")
		return
	}
	if _, passable := game.MoveCost(cell.Terrain); !passable {
		r.rejectIntent(intent, "target cell impassable")
		return
	}
	r.emit(ApplyStep(r.session, active, payload.To)...)
	r.checkFlagVictory(active)
	r.refreshReachable()
}

func (r *Room) handleToggleDoor(intent Intent) {
	active := r.activeHuman(intent)
	if active == nil || r.playback != nil {
		return
	}
	var payload ToggleDoorPayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	ev, err := ToggleDoor(r.session, active, payload.Position)
	if err != nil {
		r.rejectIntent(intent, err.Error())
		return
	}
	r.emit(ev)
	logging.Info("door toggled", logging.Fields{
		constants.LogFieldRoom:     r.AccessCode,
		constants.LogFieldPlayer:   active.ID,
		constants.LogFieldPosition: payload.Position,
	})
	r.refreshReachable()
	r.evaluateTurnEnd()
}

func (r *Room) handleEndTurn(intent Intent) {
	active := r.activeHuman(intent)
	if active == nil {
		return
	}
	if r.playback != nil {
		// Deferred: applied the instant the movement sequence completes.
		r.pendingEndTurn = true
		return
	}
	r.endTurn()
}

func (r *Room) handleFightInit(intent Intent) {
	active := r.activeHuman(intent)
	if active == nil || r.playback != nil {
		return
	}
	var payload FightInitPayload
	if err := json.Unmarshal(intent.Data, &payload); err != nil {
		r.rejectIntent(intent, "invalid payload")
		return
	}
	target := r.session.PlayerByID(payload.TargetID)
	if target == nil {
		r.rejectIntent(intent, "target not in room")
		return
	}
	if err := r.initFight(active, target); err != nil {
		r.rejectIntent(intent, err.Error())
	}
}

func (r *Room) handleFightAttack(intent Intent) {
	if r.fight == nil {
		r.rejectIntent(intent, "no active fight")
		return
	}
	if r.fight.Current.Player.ID != intent.PlayerID {
		r.rejectIntent(intent, "not this fighter's turn")
		return
	}
	r.doAttack()
}

func (r *Room) handleFightFlee(intent Intent) {
	if r.fight == nil {
		r.rejectIntent(intent, "no active fight")
		return
	}
	if r.fight.Current.Player.ID != intent.PlayerID {
		r.rejectIntent(intent, "not this fighter's turn")
		return
	}
	r.doFlee()
}

func (r *Room) handleToggleDebug(intent Intent) {
	if intent.PlayerID != r.OrganizerID {
		r.rejectIntent(intent, "only the organizer can toggle debug mode")
		return
	}
	r.session.DebugMode = !r.session.DebugMode
	r.emit(game.DebugModeChanged{Enabled: r.session.DebugMode})
}

// removePlayer handles quits, kicks and disconnects. An organizer leaving
// before the game starts tears the whole room down; mid-game the organizer
// is just another player. A started game that drops to one participant
// cannot continue and is closed.
func (r *Room) removePlayer(playerID, reason string) {
	p := r.session.PlayerByID(playerID)
	if p == nil {
		return
	}
	if !r.session.Started && playerID == r.OrganizerID {
		r.emit(game.AdminDisconnected{})
		r.teardown()
		return
	}

	if r.fight != nil && r.fight.Involves(playerID) {
		r.abortFightFor(playerID)
		select {
		case <-r.closing:
			// The forfeit win just ended the whole game.
			return
		default:
		}
	}
	if r.playback != nil && r.playback.player.ID == playerID {
		r.playback = nil
		r.pendingEndTurn = false
		r.pendingDoor = nil
		r.pendingTarget = ""
	}

	wasActive, removed := RemoveFromSession(r.session, playerID)
	if removed == nil {
		return
	}
	delete(r.ready, playerID)
	r.publishSummary()
	if reason == "quit" && !removed.IsVirtual() {
		if err := r.repo.RecordQuit(playerID); err != nil {
			logging.Error("failed to record quit", err, logging.Fields{constants.LogFieldPlayer: playerID})
		}
	}

	if reason == "disconnected" {
		r.emit(game.PlayerDisconnected{PlayerID: playerID})
	} else {
		r.emit(game.PlayerRemoved{PlayerID: playerID, Reason: reason})
	}
	r.emit(game.PlayerList{Players: r.session.Players}, game.JournalEntry{Message: removed.Name + " left the game"})
	logging.Info("player removed", logging.Fields{
		constants.LogFieldRoom:   r.AccessCode,
		constants.LogFieldPlayer: playerID,
		constants.LogFieldReason: reason,
	})

	if r.session.Started && len(r.session.Players) <= 1 {
		// A one-player game cannot continue.
		if len(r.session.Players) == 1 {
			last := r.session.Players[0]
			r.emit(game.PlayerRemoved{PlayerID: last.ID, Reason: "room closed"})
		}
		r.teardown()
		return
	}
	if !r.session.Started && len(r.session.Players) == 0 {
		r.teardown()
		return
	}

	humans := 0
	for _, p := range r.session.Players {
		if !p.IsVirtual() {
			humans++
		}
	}
	if r.session.Started && humans == 0 {
		// Virtual players cannot carry a game on their own.
		r.teardown()
		return
	}

	if wasActive && r.running {
		// CurrentTurnIndex already points at the next player.
		r.startTurn()
	}
}

// checkFlagVictory ends the game when a flag carrier reaches their spawn.
func (r *Room) checkFlagVictory(p *game.PlayerState) bool {
	if !p.HasFlag || p.Position != p.Spawn {
		return false
	}
	r.gameOver(p, p.Name+" brought the flag home and wins!")
	return true
}

func (r *Room) gameOver(winner *game.PlayerState, message string) {
	r.emit(game.JournalEntry{Message: message})
	ids := make([]string, 0, len(r.session.Players))
	for _, p := range r.session.Players {
		if !p.IsVirtual() {
			ids = append(ids, p.ID)
		}
	}
	winnerID := ""
	if winner != nil && !winner.IsVirtual() {
		winnerID = winner.ID
	}
	if err := r.repo.UpdateStatsOnGameEnd(ids, winnerID); err != nil {
		logging.Error("failed to update stats", err, logging.Fields{constants.LogFieldRoom: r.AccessCode})
	}
	r.teardown()
}

// reachableFor recomputes the offered path map for a player.
func (r *Room) reachableFor(p *game.PlayerState) game.PathMap {
	return engine.ReachableCells(r.session.Board, p.Position, p.MovementPts)
}
