package service

import "github.com/ericogr/grid-arena/internal/game"

// TimerKind distinguishes the two countdowns a room can run.
type TimerKind string

const (
	TimerMovement TimerKind = "movement"
	TimerCombat   TimerKind = "combat"
)

// turnTimer is pure countdown state. The room loop owns a single one-second
// ticker and decrements whichever timer is live, so a room never runs two
// countdowns at once and pausing is just not decrementing.
type turnTimer struct {
	kind      TimerKind
	remaining int
	paused    bool
}

func newTurnTimer(kind TimerKind, seconds int) *turnTimer {
	return &turnTimer{kind: kind, remaining: seconds}
}

// tick advances the countdown by one second and reports whether it expired
// on this tick. Paused timers hold their remaining time unchanged.
func (t *turnTimer) tick() (expired bool) {
	if t == nil || t.paused || t.remaining <= 0 {
		return false
	}
	t.remaining--
	return t.remaining == 0
}

func (t *turnTimer) tickEvent() game.Event {
	return game.TimerTick{Kind: string(t.kind), Remaining: t.remaining}
}
