package engine

import (
	"testing"

	"github.com/ericogr/grid-arena/internal/game"
)

func fightPair(speed1, speed2 int) *game.FightState {
	p1 := &game.PlayerState{ID: "p1", Name: "P1", Life: 10, Speed: speed1, AttackPower: 4, DefensePower: 4, AttackDice: game.DiceD6, DefenseDice: game.DiceD4}
	p2 := &game.PlayerState{ID: "p2", Name: "P2", Life: 10, Speed: speed2, AttackPower: 4, DefensePower: 4, AttackDice: game.DiceD6, DefenseDice: game.DiceD4}
	return game.NewFightState(p1, p2)
}

func TestNewFightState_FasterGoesFirst(t *testing.T) {
	f := fightPair(3, 5)
	if f.Current != f.P2 {
		t.Fatalf("expected the faster player to open the fight")
	}
	if f := fightPair(5, 5); f.Current != f.P1 {
		t.Fatalf("expected ties to favor the initiator")
	}
}

func TestResolveAttack_DebugModeIsDeterministic(t *testing.T) {
	f := fightPair(5, 3)
	roller := game.NewSeededRoller(1)

	res := ResolveAttack(f, true, roller)
	if res.AttackerRoll != game.DiceD6.Sides() {
		t.Fatalf("debug attack roll should be the die max, got %d", res.AttackerRoll)
	}
	if res.DefenderRoll != 1 {
		t.Fatalf("debug defense roll should be 1, got %d", res.DefenderRoll)
	}
	// 4 + 6 - 4 - 1 = 5
	if res.Damage != 5 {
		t.Fatalf("expected 5 damage, got %d", res.Damage)
	}
	if f.P2.CurrentLife != 5 {
		t.Fatalf("expected defender at 5 life, got %d", f.P2.CurrentLife)
	}

	res = ResolveAttack(f, true, roller)
	if !res.DefenderDown {
		t.Fatalf("expected the second debug attack to down the defender")
	}
	if f.P2.CurrentLife != 0 {
		t.Fatalf("life must floor at zero, got %d", f.P2.CurrentLife)
	}
	if f.P1.Player.Life != 10 || f.P2.Player.Life != 10 {
		t.Fatalf("base life stats must stay untouched by fight damage")
	}
}

func TestResolveAttack_DamageNeverNegative(t *testing.T) {
	f := fightPair(5, 3)
	f.P2.Player.DefensePower = 50

	for i := 0; i < 20; i++ {
		res := ResolveAttack(f, false, game.NewSeededRoller(int64(i)))
		if res.Damage != 0 {
			t.Fatalf("expected 0 damage against overwhelming defense, got %d", res.Damage)
		}
		if f.P2.CurrentLife != 10 {
			t.Fatalf("defender life must not change on a 0-damage exchange")
		}
	}
}

func TestResolveAttack_IceStancePenalty(t *testing.T) {
	f := fightPair(5, 3)
	f.P1.Player.OnIce = true

	res := ResolveAttack(f, true, game.NewSeededRoller(1))
	// (4-2) + 6 - 4 - 1 = 3 instead of 5
	if res.Damage != 3 {
		t.Fatalf("expected the ice stance to cut attack by %d, got damage %d", game.IceStancePenalty, res.Damage)
	}
}

func TestResolveFlee_ConsumesAttemptsOnFailure(t *testing.T) {
	f := fightPair(5, 3)
	roller := game.NewSeededRoller(7)

	res := ResolveFlee(f, 0, roller)
	if res.Success {
		t.Fatalf("flee with zero chance must fail")
	}
	if res.AttemptsLeft != 1 {
		t.Fatalf("expected 1 attempt left, got %d", res.AttemptsLeft)
	}

	res = ResolveFlee(f, 0, roller)
	if res.AttemptsLeft != 0 {
		t.Fatalf("expected 0 attempts left, got %d", res.AttemptsLeft)
	}

	// Out of attempts: no draw, still a failure, counter stays at zero.
	res = ResolveFlee(f, 1, roller)
	if res.Success || res.AttemptsLeft != 0 {
		t.Fatalf("expected a dry failure with no attempts, got %+v", res)
	}
}

func TestResolveFlee_CertainChanceSucceeds(t *testing.T) {
	f := fightPair(5, 3)
	res := ResolveFlee(f, 1.0, game.NewSeededRoller(3))
	if !res.Success {
		t.Fatalf("flee with certain chance must succeed")
	}
	if f.Current.FleeAttempts != game.InitialFleeAttempts {
		t.Fatalf("a successful flee must not consume an attempt")
	}
}
