package engine

import "github.com/ericogr/grid-arena/internal/game"

// DefaultFleeChance is the probability a flee attempt succeeds when the
// config file does not override it.
const DefaultFleeChance = 0.3

// AttackResult describes one attack exchange inside a fight.
type AttackResult struct {
	AttackerID   string
	DefenderID   string
	AttackerRoll int
	DefenderRoll int
	Damage       int
	DefenderDown bool
}

// ResolveAttack rolls the current fighter's attack die against the
// opponent's defense die and applies the damage floor. In debug mode the
// dice resolve deterministically (attacker max, defender min) to support
// testing and demoed walkthroughs. The fight turn is NOT switched here; the
// caller decides between alternation and fight end based on DefenderDown.
func ResolveAttack(f *game.FightState, debugMode bool, roller game.Roller) AttackResult {
	attacker := f.Current
	defender := f.Opponent()

	attackRoll := roller.Roll(attacker.Player.AttackDice.Sides())
	defenseRoll := roller.Roll(defender.Player.DefenseDice.Sides())
	if debugMode {
		attackRoll = attacker.Player.AttackDice.Sides()
		defenseRoll = 1
	}
	attacker.LastDiceRoll = attackRoll
	defender.LastDiceRoll = defenseRoll

	damage := attacker.Player.EffectiveAttack() + attackRoll -
		defender.Player.EffectiveDefense() - defenseRoll
	if damage < 0 {
		damage = 0
	}
	defender.CurrentLife -= damage
	if defender.CurrentLife < 0 {
		defender.CurrentLife = 0
	}

	return AttackResult{
		AttackerID:   attacker.Player.ID,
		DefenderID:   defender.Player.ID,
		AttackerRoll: attackRoll,
		DefenderRoll: defenseRoll,
		Damage:       damage,
		DefenderDown: defender.CurrentLife == 0,
	}
}

// FleeResult describes one flee attempt.
type FleeResult struct {
	PlayerID     string
	Success      bool
	AttemptsLeft int
}

// ResolveFlee draws against the configured success chance. On failure the
// attempt is consumed; the caller alternates the fight turn. With no
// attempts remaining the draw is skipped and the attempt fails outright.
func ResolveFlee(f *game.FightState, chance float64, roller game.Roller) FleeResult {
	fleeing := f.Current
	if fleeing.FleeAttempts <= 0 {
		return FleeResult{PlayerID: fleeing.Player.ID, Success: false, AttemptsLeft: 0}
	}
	if roller.Float() < chance {
		return FleeResult{PlayerID: fleeing.Player.ID, Success: true, AttemptsLeft: fleeing.FleeAttempts}
	}
	fleeing.FleeAttempts--
	return FleeResult{PlayerID: fleeing.Player.ID, Success: false, AttemptsLeft: fleeing.FleeAttempts}
}
