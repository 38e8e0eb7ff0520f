package game

// DiceKind names the die assigned to a combat stat.
type DiceKind string

const (
	DiceD4 DiceKind = "d4"
	DiceD6 DiceKind = "d6"
)

// Sides returns the face count for the die, defaulting to 4 for unknown kinds.
func (d DiceKind) Sides() int {
	if d == DiceD6 {
		return 6
	}
	return 4
}

// BotStyle selects the decision profile of a virtual player.
type BotStyle string

const (
	StyleAggressive BotStyle = "aggressive"
	StyleDefensive  BotStyle = "defensive"
)

// AIProfile is attached to a PlayerState when the player is computer
// controlled. Virtual players differ from humans only in who produces their
// intents, so the profile carries decision inputs and nothing else.
type AIProfile struct {
	Style BotStyle `json:"style"`
}

// PlayerState is the authoritative per-player state inside a session.
type PlayerState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`

	// Base stats, fixed at character creation.
	Life         int      `json:"life"`
	Speed        int      `json:"speed"`
	AttackPower  int      `json:"attack_power"`
	DefensePower int      `json:"defense_power"`
	AttackDice   DiceKind `json:"attack_dice"`
	DefenseDice  DiceKind `json:"defense_dice"`

	// Per-turn resources, reset at the start of every turn.
	MovementPts int `json:"movement_pts"`
	Actions     int `json:"actions"`

	// Spatial state.
	Position Position `json:"position"`
	Spawn    Position `json:"spawn"`

	// Transient stance modifiers (standing on ice).
	OnIce bool `json:"on_ice"`

	// HasFlag is set while the player carries the capture-the-flag item.
	HasFlag bool `json:"has_flag"`

	Wins int `json:"wins"`

	AI *AIProfile `json:"ai,omitempty"`
}

// IsVirtual reports whether the player is computer controlled.
func (p *PlayerState) IsVirtual() bool { return p.AI != nil }

// ResetTurn restores the per-turn resources at the start of the player's turn.
func (p *PlayerState) ResetTurn() {
	p.MovementPts = p.Speed
	p.Actions = 1
}

// EffectiveAttack returns the attack power with stance modifiers applied.
func (p *PlayerState) EffectiveAttack() int {
	if p.OnIce {
		return p.AttackPower - IceStancePenalty
	}
	return p.AttackPower
}

// EffectiveDefense returns the defense power with stance modifiers applied.
func (p *PlayerState) EffectiveDefense() int {
	if p.OnIce {
		return p.DefensePower - IceStancePenalty
	}
	return p.DefensePower
}

// IceStancePenalty is subtracted from both attack and defense power while a
// player stands on an ice tile.
const IceStancePenalty = 2
