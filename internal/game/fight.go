package game

// InitialFleeAttempts is granted to each participant when a fight starts.
const InitialFleeAttempts = 2

// FightInfo is the per-participant snapshot taken at fight initiation.
// CurrentLife is a working copy; the player's base Life stat is untouched so
// a survivor leaves combat with full stats next fight.
type FightInfo struct {
	FleeAttempts int `json:"flee_attempts"`
	CurrentLife  int `json:"current_life"`
	LastDiceRoll int `json:"last_dice_roll"`
}

// Fighter binds a roster player to their fight snapshot.
type Fighter struct {
	Player *PlayerState `json:"player"`
	FightInfo
}

// FightState is the single active one-on-one encounter of a room. Current
// always points at one of the two fighters.
type FightState struct {
	P1      *Fighter `json:"player1"`
	P2      *Fighter `json:"player2"`
	Current *Fighter `json:"-"`
}

// NewFightState snapshots both participants. The first turn goes to the
// faster player; ties favor the initiator (p1).
func NewFightState(p1, p2 *PlayerState) *FightState {
	f := &FightState{
		P1: &Fighter{Player: p1, FightInfo: FightInfo{FleeAttempts: InitialFleeAttempts, CurrentLife: p1.Life}},
		P2: &Fighter{Player: p2, FightInfo: FightInfo{FleeAttempts: InitialFleeAttempts, CurrentLife: p2.Life}},
	}
	if p2.Speed > p1.Speed {
		f.Current = f.P2
	} else {
		f.Current = f.P1
	}
	return f
}

// Opponent returns the fighter facing f.Current.
func (f *FightState) Opponent() *Fighter {
	if f.Current == f.P1 {
		return f.P2
	}
	return f.P1
}

// SwitchTurn hands the fight turn to the other participant.
func (f *FightState) SwitchTurn() {
	f.Current = f.Opponent()
}

// Involves reports whether the player with the given ID is one of the two
// participants.
func (f *FightState) Involves(playerID string) bool {
	return f.P1.Player.ID == playerID || f.P2.Player.ID == playerID
}

// FighterByID returns the participant with the given player ID, or nil.
func (f *FightState) FighterByID(playerID string) *Fighter {
	switch playerID {
	case f.P1.Player.ID:
		return f.P1
	case f.P2.Player.ID:
		return f.P2
	}
	return nil
}
