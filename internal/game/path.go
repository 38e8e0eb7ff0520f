package game

import "github.com/ericogr/grid-arena/internal/keys"

// PathInfo is the cheapest known route to a cell together with its movement
// point cost. Ephemeral: recomputed after every state-affecting action.
type PathInfo struct {
	Path []Position `json:"path"`
	Cost int        `json:"cost"`
}

// PathMap indexes PathInfo by the destination's canonical cell key.
type PathMap map[string]PathInfo

// Key returns the canonical map key for a position.
func Key(p Position) string {
	return keys.CellKey(p.X, p.Y)
}
