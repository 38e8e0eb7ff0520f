package game

import (
	"math/rand"
	"sync"
	"time"
)

// Roller abstracts every random draw the engine makes (dice, flee checks,
// shuffles) so tests can substitute deterministic outcomes without touching
// the global generator.
type Roller interface {
	// Roll returns a uniform value in [1, sides].
	Roll(sides int) int
	// Float returns a uniform value in [0, 1).
	Float() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Shuffle pseudo-randomizes the order of n elements via swap.
	Shuffle(n int, swap func(i, j int))
}

type randRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a time-seeded Roller safe for use from a single room
// loop. Each room owns its own to avoid cross-room draw contention.
func NewRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller returns a deterministic Roller for tests.
func NewSeededRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1
}

func (r *randRoller) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *randRoller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *randRoller) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}
