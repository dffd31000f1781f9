package server

import (
	"math"
	"math/rand"
	"sync"
)

// StarLocation is the broadcast view of the pickup.
type StarLocation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CollectionResult reports the outcome of a collect attempt. A losing
// attempt is not an error: it is the expected result whenever two
// ships reach the star in the same instant.
type CollectionResult struct {
	Collected bool
	Winner    string
	Star      StarLocation
	Scores    Scores
}

// StarArbiter owns the single live star. Each star instance carries a
// generation number; Overlaps hands the caller the generation it
// observed and Collect only succeeds if that generation is still live.
// The first claim replaces the instance under the arbiter's lock, so
// at most one collect per instance ever wins regardless of how claims
// interleave.
type StarArbiter struct {
	mu     sync.Mutex
	star   StarLocation
	gen    uint64
	ledger *Ledger
	rng    *rand.Rand
	cfg    WorldConfig
}

func NewStarArbiter(cfg WorldConfig, ledger *Ledger, rng *rand.Rand) *StarArbiter {
	a := &StarArbiter{ledger: ledger, rng: rng, cfg: cfg, gen: 1}
	a.star = a.draw(nil)
	return a
}

// Location returns the current star position.
func (a *StarArbiter) Location() StarLocation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.star
}

// Overlaps reports whether a ship at (x, y) covers the live star, and
// if so which star generation it saw.
func (a *StarArbiter) Overlaps(x, y float64) (uint64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if math.Hypot(x-a.star.X, y-a.star.Y) > a.cfg.PickupRadius {
		return 0, false
	}
	return a.gen, true
}

// Collect claims the star generation observed by a prior Overlaps
// call. The winner's team is credited and a replacement star is drawn
// away from the given players; a claim against a superseded generation
// returns the already-collected outcome with no side effects.
func (a *StarArbiter) Collect(playerID string, team Team, gen uint64, players []Player) CollectionResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.gen {
		return CollectionResult{Scores: a.ledger.Snapshot()}
	}

	a.gen++
	a.ledger.Increment(team)
	a.star = a.draw(players)

	return CollectionResult{
		Collected: true,
		Winner:    playerID,
		Star:      a.star,
		Scores:    a.ledger.Snapshot(),
	}
}

// draw picks a spawn point by rejection sampling against the minimum
// player distance. The retry count is bounded; once it runs out the
// draw is accepted as-is, trading a possibly crowded spawn for a
// guaranteed finish.
func (a *StarArbiter) draw(players []Player) StarLocation {
	for attempt := 0; attempt < a.cfg.StarSpawnRetries; attempt++ {
		candidate := a.randomPoint()
		if a.clearOf(candidate, players) {
			return candidate
		}
	}
	return a.randomPoint()
}

func (a *StarArbiter) randomPoint() StarLocation {
	inset := a.cfg.SpawnInset
	return StarLocation{
		X: inset + a.rng.Float64()*(a.cfg.Width-2*inset),
		Y: inset + a.rng.Float64()*(a.cfg.Height-2*inset),
	}
}

func (a *StarArbiter) clearOf(loc StarLocation, players []Player) bool {
	for _, p := range players {
		if math.Hypot(loc.X-p.X, loc.Y-p.Y) < a.cfg.StarMinDistance {
			return false
		}
	}
	return true
}
