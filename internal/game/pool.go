package game

import "math/rand/v2"

// jitterDegrees is the maximum per-axis offset applied to a drawn location so
// repeated games don't reproduce pixel-identical targets. 0.005 degrees is
// roughly half a kilometer at the equator.
const jitterDegrees = 0.005

// Pool is a fixed set of candidate locations that sessions draw from.
type Pool struct {
	locations []Location
}

// NewPool copies locations into a pool. The pool is read-only afterwards.
func NewPool(locations []Location) *Pool {
	p := &Pool{locations: make([]Location, len(locations))}
	copy(p.locations, locations)
	return p
}

// Size returns the number of candidates in the pool.
func (p *Pool) Size() int {
	return len(p.locations)
}

// Draw selects n distinct locations without replacement using an unbiased
// shuffle, then perturbs each by an independent uniform offset in
// [-jitterDegrees, +jitterDegrees] on both axes. Returns a ConfigError when
// the pool is smaller than n.
func (p *Pool) Draw(n int) ([]Location, error) {
	if len(p.locations) < n {
		return nil, &ConfigError{PoolSize: len(p.locations), Rounds: n}
	}

	picked := make([]Location, n)
	for i, j := range rand.Perm(len(p.locations))[:n] {
		loc := p.locations[j]
		loc.Lat += (rand.Float64()*2 - 1) * jitterDegrees
		loc.Lng += (rand.Float64()*2 - 1) * jitterDegrees
		picked[i] = loc
	}
	return picked, nil
}
