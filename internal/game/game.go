// Package game holds the round-progression engine: the location pool and
// selection policy, and the single-player session state machine. The engine
// is UI-agnostic and does no I/O; persistence of finished sessions is the
// caller's job.
package game

import (
	"errors"
	"fmt"

	"github.com/openguessr/api/internal/geo"
)

// Location is one target the player has to find. Coordinates are immutable
// once drawn for a round; the selection jitter is applied exactly once, at
// session start.
type Location struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
}

// Point returns the location's coordinates for distance computation.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}

// Guess is a player's map click. A round accepts at most one guess.
type Guess struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RoundResult records the outcome of one completed round. Distance and score
// are always computed together from the same location/guess pair.
type RoundResult struct {
	Location   Location `json:"location"`
	Guess      Guess    `json:"guess"`
	DistanceKm float64  `json:"distance"`
	Score      int      `json:"score"`
}

// ValidationError rejects a single call; session state is unchanged. Round
// and Field identify where the rejected input came from.
type ValidationError struct {
	Round  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("round %d: %s: %s", e.Round, e.Field, e.Reason)
}

// ConfigError means the candidate pool cannot supply the requested number of
// distinct locations. Fatal at session start; no partial session is created.
type ConfigError struct {
	PoolSize int
	Rounds   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("location pool has %d entries, need %d", e.PoolSize, e.Rounds)
}

// ErrCompleted is returned for any mutation attempted after a session has
// finished. Completed sessions are read-only.
var ErrCompleted = errors.New("session already completed")
