package game

import "github.com/openguessr/api/internal/geo"

// Status is the session lifecycle state.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Session is one play-through of n rounds. It is owned by a single player and
// is driven sequentially: SubmitGuess scores the current round, Advance moves
// to the next one or completes the session. Sessions hold no locks; callers
// must not share one session between concurrent requests.
type Session struct {
	locations  []Location
	rounds     []RoundResult
	totalScore int
	roundIndex int
	status     Status
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Status      Status        `json:"status"`
	RoundIndex  int           `json:"roundIndex"`
	TotalRounds int           `json:"totalRounds"`
	TotalScore  int           `json:"totalScore"`
	Rounds      []RoundResult `json:"rounds"`
}

// NewSession draws n locations from the pool and starts at round 1.
func NewSession(pool *Pool, n int) (*Session, error) {
	locations, err := pool.Draw(n)
	if err != nil {
		return nil, err
	}
	return newSession(locations), nil
}

func newSession(locations []Location) *Session {
	return &Session{
		locations:  locations,
		rounds:     make([]RoundResult, 0, len(locations)),
		roundIndex: 1,
		status:     StatusInProgress,
	}
}

// SubmitGuess scores g against the current round's location and records the
// result. Valid only while the session is in progress and the current round
// has no guess yet; rejected calls leave the session unchanged.
func (s *Session) SubmitGuess(g Guess) (RoundResult, error) {
	if s.status == StatusCompleted {
		return RoundResult{}, ErrCompleted
	}
	if s.guessRecorded() {
		return RoundResult{}, &ValidationError{
			Round:  s.roundIndex,
			Field:  "guess",
			Reason: "guess already submitted for this round",
		}
	}
	point := geo.Point(g)
	if !point.Valid() {
		field := "lat"
		if g.Lat >= -90 && g.Lat <= 90 {
			field = "lng"
		}
		return RoundResult{}, &ValidationError{
			Round:  s.roundIndex,
			Field:  field,
			Reason: "coordinate out of range",
		}
	}

	location := s.locations[s.roundIndex-1]
	distance := geo.Distance(location.Point(), point)
	result := RoundResult{
		Location:   location,
		Guess:      g,
		DistanceKm: distance,
		Score:      geo.Score(distance),
	}
	s.rounds = append(s.rounds, result)
	s.totalScore += result.Score
	return result, nil
}

// Advance moves to the next round, or completes the session when the current
// round was the last one. Valid only after the current round's guess has been
// submitted. Returns true once the session is completed; the caller is then
// responsible for persisting the final snapshot.
func (s *Session) Advance() (bool, error) {
	if s.status == StatusCompleted {
		return false, ErrCompleted
	}
	if !s.guessRecorded() {
		return false, &ValidationError{
			Round:  s.roundIndex,
			Field:  "round",
			Reason: "no guess submitted for this round",
		}
	}
	if s.roundIndex < len(s.locations) {
		s.roundIndex++
		return false, nil
	}
	s.roundIndex++
	s.status = StatusCompleted
	return true, nil
}

// guessRecorded reports whether the current round already has a result.
// While in progress, len(rounds) is either roundIndex-1 (awaiting a guess)
// or roundIndex (guess recorded, awaiting Advance).
func (s *Session) guessRecorded() bool {
	return len(s.rounds) == s.roundIndex
}

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// TotalScore returns the sum of all recorded round scores.
func (s *Session) TotalScore() int { return s.totalScore }

// RoundIndex returns the 1-based index of the active round; n+1 once
// completed.
func (s *Session) RoundIndex() int { return s.roundIndex }

// TotalRounds returns the number of rounds in this session.
func (s *Session) TotalRounds() int { return len(s.locations) }

// CurrentLocation returns the active round's target, or false once the
// session has completed.
func (s *Session) CurrentLocation() (Location, bool) {
	if s.status == StatusCompleted {
		return Location{}, false
	}
	return s.locations[s.roundIndex-1], true
}

// Rounds returns a copy of the recorded round results.
func (s *Session) Rounds() []RoundResult {
	out := make([]RoundResult, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// Snapshot captures the current state for serialization.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Status:      s.status,
		RoundIndex:  s.roundIndex,
		TotalRounds: len(s.locations),
		TotalScore:  s.totalScore,
		Rounds:      s.Rounds(),
	}
}
