package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openguessr/api/internal/game"
)

type sessionResponse struct {
	ID          string             `json:"id"`
	Status      game.Status        `json:"status"`
	Round       int                `json:"round"`
	TotalRounds int                `json:"totalRounds"`
	TotalScore  int                `json:"totalScore"`
	Location    *game.Location     `json:"location,omitempty"`
	Rounds      []game.RoundResult `json:"rounds"`
}

func sessionToResponse(id string, sess *game.Session) sessionResponse {
	snap := sess.Snapshot()
	resp := sessionResponse{
		ID:          id,
		Status:      snap.Status,
		Round:       snap.RoundIndex,
		TotalRounds: snap.TotalRounds,
		TotalScore:  snap.TotalScore,
		Rounds:      snap.Rounds,
	}
	if loc, ok := sess.CurrentLocation(); ok {
		resp.Location = &loc
	}
	return resp
}

// handleStartSession begins a new server-tracked game session.
func handleStartSession(logger *slog.Logger, registry *SessionRegistry, pool *game.Pool, rounds int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc := accountFrom(r)
		id, sess, err := registry.Start(acc.ID, pool, rounds)
		if err != nil {
			logger.Error("start session", "account", acc.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "could not start session")
			return
		}
		writeJSON(w, http.StatusCreated, sessionToResponse(id, sess))
	}
}

// handleSessionState returns the current state of a live session.
func handleSessionState(registry *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := registry.Get(id, accountFrom(r).ID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sessionToResponse(id, sess))
	}
}

// handleSubmitGuess scores the authenticated player's guess for the current
// round and reveals the round result.
func handleSubmitGuess(registry *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := registry.Get(id, accountFrom(r).ID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		var g game.Guess
		if err := readJSON(r, &g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := sess.SubmitGuess(g)
		if err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// handleAdvance moves a session to its next round. Advancing past the final
// round finalizes the game: the result is persisted, the session is dropped,
// and a leaderboard event is published on a new best score. If persistence
// fails the session is kept so the client can retry.
func handleAdvance(logger *slog.Logger, registry *SessionRegistry, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		acc := accountFrom(r)
		sess, err := registry.Get(id, acc.ID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		if sess.Status() != game.StatusCompleted {
			done, err := sess.Advance()
			if err != nil {
				writeGameError(w, err)
				return
			}
			if !done {
				writeJSON(w, http.StatusOK, sessionToResponse(id, sess))
				return
			}
		}

		rec, improved, err := store.SaveGame(r.Context(), acc.ID, sess.Rounds(), sess.TotalScore())
		if err != nil {
			logger.Error("persist finished session", "session", id, "account", acc.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "could not save game")
			return
		}
		registry.Remove(id)

		if improved {
			broker.Publish(LeaderboardEvent{Email: acc.Email, BestScore: rec.TotalScore})
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// writeGameError maps engine errors onto HTTP statuses.
func writeGameError(w http.ResponseWriter, err error) {
	var verr *game.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, game.ErrCompleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
