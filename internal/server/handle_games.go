package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/openguessr/api/internal/game"
	"github.com/openguessr/api/internal/geo"
)

type saveGameRequest struct {
	Rounds     []game.RoundResult `json:"rounds"`
	TotalScore int                `json:"totalScore"`
}

// validateRounds checks a client-submitted game for well-formedness:
// coordinates in range, scores within bounds, total equal to the round sum.
func validateRounds(req saveGameRequest) error {
	if len(req.Rounds) == 0 {
		return fmt.Errorf("at least one round is required")
	}
	sum := 0
	for i, r := range req.Rounds {
		if !r.Location.Point().Valid() {
			return fmt.Errorf("round %d: location out of range", i+1)
		}
		if !(geo.Point{Lat: r.Guess.Lat, Lng: r.Guess.Lng}).Valid() {
			return fmt.Errorf("round %d: guess out of range", i+1)
		}
		if r.DistanceKm < 0 {
			return fmt.Errorf("round %d: negative distance", i+1)
		}
		if r.Score < 0 || r.Score > geo.MaxScore {
			return fmt.Errorf("round %d: score out of range", i+1)
		}
		sum += r.Score
	}
	if sum != req.TotalScore {
		return fmt.Errorf("total score does not match round scores")
	}
	return nil
}

// handleSaveGame records a completed game for the authenticated account and
// publishes a leaderboard event when the account's best score improves.
func handleSaveGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validateRounds(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		acc := accountFrom(r)
		rec, improved, err := store.SaveGame(r.Context(), acc.ID, req.Rounds, req.TotalScore)
		if err != nil {
			logger.Error("save game", "account", acc.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "could not save game")
			return
		}

		if improved {
			broker.Publish(LeaderboardEvent{Email: acc.Email, BestScore: req.TotalScore})
		}

		writeJSON(w, http.StatusCreated, rec)
	}
}

// handleListGames returns the authenticated account's games, newest first.
func handleListGames(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc := accountFrom(r)
		games, err := store.ListGames(r.Context(), acc.ID)
		if err != nil {
			logger.Error("list games", "account", acc.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "could not list games")
			return
		}
		writeJSON(w, http.StatusOK, games)
	}
}
