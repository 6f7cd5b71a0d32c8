package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/openguessr/api/internal/game"
)

func accountStats(t *testing.T, r chi.Router, token string) Account {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	var acc Account
	json.NewDecoder(w.Body).Decode(&acc)
	return acc
}

func TestSaveGameUpdatesBestScore(t *testing.T) {
	r := newTestRouter(t, 5)
	token := register(t, r, "maria@example.com")

	// Best score only ever grows; total games counts every save.
	saves := []struct {
		distance float64
		score    int
		wantBest int
	}{
		{8000, 3000, 3000},
		{12000, 2000, 3000},
		{2000, 4500, 4500},
	}

	for _, s := range saves {
		w := doJSON(t, r, http.MethodPost, "/api/games", token, singleRound(s.distance, s.score))
		if w.Code != http.StatusCreated {
			t.Fatalf("save game: expected 201, got %d: %s", w.Code, w.Body.String())
		}

		acc := accountStats(t, r, token)
		if acc.BestScore != s.wantBest {
			t.Errorf("after score %d: expected best %d, got %d", s.score, s.wantBest, acc.BestScore)
		}
	}

	acc := accountStats(t, r, token)
	if acc.TotalGames != 3 {
		t.Errorf("expected 3 total games, got %d", acc.TotalGames)
	}
}

func TestListGamesNewestFirst(t *testing.T) {
	r := newTestRouter(t, 5)
	token := register(t, r, "maria@example.com")

	for _, score := range []int{3000, 2000, 4500} {
		distance := 20000 * (1 - float64(score)/5000)
		w := doJSON(t, r, http.MethodPost, "/api/games", token, singleRound(distance, score))
		if w.Code != http.StatusCreated {
			t.Fatalf("save game: expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/games", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list games: expected 200, got %d", w.Code)
	}

	var games []GameRecord
	json.NewDecoder(w.Body).Decode(&games)
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	if games[0].TotalScore != 4500 {
		t.Errorf("expected newest game first (4500), got %d", games[0].TotalScore)
	}
	if len(games[0].Rounds) != 1 {
		t.Errorf("expected rounds to round-trip, got %d", len(games[0].Rounds))
	}
}

func TestListGamesIsPerAccount(t *testing.T) {
	r := newTestRouter(t, 5)
	maria := register(t, r, "maria@example.com")
	ana := register(t, r, "ana@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/games", maria, singleRound(8000, 3000))
	if w.Code != http.StatusCreated {
		t.Fatalf("save game: expected 201, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/games", ana, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list games: expected 200, got %d", w.Code)
	}
	var games []GameRecord
	json.NewDecoder(w.Body).Decode(&games)
	if len(games) != 0 {
		t.Errorf("expected no games for other account, got %d", len(games))
	}
}

func TestSaveGameValidation(t *testing.T) {
	r := newTestRouter(t, 5)
	token := register(t, r, "maria@example.com")

	tests := []struct {
		name string
		req  saveGameRequest
	}{
		{"no rounds", saveGameRequest{}},
		{"score above maximum", saveGameRequest{
			Rounds: []game.RoundResult{{
				Location:   game.Location{Lat: 0, Lng: 0},
				Guess:      game.Guess{Lat: 0, Lng: 0},
				DistanceKm: 0,
				Score:      5001,
			}},
			TotalScore: 5001,
		}},
		{"total mismatch", func() saveGameRequest {
			req := singleRound(0, 5000)
			req.TotalScore = 9999
			return req
		}()},
		{"negative distance", saveGameRequest{
			Rounds: []game.RoundResult{{
				Location:   game.Location{Lat: 0, Lng: 0},
				Guess:      game.Guess{Lat: 0, Lng: 0},
				DistanceKm: -1,
				Score:      5000,
			}},
			TotalScore: 5000,
		}},
		{"guess out of range", saveGameRequest{
			Rounds: []game.RoundResult{{
				Location:   game.Location{Lat: 0, Lng: 0},
				Guess:      game.Guess{Lat: 91, Lng: 0},
				DistanceKm: 0,
				Score:      5000,
			}},
			TotalScore: 5000,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/games", token, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	r := newTestRouter(t, 5)

	// Three accounts with different bests.
	for _, p := range []struct {
		email string
		score int
	}{
		{"low@example.com", 2000},
		{"high@example.com", 4500},
		{"mid@example.com", 3000},
	} {
		token := register(t, r, p.email)
		distance := 20000 * (1 - float64(p.score)/5000)
		w := doJSON(t, r, http.MethodPost, "/api/games", token, singleRound(distance, p.score))
		if w.Code != http.StatusCreated {
			t.Fatalf("save game for %s: expected 201, got %d", p.email, w.Code)
		}
	}

	// Public — no token.
	w := doJSON(t, r, http.MethodGet, "/api/leaderboard", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []LeaderboardEntry
	json.NewDecoder(w.Body).Decode(&entries)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantOrder := []string{"high@example.com", "mid@example.com", "low@example.com"}
	for i, email := range wantOrder {
		if entries[i].Email != email {
			t.Errorf("position %d: expected %s, got %s", i, email, entries[i].Email)
		}
	}
	if entries[0].BestScore != 4500 {
		t.Errorf("expected top score 4500, got %d", entries[0].BestScore)
	}
}
