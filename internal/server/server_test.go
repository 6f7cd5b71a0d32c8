package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openguessr/api/internal/database"
	"github.com/openguessr/api/internal/game"
	"github.com/openguessr/api/internal/migrations"
)

const testSecret = "test-secret"

// newTestRouter wires the full API against a real in-memory SQLite DB.
func newTestRouter(t *testing.T, roundsPerGame int) chi.Router {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := SeedLocations(ctx, logger, store); err != nil {
		t.Fatalf("seed locations: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, logger, Config{
		DB:            db,
		Store:         store,
		Pool:          game.NewPool(defaultLocations),
		JWTSecret:     []byte(testSecret),
		JWTTTL:        time.Hour,
		RoundsPerGame: roundsPerGame,
	})
	return r
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r chi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its bearer token.
func register(t *testing.T, r chi.Router, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/register", "", credentialsRequest{
		Email:    email,
		Password: "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, w.Code, w.Body.String())
	}

	var resp authResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Token == "" {
		t.Fatalf("register %s: empty token", email)
	}
	return resp.Token
}

// singleRound builds a consistent one-round game whose score derives from
// the given distance.
func singleRound(distanceKm float64, score int) saveGameRequest {
	return saveGameRequest{
		Rounds: []game.RoundResult{{
			Location:   game.Location{Lat: 48.8584, Lng: 2.2945, Country: "France", Description: "Eiffel Tower, Paris"},
			Guess:      game.Guess{Lat: 0, Lng: 0},
			DistanceKm: distanceKm,
			Score:      score,
		}},
		TotalScore: score,
	}
}
