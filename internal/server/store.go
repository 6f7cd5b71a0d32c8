package server

import (
	"context"
	"errors"

	"github.com/openguessr/api/internal/game"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Account is a registered player. BestScore only ever grows; TotalGames
// counts finalized sessions.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	BestScore    int    `json:"bestScore"`
	TotalGames   int    `json:"totalGamesPlayed"`
	CreatedAt    string `json:"createdAt"`
}

// GameRecord is a persisted, finalized game.
type GameRecord struct {
	ID          string             `json:"id"`
	AccountID   string             `json:"accountId"`
	Rounds      []game.RoundResult `json:"rounds"`
	TotalScore  int                `json:"totalScore"`
	CompletedAt string             `json:"completedAt"`
}

// LeaderboardEntry is one row of the public best-score ranking.
type LeaderboardEntry struct {
	Email      string `json:"email"`
	BestScore  int    `json:"bestScore"`
	TotalGames int    `json:"totalGamesPlayed"`
}

type Store interface {
	CreateAccount(ctx context.Context, email, passwordHash string) (Account, error)
	AccountByEmail(ctx context.Context, email string) (Account, error)
	AccountByID(ctx context.Context, id string) (Account, error)

	// SaveGame persists a finalized game and atomically applies the account
	// aggregates: best_score = max(best_score, totalScore) and
	// total_games + 1. The returned bool reports whether the best score
	// improved.
	SaveGame(ctx context.Context, accountID string, rounds []game.RoundResult, totalScore int) (GameRecord, bool, error)
	ListGames(ctx context.Context, accountID string) ([]GameRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	ListLocations(ctx context.Context) ([]game.Location, error)
	InsertLocations(ctx context.Context, locations []game.Location) error
}
