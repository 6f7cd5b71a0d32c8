package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/openguessr/api/internal/game"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, email, passwordHash string) (Account, error) {
	var acc Account
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, email, password_hash)
		VALUES (lower(hex(randomblob(16))), ?, ?)
		RETURNING id, email, created_at
	`, email, passwordHash).Scan(&acc.ID, &acc.Email, &acc.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return Account{}, ErrEmailTaken
	}
	if err != nil {
		return Account{}, err
	}
	acc.PasswordHash = passwordHash
	return acc, nil
}

func (s *SQLiteStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, best_score, total_games, created_at
		FROM accounts WHERE email = ?
	`, email))
}

func (s *SQLiteStore) AccountByID(ctx context.Context, id string) (Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, best_score, total_games, created_at
		FROM accounts WHERE id = ?
	`, id))
}

func (s *SQLiteStore) scanAccount(row *sql.Row) (Account, error) {
	var acc Account
	err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &acc.BestScore, &acc.TotalGames, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return acc, err
}

// SaveGame inserts the game row and bumps the account aggregates in one
// transaction. The best-score comparison happens inside the UPDATE itself,
// so two concurrent finalizes for the same account cannot lose the higher
// value. SQLITE_BUSY conflicts are retried with backoff.
func (s *SQLiteStore) SaveGame(ctx context.Context, accountID string, rounds []game.RoundResult, totalScore int) (GameRecord, bool, error) {
	roundsJSON, err := json.Marshal(rounds)
	if err != nil {
		return GameRecord{}, false, fmt.Errorf("encoding rounds: %w", err)
	}

	var rec GameRecord
	var improved bool

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		rec, improved = GameRecord{}, false

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return busyRetryable(err)
		}
		defer tx.Rollback()

		err = tx.QueryRowContext(ctx, `
			INSERT INTO games (id, account_id, rounds, total_score)
			VALUES (lower(hex(randomblob(16))), ?, ?, ?)
			RETURNING id, completed_at
		`, accountID, string(roundsJSON), totalScore).Scan(&rec.ID, &rec.CompletedAt)
		if err != nil {
			return busyRetryable(err)
		}

		var oldBest int
		err = tx.QueryRowContext(ctx, `
			SELECT best_score FROM accounts WHERE id = ?
		`, accountID).Scan(&oldBest)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return busyRetryable(err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE accounts
			SET best_score = MAX(best_score, ?), total_games = total_games + 1
			WHERE id = ?
		`, totalScore, accountID); err != nil {
			return busyRetryable(err)
		}
		improved = totalScore > oldBest

		if err := tx.Commit(); err != nil {
			return busyRetryable(err)
		}
		return nil
	})
	if err != nil {
		return GameRecord{}, false, err
	}

	rec.AccountID = accountID
	rec.Rounds = rounds
	rec.TotalScore = totalScore
	return rec, improved, nil
}

// busyRetryable marks lock contention errors as retryable for retry.Do.
func busyRetryable(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") {
		return retry.RetryableError(err)
	}
	return err
}

func (s *SQLiteStore) ListGames(ctx context.Context, accountID string) ([]GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, rounds, total_score, completed_at
		FROM games
		WHERE account_id = ?
		ORDER BY completed_at DESC, rowid DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []GameRecord{}
	for rows.Next() {
		var rec GameRecord
		var roundsJSON string
		if err := rows.Scan(&rec.ID, &rec.AccountID, &roundsJSON, &rec.TotalScore, &rec.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(roundsJSON), &rec.Rounds); err != nil {
			return nil, fmt.Errorf("decoding rounds for game %s: %w", rec.ID, err)
		}
		games = append(games, rec)
	}
	return games, rows.Err()
}

func (s *SQLiteStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email, best_score, total_games
		FROM accounts
		ORDER BY best_score DESC, total_games DESC, email
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Email, &e.BestScore, &e.TotalGames); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) ListLocations(ctx context.Context) ([]game.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lat, lng, country, description FROM locations ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []game.Location
	for rows.Next() {
		var loc game.Location
		if err := rows.Scan(&loc.Lat, &loc.Lng, &loc.Country, &loc.Description); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *SQLiteStore) InsertLocations(ctx context.Context, locations []game.Location) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, loc := range locations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO locations (lat, lng, country, description)
			VALUES (?, ?, ?, ?)
		`, loc.Lat, loc.Lng, loc.Country, loc.Description); err != nil {
			return err
		}
	}
	return tx.Commit()
}
