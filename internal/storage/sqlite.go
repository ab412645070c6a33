// Package storage keeps a SQLite ledger of finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// ErrInvalidResult is returned by SaveResult for results that cannot
// describe a finished game.
var ErrInvalidResult = errors.New("storage: invalid result")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished game. Winner is 1 or 2, or 0 for a tie.
type Result struct {
	ID        string
	GameID    string
	Winner    int
	Player1   string
	Player2   string
	Moves     int
	Rows      int
	Cols      int
	Duration  time.Duration
	CreatedAt time.Time
}

// Tie reports whether the game ended without a winner.
func (r Result) Tie() bool {
	return r.Winner == 0
}

// WinnerName returns the winner's name, or "" for a tie.
func (r Result) WinnerName() string {
	switch r.Winner {
	case 1:
		return r.Player1
	case 2:
		return r.Player2
	default:
		return ""
	}
}

// Stats aggregates the ledger for one game ID.
type Stats struct {
	GameID      string
	Games       int
	Player1Wins int
	Player2Wins int
	Ties        int
	AvgMoves    float64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			winner INTEGER NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			moves INTEGER NOT NULL,
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns its ID.
// A missing ID is generated; a zero CreatedAt becomes the current time.
func (s *Store) SaveResult(r Result) (string, error) {
	if r.GameID == "" {
		return "", fmt.Errorf("%w: empty game id", ErrInvalidResult)
	}
	if r.Winner < 0 || r.Winner > 2 {
		return "", fmt.Errorf("%w: winner %d", ErrInvalidResult, r.Winner)
	}
	if r.Moves <= 0 {
		return "", fmt.Errorf("%w: %d moves", ErrInvalidResult, r.Moves)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO results
		 (id, game_id, winner, player1, player2, moves, board_rows, board_cols, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.GameID,
		r.Winner,
		r.Player1,
		r.Player2,
		r.Moves,
		r.Rows,
		r.Cols,
		r.Duration.Milliseconds(),
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	return r.ID, nil
}

// RecentResults returns the newest results for gameID, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, winner, player1, player2, moves, board_rows, board_cols, duration_ms, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Winner,
			&r.Player1,
			&r.Player2,
			&r.Moves,
			&r.Rows,
			&r.Cols,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Stats aggregates all results for gameID.
func (s *Store) Stats(gameID string) (Stats, error) {
	stats := Stats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM results WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Games, &stats.Player1Wins, &stats.Player2Wins, &stats.Ties, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearResults deletes every result for gameID and returns how many were removed.
func (s *Store) ClearResults(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared results: %w", err)
	}
	return n, nil
}

// parseTime handles both driver representations of a DATETIME column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(v)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
