// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

const timeLayout = "2006-01-02 15:04:05"

// Sources a game can be recorded from.
const (
	SourceTUI    = "tui"
	SourceSSH    = "ssh"
	SourceWindow = "window"
	SourceSim    = "sim"
)

// Store manages the SQLite database connection for game history.
type Store struct {
	db *sql.DB
}

// GameRecord is one finished game.
type GameRecord struct {
	ID          int64
	Source      string
	Seed        int64
	Pieces      int
	RowsCleared int
	Duration    time.Duration
	CreatedAt   time.Time
}

// Totals aggregates every recorded game.
type Totals struct {
	Games       int
	Pieces      int64
	RowsCleared int64
	BestRows    int
	PlayTime    time.Duration
	LastPlayed  time.Time
}

// SourceStats aggregates the games recorded from one source.
type SourceStats struct {
	Source     string
	Games      int
	BestRows   int
	AvgPieces  float64
	LastPlayed time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_source ON games(source);
		CREATE INDEX IF NOT EXISTS idx_games_rows ON games(rows_cleared DESC);
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

// SaveGame records a finished game and returns its ID.
// A zero CreatedAt is stamped with the current time.
func (s *Store) SaveGame(rec GameRecord) (int64, error) {
	if rec.Source == "" {
		return 0, errors.New("storage: game record has no source")
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO games (source, seed, pieces, rows_cleared, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Source, rec.Seed, rec.Pieces, rec.RowsCleared,
		rec.Duration.Milliseconds(), created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveSummary records the summary handed to a game-over callback.
// This adapter lets frontends save games without building records themselves.
func (s *Store) SaveSummary(source string, seed int64, sum tetris.Summary) (int64, error) {
	return s.SaveGame(GameRecord{
		Source:      source,
		Seed:        seed,
		Pieces:      sum.Pieces,
		RowsCleared: sum.RowsCleared,
		Duration:    sum.Duration(),
		CreatedAt:   sum.EndedAt,
	})
}

// RecentGames retrieves the most recently recorded games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, source, seed, pieces, rows_cleared, duration_ms, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var rec GameRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Seed, &rec.Pieces, &rec.RowsCleared, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Totals returns aggregates over every recorded game.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	var durationMS int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(pieces), 0), COALESCE(SUM(rows_cleared), 0),
		        COALESCE(MAX(rows_cleared), 0), COALESCE(SUM(duration_ms), 0), MAX(created_at)
		 FROM games`,
	).Scan(&t.Games, &t.Pieces, &t.RowsCleared, &t.BestRows, &durationMS, &lastPlayed)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	t.PlayTime = time.Duration(durationMS) * time.Millisecond
	t.LastPlayed = parseTime(lastPlayed)
	return t, nil
}

// StatsBySource retrieves aggregates for every source that has recorded a game.
func (s *Store) StatsBySource() (map[string]*SourceStats, error) {
	rows, err := s.db.Query(
		`SELECT source, COUNT(*), MAX(rows_cleared), AVG(pieces), MAX(created_at)
		 FROM games
		 GROUP BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get source stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SourceStats)
	for rows.Next() {
		var st SourceStats
		var lastPlayed any
		if err := rows.Scan(&st.Source, &st.Games, &st.BestRows, &st.AvgPieces, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Source] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearHistory deletes every recorded game.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM games")
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string values returned by the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
