// Package storage provides SQLite-based persistence for the score table.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer is recorded when a finished game has no player name.
const DefaultPlayer = "last-user"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one row of the score table: the latest score a player
// finished a game with.
type ScoreEntry struct {
	Name      string
	Score     int
	Lines     int
	UpdatedAt time.Time
}

// GameRecord is a single finished game.
type GameRecord struct {
	ID        int64
	Name      string
	Score     int
	Lines     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Result describes a finished game to be saved.
type Result struct {
	Name     string
	Score    int
	Lines    int
	Duration time.Duration
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
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

	// SSH sessions share one store; serialize writers on a single connection.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS score_table (
			name TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_score_table_score ON score_table(score DESC);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_name ON games(name);
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

// NormalizeName trims a player name and falls back to DefaultPlayer.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayer
	}
	return name
}

// SaveResult records a finished game. The player's score table entry is
// overwritten with this result, whether it is higher or lower than before.
// Returns the ID of the game record.
func (s *Store) SaveResult(r Result) (int64, error) {
	name := NormalizeName(r.Name)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO score_table (name, score, lines, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   score = excluded.score,
		   lines = excluded.lines,
		   updated_at = excluded.updated_at`,
		name, r.Score, r.Lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	res, err := tx.Exec(
		"INSERT INTO games (name, score, lines, duration_secs) VALUES (?, ?, ?, ?)",
		name, r.Score, r.Lines, int64(r.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return id, nil
}

// ScoreTable returns the full name -> score mapping.
func (s *Store) ScoreTable() (map[string]int, error) {
	entries, err := s.TopScores(-1)
	if err != nil {
		return nil, err
	}
	table := make(map[string]int, len(entries))
	for _, e := range entries {
		table[e.Name] = e.Score
	}
	return table, nil
}

// TopScores retrieves up to limit score table entries ordered by score
// descending, ties by name. A negative limit returns every entry; zero
// means 10.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit == 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT name, score, lines, updated_at
		 FROM score_table
		 ORDER BY score DESC, name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var updatedAt any
		if err := rows.Scan(&e.Name, &e.Score, &e.Lines, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerScore returns the score table entry for name, or nil if the player
// has never finished a game.
func (s *Store) PlayerScore(name string) (*ScoreEntry, error) {
	e := ScoreEntry{Name: NormalizeName(name)}
	var updatedAt any

	err := s.db.QueryRow(
		"SELECT score, lines, updated_at FROM score_table WHERE name = ?",
		e.Name,
	).Scan(&e.Score, &e.Lines, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player score: %w", err)
	}

	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// RecentGames retrieves the most recent finished games, newest first.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, lines, duration_secs, created_at
		 FROM games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		var secs int64
		var createdAt any
		if err := rows.Scan(&g.ID, &g.Name, &g.Score, &g.Lines, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Duration = time.Duration(secs) * time.Second
		g.CreatedAt = parseTime(createdAt)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// HighScore returns the highest score in the table.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM score_table").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes the score table and the game history.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM score_table; DELETE FROM games;"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics. Players and HighScore describe the
// score table, the same numbers HighScore and TopScores report; the rest
// covers every finished game.
type Stats struct {
	Players    int
	HighScore  int
	GamesCount int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM games`,
	).Scan(&stats.GamesCount, &stats.AvgScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	if err := s.db.QueryRow("SELECT COUNT(*) FROM score_table").Scan(&stats.Players); err != nil {
		return nil, fmt.Errorf("storage: cannot count players: %w", err)
	}
	if stats.HighScore, err = s.HighScore(); err != nil {
		return nil, err
	}

	return stats, nil
}

// parseTime handles both time.Time and the driver's string datetime form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
