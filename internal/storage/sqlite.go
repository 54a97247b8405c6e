// Package storage provides SQLite-based persistence for finished rounds.
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

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/rise/internal/games/rise"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID         int64
	RoundID    string   // UUID, generated on save when empty
	Winner     string   // Winning color; empty on a tie
	Tie        bool
	Colors     []string // Player colors in slot order
	ElapsedMS  int64
	Seed       int64
	Difficulty string
	CreatedAt  time.Time
}

// Elapsed returns the round length.
func (r RoundRecord) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMS) * time.Millisecond
}

// Outcome returns the result line shown in history views.
func (r RoundRecord) Outcome() string {
	if r.Tie || r.Winner == "" {
		return "Tie"
	}
	return r.Winner + " wins"
}

// FromResult builds a record for a finished round.
func FromResult(res rise.Result, players []rise.Player, seed int64, difficulty string) RoundRecord {
	rec := RoundRecord{
		Tie:        res.Tie,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		Seed:       seed,
		Difficulty: difficulty,
	}
	if !res.Tie && len(res.Colors) > 0 {
		rec.Winner = res.Colors[0].String()
	}
	for _, p := range players {
		rec.Colors = append(rec.Colors, p.Color.String())
	}
	return rec
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			winner TEXT NOT NULL DEFAULT '',
			tie INTEGER NOT NULL DEFAULT 0,
			colors TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_winner ON rounds(winner);
		CREATE INDEX IF NOT EXISTS idx_rounds_elapsed ON rounds(elapsed_ms DESC);
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

// SaveRound records a finished round and returns the ID of the inserted row.
// A missing RoundID is filled with a new UUID.
func (s *Store) SaveRound(rec RoundRecord) (int64, error) {
	if rec.RoundID == "" {
		rec.RoundID = uuid.NewString()
	}
	if len(rec.Colors) == 0 {
		return 0, errors.New("storage: round has no players")
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (round_id, winner, tie, colors, elapsed_ms, seed, difficulty)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID, rec.Winner, rec.Tie, strings.Join(rec.Colors, ","),
		rec.ElapsedMS, rec.Seed, rec.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const roundColumns = `id, round_id, winner, tie, colors, elapsed_ms, seed, difficulty, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(row scanner) (RoundRecord, error) {
	var rec RoundRecord
	var colors string
	var createdAt any
	if err := row.Scan(&rec.ID, &rec.RoundID, &rec.Winner, &rec.Tie, &colors,
		&rec.ElapsedMS, &rec.Seed, &rec.Difficulty, &createdAt); err != nil {
		return rec, err
	}
	if colors != "" {
		rec.Colors = strings.Split(colors, ",")
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		rec, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RoundByID retrieves a round by its UUID. Returns nil when it does not exist.
func (s *Store) RoundByID(roundID string) (*RoundRecord, error) {
	rec, err := scanRound(s.db.QueryRow(
		`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`,
		roundID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &rec, nil
}

// LongestRound returns the longest round on record, or nil when there is none.
func (s *Store) LongestRound() (*RoundRecord, error) {
	rec, err := scanRound(s.db.QueryRow(
		`SELECT ` + roundColumns + ` FROM rounds ORDER BY elapsed_ms DESC, id ASC LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query longest round: %w", err)
	}
	return &rec, nil
}

// WinsByColor counts outright wins per color. Ties count for nobody.
func (s *Store) WinsByColor() (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT winner, COUNT(*)
		 FROM rounds
		 WHERE tie = 0 AND winner != ''
		 GROUP BY winner`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count wins: %w", err)
	}
	defer rows.Close()

	wins := make(map[string]int)
	for rows.Next() {
		var color string
		var count int
		if err := rows.Scan(&color, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan wins row: %w", err)
		}
		wins[color] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return wins, nil
}

// Stats contains aggregated round statistics.
type Stats struct {
	Rounds     int
	Ties       int
	AvgElapsed time.Duration
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics over all rounds.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var avgMS float64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(tie), 0), COALESCE(AVG(elapsed_ms), 0), MAX(created_at)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.Ties, &avgMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.AvgElapsed = time.Duration(avgMS * float64(time.Millisecond))
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRounds deletes the whole round history.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
