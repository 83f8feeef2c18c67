// Package store persists generated episode scripts in SQLite, keyed by
// broadcast date. The weekly synthesis reads the trailing week of daily
// scripts back out of it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DateLayout is the canonical episode date key format.
const DateLayout = "2006-01-02"

// EpisodeRecord is one stored episode script.
type EpisodeRecord struct {
	Date        string // YYYY-MM-DD
	Script      string
	Title       string
	GeneratedAt time.Time
}

// Store is the SQLite-backed episode archive.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the episode database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "newscast.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	episodesTable := `
	CREATE TABLE IF NOT EXISTS episodes (
		date TEXT PRIMARY KEY,
		script TEXT NOT NULL,
		episode_title TEXT,
		generated_at DATETIME
	);`

	if _, err := s.db.Exec(episodesTable); err != nil {
		return fmt.Errorf("failed to create episodes table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEpisode stores or replaces the episode for its date.
func (s *Store) SaveEpisode(rec EpisodeRecord) error {
	if _, err := time.Parse(DateLayout, rec.Date); err != nil {
		return fmt.Errorf("invalid episode date %q: %w", rec.Date, err)
	}
	generatedAt := rec.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO episodes (date, script, episode_title, generated_at)
		VALUES (?, ?, ?, ?)`,
		rec.Date, rec.Script, rec.Title, generatedAt)
	if err != nil {
		return fmt.Errorf("failed to save episode %s: %w", rec.Date, err)
	}
	return nil
}

// GetEpisode returns the episode for a date, or nil when none is stored.
func (s *Store) GetEpisode(date string) (*EpisodeRecord, error) {
	var rec EpisodeRecord
	err := s.db.QueryRow(`
		SELECT date, script, episode_title, generated_at
		FROM episodes WHERE date = ?`, date).
		Scan(&rec.Date, &rec.Script, &rec.Title, &rec.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load episode %s: %w", date, err)
	}
	return &rec, nil
}

// UpdateTitle sets the episode title for a date.
func (s *Store) UpdateTitle(date, title string) error {
	res, err := s.db.Exec(`UPDATE episodes SET episode_title = ? WHERE date = ?`, title, date)
	if err != nil {
		return fmt.Errorf("failed to update title for %s: %w", date, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no episode stored for %s", date)
	}
	return nil
}

// LastDays returns the episodes of the days-long window ending at end,
// inclusive, in ascending date order. Missing days are simply absent.
func (s *Store) LastDays(end time.Time, days int) ([]EpisodeRecord, error) {
	if days <= 0 {
		return nil, nil
	}
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.db.Query(`
		SELECT date, script, episode_title, generated_at
		FROM episodes
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC`,
		start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query episode window: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []EpisodeRecord
	for rows.Next() {
		var rec EpisodeRecord
		if err := rows.Scan(&rec.Date, &rec.Script, &rec.Title, &rec.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan episode row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
