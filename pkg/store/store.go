package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wsh32/AISnake/pkg/game"
	_ "modernc.org/sqlite"
)

// MatchResult is one finished match
type MatchResult struct {
	ID        int64           `json:"id"`
	SessionID string          `json:"sessionId"`
	Mode      game.Mode       `json:"mode"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Ticks     int             `json:"ticks"`
	Winner    game.Winner     `json:"winner"`
	Score1    int             `json:"score1"`
	Score2    int             `json:"score2"`
	Cause1    game.DeathCause `json:"cause1,omitempty"`
	Cause2    game.DeathCause `json:"cause2,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ResultFromState builds the history row for a finished snapshot.
func ResultFromState(sessionID string, s game.GameState) MatchResult {
	r := MatchResult{
		SessionID: sessionID,
		Mode:      s.Mode,
		Width:     s.Width,
		Height:    s.Height,
		Ticks:     s.Tick,
		Winner:    s.Winner,
	}
	if len(s.Players) > 0 {
		r.Score1, r.Cause1 = s.Players[0].Score, s.Players[0].Cause
	}
	if len(s.Players) > 1 {
		r.Score2, r.Cause2 = s.Players[1].Score, s.Players[1].Cause
	}
	return r
}

// Store keeps match history in SQLite
type Store struct {
	db *sql.DB
}

// Open creates the parent directory and the schema if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; sqlite serialises anyway
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			winner TEXT NOT NULL,
			score1 INTEGER NOT NULL,
			score2 INTEGER NOT NULL DEFAULT 0,
			cause1 TEXT NOT NULL DEFAULT '',
			cause2 TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_mode_score ON matches (mode, score1 DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Save inserts r and fills in its ID and CreatedAt.
func (s *Store) Save(ctx context.Context, r *MatchResult) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO matches
			(session_id, mode, width, height, ticks, winner, score1, score2, cause1, cause2, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, string(r.Mode), r.Width, r.Height, r.Ticks, string(r.Winner),
		r.Score1, r.Score2, string(r.Cause1), string(r.Cause2), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save match %s: %w", r.SessionID, err)
	}
	r.ID, err = res.LastInsertId()
	return err
}

// Top returns the best matches of a mode ordered by the higher of the two
// scores, newest first on ties. An empty mode means all modes.
func (s *Store) Top(ctx context.Context, mode game.Mode, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, mode, width, height, ticks, winner,
				score1, score2, cause1, cause2, created_at
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY MAX(score1, score2) DESC, created_at DESC, id DESC
		 LIMIT ?`,
		string(mode), string(mode), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top matches: %w", err)
	}
	defer rows.Close()

	var out []MatchResult
	for rows.Next() {
		var (
			r                            MatchResult
			mode, winner, cause1, cause2 string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &mode, &r.Width, &r.Height, &r.Ticks, &winner,
			&r.Score1, &r.Score2, &cause1, &cause2, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Mode = game.Mode(mode)
		r.Winner = game.Winner(winner)
		r.Cause1 = game.DeathCause(cause1)
		r.Cause2 = game.DeathCause(cause2)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
