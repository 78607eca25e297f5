package daily

import (
	"context"
	"database/sql"

	"github.com/guessru/go-server/internal/roster"
)

// Result is one player's finished daily puzzle, persisted for the
// leaderboard. UNIQUE(user_id, date, mode_key) in the schema makes
// re-submission a no-op.
type Result struct {
	UserID     string         `json:"userId"`
	Date       string         `json:"date"`
	ModeKey    roster.ModeKey `json:"modeKey"`
	GameNumber int            `json:"gameNumber"`
	Guesses    int            `json:"guesses"`
	Won        bool           `json:"won"`
	ElapsedMs  int            `json:"elapsedMs"`
}

// Store persists daily results in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string, mode roster.ModeKey) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=? AND mode_key=?",
		userID, date, mode,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, mode_key, game_number, guesses, won, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.ModeKey, r.GameNumber, r.Guesses, r.Won, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	UserID    string `json:"userId"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the top results for a date and mode: wins first, then
// fewest guesses, then fastest.
func (s *Store) Leaderboard(ctx context.Context, date string, mode roster.ModeKey, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, guesses, won, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND mode_key=?
		 ORDER BY won DESC, guesses ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, mode, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Guesses, &r.Won, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
