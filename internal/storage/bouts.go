package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bout is the record of one finished local bout.
type Bout struct {
	ID         string
	GameID     string
	Player     string
	Opponent   string
	Difficulty string
	Won        bool
	RoundsWon  int
	RoundsLost int
	KOs        int // rounds the player won by knockout
	Score      int
	Duration   int // seconds
	CreatedAt  time.Time
}

// Record aggregates a player's bouts.
type Record struct {
	Player string
	Bouts  int
	Wins   int
	Losses int
	KOs    int
}

// SaveBout stores a bout and returns its ID. A new ID is generated when the
// bout has none.
func (s *Store) SaveBout(b Bout) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO bouts
		 (id, game_id, player, opponent, difficulty, won, rounds_won, rounds_lost, kos, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.GameID, b.Player, b.Opponent, b.Difficulty,
		b.Won, b.RoundsWon, b.RoundsLost, b.KOs, b.Score, b.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save bout: %w", err)
	}
	return b.ID, nil
}

// RecentBouts returns the latest bouts, newest first.
func (s *Store) RecentBouts(limit int) ([]Bout, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, opponent, difficulty, won, rounds_won, rounds_lost,
		        kos, score, duration_secs, created_at
		 FROM bouts
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bouts: %w", err)
	}
	defer rows.Close()

	var bouts []Bout
	for rows.Next() {
		var b Bout
		var createdAt any
		if err := rows.Scan(
			&b.ID, &b.GameID, &b.Player, &b.Opponent, &b.Difficulty, &b.Won,
			&b.RoundsWon, &b.RoundsLost, &b.KOs, &b.Score, &b.Duration, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan bout: %w", err)
		}
		b.CreatedAt = parseTime(createdAt)
		bouts = append(bouts, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return bouts, nil
}

// Record returns the win/loss record for a player name.
func (s *Store) Record(player string) (Record, error) {
	rec := Record{Player: player}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(SUM(1 - won), 0), COALESCE(SUM(kos), 0)
		 FROM bouts WHERE player = ?`,
		player,
	).Scan(&rec.Bouts, &rec.Wins, &rec.Losses, &rec.KOs)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query record: %w", err)
	}
	return rec, nil
}
