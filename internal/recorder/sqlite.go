package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the bot's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS jackpot_settlements (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			winner_id INTEGER,
			total     INTEGER,
			entries   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jackpot_ts ON jackpot_settlements(timestamp)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			team1     TEXT,
			team2     TEXT,
			score1    INTEGER,
			score2    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_ts ON matches(timestamp)`,

		`CREATE TABLE IF NOT EXISTS seasons (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			champion  TEXT,
			points    INTEGER,
			titles    INTEGER,
			bets      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_ts ON seasons(timestamp)`,

		`CREATE TABLE IF NOT EXISTS bet_settlements (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			user_id    INTEGER,
			team       TEXT,
			amount     INTEGER,
			multiplier REAL,
			won        INTEGER,
			payout     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bets_ts ON bet_settlements(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordJackpot(s *JackpotSettlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO jackpot_settlements
		(timestamp, winner_id, total, entries)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), s.WinnerID, s.Total, s.Entries,
	)
	return err
}

func (r *SQLiteRecorder) RecordMatch(m *MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO matches
		(timestamp, team1, team2, score1, score2)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), m.Team1, m.Team2, m.Score1, m.Score2,
	)
	return err
}

func (r *SQLiteRecorder) RecordSeason(s *SeasonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO seasons
		(timestamp, champion, points, titles, bets)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), s.Champion, s.Points, s.Titles, s.Bets,
	)
	return err
}

func (r *SQLiteRecorder) RecordBet(b *BetSettlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	won := 0
	if b.Won {
		won = 1
	}
	_, err := r.db.Exec(`INSERT INTO bet_settlements
		(timestamp, user_id, team, amount, multiplier, won, payout)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), b.UserID, b.TeamName, b.Amount, b.Multiplier, won, b.Payout,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
