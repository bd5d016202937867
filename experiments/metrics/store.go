package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	x_agent TEXT,
	o_agent TEXT,
	starting_mark TEXT,
	winner TEXT,
	reward REAL,
	started_at DATETIME,
	ended_at DATETIME,
	duration_ns INTEGER,
	total_moves INTEGER
);
CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT REFERENCES games(id),
	step INTEGER,
	mark TEXT,
	agent TEXT,
	duration_ns INTEGER,
	episodes INTEGER,
	tree_size INTEGER,
	root_visits INTEGER,
	PRIMARY KEY (game_id, step)
);
`

// Store persists game and move records in a SQLite database.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Debug().Str("path", path).Msg("database initialized")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame inserts a game and its moves in a single transaction.
func (s *Store) SaveGame(ctx context.Context, game GameRecord, moves []MoveRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, x_agent, o_agent, starting_mark, winner, reward, started_at, ended_at, duration_ns, total_moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		game.XAgent,
		game.OAgent,
		string(game.StartingMark),
		game.Winner,
		game.Reward,
		game.StartTime,
		game.EndTime,
		int64(game.Duration),
		game.TotalMoves,
	)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}

	for _, move := range moves {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO moves (game_id, step, mark, agent, duration_ns, episodes, tree_size, root_visits)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			move.Game,
			move.Step,
			string(move.Mark),
			move.Agent,
			int64(move.Duration),
			move.Episodes,
			move.TreeSize,
			move.RootVisits,
		)
		if err != nil {
			return fmt.Errorf("failed to save move %d of game %s: %w", move.Step, move.Game, err)
		}
	}

	return tx.Commit()
}

// Outcomes counts stored games by winner; ties are counted under "".
func (s *Store) Outcomes(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT winner, COUNT(*) FROM games GROUP BY winner`)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := map[string]int{}
	for rows.Next() {
		var winner string
		var count int
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes[winner] = count
	}
	return outcomes, rows.Err()
}

// CountMoves returns the number of moves stored for a game.
func (s *Store) CountMoves(ctx context.Context, gameID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM moves WHERE game_id = ?`, gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
