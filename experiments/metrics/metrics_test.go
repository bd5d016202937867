package metrics

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tictac/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts episodes and nodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, 50)
		for i := 0; i < 3; i++ {
			c.AddEpisode()
			c.AddNodes(2)
		}

		m := c.Complete(3)

		require.Equal(t, 3, m.Iterations)
		require.Equal(t, 50.0, m.Confidence)
		require.Equal(t, 3, m.Episodes)
		require.Equal(t, 7, m.TreeSize, "Root plus expanded nodes")
		require.Equal(t, 3, m.RootVisits)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddEpisode()
		c.AddNodes(5)
		c.Start(1, 1)

		m := c.Complete(0)

		require.Zero(t, m.Episodes)
		require.Equal(t, 1, m.TreeSize)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(10, 1)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete(10))
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func sampleRecords() (GameRecord, []MoveRecord) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	g := GameRecord{
		ID:     "0b7c3f3e-5a8e-4f57-9d2c-8c2b1d1c0a11",
		XAgent: "TicTacPro",
		OAgent: "TicTacJoe",
		Reward: game.XReward,
		GameMetric: GameMetric{
			StartingMark: game.X,
			Winner:       "X",
			StartTime:    start,
			EndTime:      start.Add(time.Second),
			Duration:     time.Second,
			TotalMoves:   2,
		},
	}
	moves := []MoveRecord{
		{Game: g.ID, MoveMetric: MoveMetric{Step: 1, Mark: game.X, Agent: "TicTacPro", SearchMetric: SearchMetric{Episodes: 100, TreeSize: 40, RootVisits: 100}}},
		{Game: g.ID, MoveMetric: MoveMetric{Step: 2, Mark: game.O, Agent: "TicTacJoe"}},
	}
	return g, moves
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	g, moves := sampleRecords()

	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
		{Mark: game.X, Name: "TicTacPro", Iterations: 100, Confidence: 50, Temperature: 1, Seed: 7},
		{Mark: game.O, Name: "TicTacJoe"},
	}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{g}))
	require.NoError(t, w.WriteMoveRecords(moves))

	t.Run("agent configs", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"X", "TicTacPro", "100", "50", "1", "7"}, rows[1])
	})

	t.Run("game records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, g.ID, rows[1][0])
		require.Equal(t, "X", rows[1][4])
		require.Equal(t, "-1", rows[1][5])
		require.Equal(t, "2", rows[1][9])
	})

	t.Run("move records", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{g.ID, "1", "X", "TicTacPro", "0s", "100", "40", "100"}, rows[1])
	})
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(filepath.Join(t.TempDir(), "db", "games.db"))
	require.NoError(t, err)
	defer s.Close()

	g, moves := sampleRecords()
	require.NoError(t, s.SaveGame(ctx, g, moves))

	t.Run("counts outcomes", func(t *testing.T) {
		outcomes, err := s.Outcomes(ctx)
		require.NoError(t, err)
		require.Equal(t, map[string]int{"X": 1}, outcomes)
	})

	t.Run("stores moves", func(t *testing.T) {
		n, err := s.CountMoves(ctx, g.ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("rejects duplicate games", func(t *testing.T) {
		err := s.SaveGame(ctx, g, nil)
		require.Error(t, err)

		n, err := s.CountMoves(ctx, g.ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}
