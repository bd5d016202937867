package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"golang.org/x/exp/rand"

	"tictac/agent"
	"tictac/experiments/metrics"
	"tictac/game"

	"github.com/stretchr/testify/require"
)

type failingAgent struct {
	mark game.Mark
}

func (a failingAgent) Name() string    { return "Failing" }
func (a failingAgent) Mark() game.Mark { return a.mark }
func (a failingAgent) Act(game.State, game.Environment) (game.Action, metrics.SearchMetric, error) {
	return game.NoAction, metrics.SearchMetric{}, errors.New("boom")
}

// cheatingAgent always plays the first cell, legal or not.
type cheatingAgent struct {
	mark game.Mark
}

func (a cheatingAgent) Name() string    { return "Cheating" }
func (a cheatingAgent) Mark() game.Mark { return a.mark }
func (a cheatingAgent) Act(game.State, game.Environment) (game.Action, metrics.SearchMetric, error) {
	return 0, metrics.SearchMetric{}, nil
}

func TestLocalEngine(t *testing.T) {
	t.Run("panics on agents sharing a mark", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		require.Panics(t, func() {
			LocalEngine([]agent.Agent{agent.NewBaseAgent(game.X, rng), agent.NewBaseAgent(game.X, rng)}, game.X)
		})
	})

	t.Run("panics without two agents", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine([]agent.Agent{agent.NewBaseAgent(game.X, rand.New(rand.NewSource(1)))}, game.X)
		})
	})
}

func TestEngineRun(t *testing.T) {
	t.Run("plays a game to the end", func(t *testing.T) {
		x := agent.NewBaseAgent(game.X, rand.New(rand.NewSource(1)))
		o := agent.NewTicTacJoe(game.O, rand.New(rand.NewSource(2)))
		e := LocalEngine([]agent.Agent{x, o}, game.X)

		reward, gameMetric, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, []float64{game.XReward, game.OReward, game.NoReward}, reward)
		require.Equal(t, game.X, gameMetric.StartingMark)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.GreaterOrEqual(t, gameMetric.TotalMoves, 5)
		require.LessOrEqual(t, gameMetric.TotalMoves, 9)
		require.Equal(t, game.X, moveMetrics[0].Mark, "Start mark should move first")
		require.Equal(t, game.O, moveMetrics[1].Mark, "Marks should alternate")
		switch reward {
		case game.XReward:
			require.Equal(t, "X", gameMetric.Winner)
		case game.OReward:
			require.Equal(t, "O", gameMetric.Winner)
		default:
			require.Empty(t, gameMetric.Winner)
		}
	})

	t.Run("renders turns and result", func(t *testing.T) {
		var buf bytes.Buffer
		x, err := agent.New(agent.TicTacProName, game.X, agent.Config{Iterations: 50, Seed: 1, Metrics: true})
		require.NoError(t, err)
		o := agent.NewTicTacJoe(game.O, rand.New(rand.NewSource(2)))
		e := LocalEngine([]agent.Agent{x, o}, game.O,
			withRenderer(game.NewRenderer(&buf, termenv.WithProfile(termenv.Ascii))))

		_, _, moveMetrics, err := e.Run(context.Background())

		require.NoError(t, err)
		require.Contains(t, buf.String(), "O's turn.")
		require.Contains(t, buf.String(), "---+---+---")
		for _, m := range moveMetrics {
			if m.Mark == game.X {
				require.Equal(t, agent.TicTacProName, m.Agent)
				require.Equal(t, 50, m.Episodes)
			}
		}
	})

	t.Run("reports agent errors", func(t *testing.T) {
		o := agent.NewBaseAgent(game.O, rand.New(rand.NewSource(1)))
		e := LocalEngine([]agent.Agent{failingAgent{mark: game.X}, o}, game.X)

		_, _, _, err := e.Run(context.Background())

		require.ErrorContains(t, err, "boom")
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		x := agent.NewBaseAgent(game.X, rand.New(rand.NewSource(1)))
		o := agent.NewBaseAgent(game.O, rand.New(rand.NewSource(2)))
		e := LocalEngine([]agent.Agent{x, o}, game.X)

		_, _, moveMetrics, err := e.Run(ctx)

		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, moveMetrics)
	})

	t.Run("reports illegal moves", func(t *testing.T) {
		x := cheatingAgent{mark: game.X}
		o := cheatingAgent{mark: game.O}
		e := LocalEngine([]agent.Agent{x, o}, game.X)

		_, _, _, err := e.Run(context.Background())

		require.ErrorIs(t, err, game.ErrIllegalAction)
	})
}
