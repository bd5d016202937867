package agent

import (
	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/searcher"

	"golang.org/x/exp/rand"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) Name() string    { return TicTacProName }
func (a evaluationAgent) Mark() game.Mark { return a.mcts.Mark() }

func (a evaluationAgent) Act(state game.State, env game.Environment) (game.Action, metrics.SearchMetric, error) {
	root, metric, err := a.mcts.Search(state, env)
	if err != nil {
		return game.NoAction, metric, err
	}
	return searcher.BestAction(root), metric, nil
}

func newMCTS(mark game.Mark, cfg Config, rng *rand.Rand) *searcher.MCTS {
	options := []searcher.Option{searcher.WithRand(rng)}

	if cfg.Iterations > 0 {
		options = append(options, searcher.WithIterations(cfg.Iterations))
	}
	if cfg.Confidence != nil {
		options = append(options, searcher.WithConfidence(*cfg.Confidence))
	}
	if cfg.Metrics {
		options = append(options, searcher.WithMetrics())
	}

	return searcher.NewMCTS(mark, options...)
}
