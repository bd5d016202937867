package engine

import (
	"context"

	"tictac/experiments/metrics"
)

type Runner interface {
	// Run plays a game to the end and returns the final step reward
	// (game.XReward, game.OReward or game.NoReward on a tie). It stops
	// before the next move once ctx is done.
	Run(ctx context.Context) (reward float64, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

var _ Runner = (*Engine)(nil)
