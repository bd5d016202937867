package agent

import (
	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
)

// baseAgent plays a winning move if possible, random otherwise.
type baseAgent struct {
	mark game.Mark
	rng  *rand.Rand
}

func NewBaseAgent(mark game.Mark, rng *rand.Rand) Agent {
	return &baseAgent{mark: mark, rng: rng}
}

func (a *baseAgent) Name() string    { return BaseAgentName }
func (a *baseAgent) Mark() game.Mark { return a.mark }

func (a *baseAgent) Act(state game.State, env game.Environment) (game.Action, metrics.SearchMetric, error) {
	actions := env.AvailableActions()
	if action, ok := winningAction(state, actions, a.mark); ok {
		return action, metrics.SearchMetric{}, nil
	}
	action, err := pick(a.rng, actions)
	return action, metrics.SearchMetric{}, err
}

// ticTacJoe plays a winning move, else blocks the opponent's winning move, else plays randomly.
type ticTacJoe struct {
	mark game.Mark
	rng  *rand.Rand
}

func NewTicTacJoe(mark game.Mark, rng *rand.Rand) Agent {
	return &ticTacJoe{mark: mark, rng: rng}
}

func (a *ticTacJoe) Name() string    { return TicTacJoeName }
func (a *ticTacJoe) Mark() game.Mark { return a.mark }

func (a *ticTacJoe) Act(state game.State, env game.Environment) (game.Action, metrics.SearchMetric, error) {
	actions := env.AvailableActions()
	if action, ok := winningAction(state, actions, a.mark); ok {
		return action, metrics.SearchMetric{}, nil
	}

	// Imagine the opponent was playing
	opponent := game.NextMark(a.mark)
	reversed := game.State{Board: state.Board, Mark: game.NextMark(state.Mark)}
	if action, ok := winningAction(reversed, actions, opponent); ok {
		return action, metrics.SearchMetric{}, nil
	}

	action, err := pick(a.rng, actions)
	return action, metrics.SearchMetric{}, err
}

// winningAction returns the first action after which mark holds a line.
func winningAction(state game.State, actions []game.Action, mark game.Mark) (game.Action, bool) {
	for _, action := range actions {
		next := game.AfterActionState(state, action)
		if winner, ok := game.CheckGameStatus(next.Board).Winner(); ok && winner == mark {
			return action, true
		}
	}
	return game.NoAction, false
}
