package searcher

import (
	"errors"

	"tictac/game"
)

// Rewards from the searching agent's perspective
const (
	Win  = 1.0
	Tie  = 0.5
	Loss = 0.0
)

var ErrNotTerminal = errors.New("reward requested on non-terminal state")

// ComputeReward scores a finished game for the agent playing mark.
func ComputeReward(state game.State, mark game.Mark) (float64, error) {
	status := game.CheckGameStatus(state.Board)
	switch {
	case status == game.InProgress:
		return 0, ErrNotTerminal
	case status == game.Tie:
		return Tie, nil
	case status == game.Status(game.ToCode(mark)):
		return Win, nil
	default:
		return Loss, nil
	}
}

type ActionVisits struct {
	Action game.Action
	Visits int
}

// Policy lists the root's children with their visit counts, in creation order.
func Policy(root *Node) []ActionVisits {
	policy := make([]ActionVisits, len(root.Children))
	for i, child := range root.Children {
		policy[i] = ActionVisits{Action: child.Action, Visits: child.Visits}
	}
	return policy
}
