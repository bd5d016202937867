package searcher

import (
	"errors"
	"math"

	"tictac/game"
)

var ErrNoParent = errors.New("UCB score called for node with no parent")

type ucb struct {
	c   float64
	lnN float64
}

func newUCB(c float64, parentVisits int) *ucb {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	return &ucb{c: c, lnN: math.Log(float64(parentVisits))}
}

func (u ucb) evaluate(q float64, n int) float64 {
	if n == 0 {
		panic("cannot compute UCB: 0 visits")
	}
	// UCB = q/n + c*sqrt(ln(N)/n)
	return q/float64(n) + u.c*math.Sqrt(u.lnN/float64(n))
}

// Score returns the UCB1 value of a visited, non-root node with confidence constant c.
func Score(node *Node, c float64) (float64, error) {
	if node.parent == nil {
		return 0, ErrNoParent
	}
	return newUCB(c, node.parent.Visits).evaluate(node.Value, node.Visits), nil
}

// bestChild returns the child with the highest UCB score, the first one on ties.
// All children must have been visited.
func bestChild(node *Node, c float64) (*Node, error) {
	var best *Node
	maxScore := math.Inf(-1)
	for _, child := range node.Children {
		score, err := Score(child, c)
		if err != nil {
			return nil, err
		}
		if best == nil || score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best, nil
}

// BestAction returns the action of root's most visited child.
func BestAction(root *Node) game.Action {
	if best := mostVisited(root); best != nil {
		return best.Action
	}
	return game.NoAction
}

// mostVisited returns the child with the most visits, the first one on ties.
func mostVisited(node *Node) *Node {
	var best *Node
	for _, child := range node.Children {
		if best == nil || child.Visits > best.Visits {
			best = child
		}
	}
	return best
}
