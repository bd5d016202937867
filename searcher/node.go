package searcher

import (
	"fmt"

	"tictac/game"
)

// Node is a search tree node. A parent owns its children; the parent link
// is only followed upwards during backpropagation and UCB scoring.
type Node struct {
	ID       int
	State    game.State  // state after Action was played
	Action   game.Action // game.NoAction for the root
	Visits   int         // n
	Value    float64     // q, sum of rewards
	Children []*Node
	parent   *Node
}

// tree hands out node ids. Each search owns one, so concurrent searches
// never share a counter.
type tree struct {
	root   *Node
	nextID int
}

func newTree(state game.State) *tree {
	t := &tree{}
	t.root = t.newNode(state, game.NoAction, nil)
	return t
}

// newNode allocates a node with the next id and links it into parent's
// children before returning it.
func (t *tree) newNode(state game.State, action game.Action, parent *Node) *Node {
	n := &Node{
		ID:     t.nextID,
		State:  state,
		Action: action,
		parent: parent,
	}
	t.nextID++
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

func (t *tree) size() int {
	return t.nextID
}

func (n *Node) Unvisited() bool {
	return n.Visits == 0
}

// BackpropagateScore adds the increments to this node and every ancestor up to the root.
func (n *Node) BackpropagateScore(incVisits int, incValue float64) {
	for node := n; node != nil; node = node.parent {
		node.Visits += incVisits
		node.Value += incValue
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%d: %g/%d", n.ID, n.Value, n.Visits)
}
