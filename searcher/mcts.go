package searcher

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"

	"github.com/rs/zerolog/log"
)

var ErrTerminalState = errors.New("search started from a terminal state")

type Option func(m *MCTS)

// MCTS picks moves by Monte Carlo tree search with UCB1 selection. The tree
// is rebuilt on every call to Act. An MCTS is not safe for concurrent use.
type MCTS struct {
	mark       game.Mark
	iterations int
	confidence float64
	rng        *rand.Rand
	metrics    metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

// WithConfidence sets the exploration constant c of the UCB formula.
func WithConfidence(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.confidence = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS returns a searcher playing for mark.
func NewMCTS(mark game.Mark, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		mark:       mark,
		iterations: meta.Iterations,
		confidence: meta.Confidence,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.iterations <= 0 {
		panic("Must specify a positive number of search iterations")
	}
	return m
}

func (m *MCTS) Mark() game.Mark {
	return m.mark
}

func (m *MCTS) Iterations() int {
	return m.iterations
}

func (m *MCTS) Confidence() float64 {
	return m.confidence
}

// Act searches from state and returns the most visited root action. env must
// be positioned at state; it is copied for every iteration and never stepped.
func (m *MCTS) Act(state game.State, env game.Environment) (game.Action, error) {
	root, _, err := m.Search(state, env)
	if err != nil {
		return game.NoAction, err
	}
	return BestAction(root), nil
}

// Search builds a fresh tree rooted at state and returns its root.
func (m *MCTS) Search(state game.State, env game.Environment) (*Node, metrics.SearchMetric, error) {
	if env.Done() || env.CheckGameStatus(state.Board).Terminal() {
		return nil, metrics.SearchMetric{}, ErrTerminalState
	}

	t := newTree(state)
	m.metrics.Start(m.iterations, m.confidence)
	for i := 0; i < m.iterations; i++ {
		if err := m.iterate(t, env.Copy()); err != nil {
			return nil, metrics.SearchMetric{}, fmt.Errorf("iteration %d: %w", i, err)
		}
		m.metrics.AddEpisode()
	}
	metric := m.metrics.Complete(t.root.Visits)

	if len(t.root.Children) == 0 {
		return nil, metric, ErrTerminalState
	}

	best := mostVisited(t.root)
	log.Trace().
		Str("mark", string(m.mark)).
		Int("iterations", m.iterations).
		Int("nodes", t.size()).
		Stringer("action", best.Action).
		Int("visits", best.Visits).
		Msg("search complete")

	return t.root, metric, nil
}

func (m *MCTS) iterate(t *tree, env game.Environment) error {
	node, err := m.selects(t.root, env)
	if err != nil {
		return err
	}
	node, err = m.expand(t, node, env)
	if err != nil {
		return err
	}
	reward, err := m.simulate(node, env)
	if err != nil {
		return err
	}
	node.BackpropagateScore(1, reward)
	return nil
}

// selects descends from node until it reaches a childless node, preferring
// the first unvisited child and otherwise the child with the best UCB score.
func (m *MCTS) selects(node *Node, env game.Environment) (*Node, error) {
	for len(node.Children) > 0 {
		next := firstUnvisited(node)
		if next == nil {
			var err error
			if next, err = bestChild(node, m.confidence); err != nil {
				return nil, err
			}
		}
		node = next
		if _, _, _, err := env.Step(node.Action); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func firstUnvisited(node *Node) *Node {
	for _, child := range node.Children {
		if child.Unvisited() {
			return child
		}
	}
	return nil
}

// expand adds a child for every legal action of a non-terminal node, then
// steps into one of them at random.
func (m *MCTS) expand(t *tree, node *Node, env game.Environment) (*Node, error) {
	if env.Done() {
		return node, nil
	}

	actions := env.AvailableActions()
	for _, action := range actions {
		t.newNode(env.AfterActionState(node.State, action), action, node)
	}
	m.metrics.AddNodes(len(actions))

	if len(node.Children) == 0 {
		return node, nil
	}
	child := node.Children[m.rng.Intn(len(node.Children))]
	if _, _, _, err := env.Step(child.Action); err != nil {
		return nil, err
	}
	return child, nil
}

// simulate plays uniformly random moves until the game ends and scores the result.
func (m *MCTS) simulate(node *Node, env game.Environment) (float64, error) {
	state := node.State
	for !env.Done() {
		actions := env.AvailableActions()
		var err error
		state, _, _, err = env.Step(actions[m.rng.Intn(len(actions))])
		if err != nil {
			return 0, err
		}
	}
	return ComputeReward(state, m.mark)
}
