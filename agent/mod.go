package agent

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"
)

var (
	ErrUnknownAgent  = errors.New("unknown agent")
	ErrNoActions     = errors.New("no available actions")
	ErrInvalidConfig = errors.New("invalid agent config")
)

type Agent interface {
	Name() string
	Mark() game.Mark
	// Act chooses an action for state. env is positioned at state and may be
	// stepped freely by the agent; search metrics are empty for agents that do not search.
	Act(state game.State, env game.Environment) (game.Action, metrics.SearchMetric, error)
}

// Config tunes the agents built by New. Zero values fall back to the defaults in meta.
type Config struct {
	Iterations  int
	// Confidence is the UCB exploration constant; nil uses the default and 0 disables exploration.
	Confidence  *float64
	Temperature float64
	Seed        uint64
	Metrics     bool
}

// Names of the agents New can build
const (
	BaseAgentName  = "BaseAgent"
	TicTacJoeName  = "TicTacJoe"
	TicTacProName  = "TicTacPro"
	TrainAgentName = "TicTacProTrainer"
)

func Names() []string {
	return []string{BaseAgentName, TicTacJoeName, TicTacProName, TrainAgentName}
}

// New builds the agent called name playing mark.
func New(name string, mark game.Mark, cfg Config) (Agent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := newRand(cfg.Seed)
	switch name {
	case BaseAgentName:
		return NewBaseAgent(mark, rng), nil
	case TicTacJoeName:
		return NewTicTacJoe(mark, rng), nil
	case TicTacProName:
		return NewEvaluationAgent(newMCTS(mark, cfg, rng)), nil
	case TrainAgentName:
		temperature := cfg.Temperature
		if temperature == 0 {
			temperature = meta.Temperature
		}
		return NewTrainingAgent(newMCTS(mark, cfg, rng), temperature, rng), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownAgent)
}

// Confidence returns a pointer to c for Config.Confidence.
func Confidence(c float64) *float64 {
	return &c
}

func (cfg Config) validate() error {
	if cfg.Iterations < 0 {
		return fmt.Errorf("iterations %d: %w", cfg.Iterations, ErrInvalidConfig)
	}
	if c := cfg.Confidence; c != nil && (*c < 0 || math.IsNaN(*c) || math.IsInf(*c, 0)) {
		return fmt.Errorf("confidence %g: %w", *c, ErrInvalidConfig)
	}
	if t := cfg.Temperature; t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("temperature %g: %w", t, ErrInvalidConfig)
	}
	return nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

func pick(rng *rand.Rand, actions []game.Action) (game.Action, error) {
	if len(actions) == 0 {
		return game.NoAction, ErrNoActions
	}
	return actions[rng.Intn(len(actions))], nil
}
