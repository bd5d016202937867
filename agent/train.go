package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples moves in proportion to root visit counts raised to 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a trainingAgent) Name() string    { return TrainAgentName }
func (a trainingAgent) Mark() game.Mark { return a.mcts.Mark() }

func (a trainingAgent) Act(state game.State, env game.Environment) (game.Action, metrics.SearchMetric, error) {
	root, metric, err := a.mcts.Search(state, env)
	if err != nil {
		return game.NoAction, metric, err
	}

	policy := searcher.Policy(root)
	visits := make([]float64, len(policy))
	for i, av := range policy {
		visits[i] = float64(av.Visits)
	}
	probs := adjustTemperature(visits, a.temperature)
	return policy[sample(probs, a.rng.Float64())].Action, metric, nil
}

// adjustTemperature turns visit counts into probabilities proportional to
// visits^(1/temperature). temperature must be positive and finite.
func adjustTemperature(visits []float64, temperature float64) []float64 {
	adjusted := make([]float64, len(visits))
	maxVisits := 0.0
	for _, visit := range visits {
		maxVisits = math.Max(maxVisits, visit)
	}
	if maxVisits == 0 {
		for i := range adjusted {
			adjusted[i] = 1.0 / float64(len(adjusted))
		}
		return adjusted
	}

	// Scale by the largest count first so low temperatures cannot overflow
	exponent := 1.0 / temperature
	sum := 0.0
	for i, visit := range visits {
		prob := math.Pow(visit/maxVisits, exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

// sample returns the index whose cumulative probability first exceeds sampled.
func sample(probs []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
