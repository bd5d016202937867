package experiments

import (
	"fmt"
	"strings"

	"tictac/game"
	"tictac/utils"
)

// Tally counts game outcomes by final reward.
type Tally struct {
	outcomes *utils.Counter[float64]
}

func NewTally() *Tally {
	return &Tally{outcomes: utils.NewCounter[float64]()}
}

// Add records a final step reward: game.XReward, game.OReward or game.NoReward.
func (t *Tally) Add(reward float64) {
	t.outcomes.Add(reward)
}

func (t *Tally) XWins() int { return t.outcomes.Get(game.XReward) }
func (t *Tally) OWins() int { return t.outcomes.Get(game.OReward) }
func (t *Tally) Ties() int  { return t.outcomes.Get(game.NoReward) }

func (t *Tally) Total() int {
	return t.XWins() + t.OWins() + t.Ties()
}

func (t *Tally) percent(n int) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func (t *Tally) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "X won %d (%.2f%%)\n", t.XWins(), t.percent(t.XWins()))
	fmt.Fprintf(&b, "O won %d (%.2f%%)\n", t.OWins(), t.percent(t.OWins()))
	fmt.Fprintf(&b, "Tied  %d (%.2f%%)", t.Ties(), t.percent(t.Ties()))
	return b.String()
}
