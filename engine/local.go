package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"tictac/agent"
	"tictac/experiments/metrics"
	"tictac/game"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	env       *game.Env
	agents    map[game.Mark]agent.Agent
	startMark game.Mark
	renderer  *game.Renderer
}

type Option func(e *Engine)

// WithRender draws every turn and the final result to w.
func WithRender(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.renderer = game.NewRenderer(w)
		}
	}
}

func withRenderer(r *game.Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// LocalEngine sets up a game between two agents holding different marks.
func LocalEngine(agents []agent.Agent, startMark game.Mark, options ...Option) *Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if agents[0].Mark() == agents[1].Mark() {
		panic("agents must play different marks")
	}

	env := game.NewEnv()
	env.SetStartMark(startMark)

	e := &Engine{
		env:       env,
		agents:    map[game.Mark]agent.Agent{agents[0].Mark(): agents[0], agents[1].Mark(): agents[1]},
		startMark: startMark,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays one game until the environment reports it is done.
func (e *Engine) Run(ctx context.Context) (float64, metrics.GameMetric, []metrics.MoveMetric, error) {
	state := e.env.Reset()
	gameMetric := metrics.GameMetric{StartingMark: e.startMark, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %s is starting", e.startMark)

	reward := game.NoReward
	for step := 1; !e.env.Done(); step++ {
		if err := ctx.Err(); err != nil {
			return 0, gameMetric, moveMetrics, err
		}
		mark := state.Mark
		current := e.agents[mark]
		if err := e.showTurn(mark); err != nil {
			return 0, gameMetric, moveMetrics, err
		}

		// Agents get their own copy so a search cannot disturb the real game
		action, searchMetric, err := current.Act(state, e.env.Copy())
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("%s (%s) failed to act: %w", current.Name(), mark, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Mark:         mark,
			Agent:        current.Name(),
			SearchMetric: searchMetric,
		})

		state, reward, _, err = e.env.Step(action)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("%s (%s) played %d: %w", current.Name(), mark, action, err)
		}
		if err := e.render(state.Board); err != nil {
			return 0, gameMetric, moveMetrics, err
		}
	}

	if err := e.showResult(reward); err != nil {
		return 0, gameMetric, moveMetrics, err
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	if winner, ok := game.CheckGameStatus(state.Board).Winner(); ok {
		gameMetric.Winner = string(winner)
	}
	return reward, gameMetric, moveMetrics, nil
}

func (e *Engine) showTurn(mark game.Mark) error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.ShowTurn(mark)
}

func (e *Engine) render(board game.Board) error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Render(board)
}

func (e *Engine) showResult(reward float64) error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.ShowResult(reward)
}
