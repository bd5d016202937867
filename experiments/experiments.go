package experiments

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"tictac/agent"
	"tictac/engine"
	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/meta"
)

// AgentFactory builds the agent playing one side of a game. ctx lives as long as the match.
type AgentFactory func(ctx context.Context, name string, mark game.Mark, cfg agent.Config) (agent.Agent, error)

type Config struct {
	NumGames int
	XAgent   string
	OAgent   string
	// Agent tunes both sides; its Seed is replaced by a per-game seed.
	Agent agent.Config
	// Seed drives the starting mark and the per-game seeds. 0 seeds from the clock.
	Seed        uint64
	Parallelism int
	// Verbose receives every turn and result when set. Verbose games run sequentially.
	Verbose io.Writer
	// OutDir and DBPath enable CSV and SQLite records.
	OutDir string
	DBPath string
	// NewAgent defaults to agent.New.
	NewAgent AgentFactory
}

type result struct {
	reward      float64
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

type gameSetup struct {
	startMark game.Mark
	xSeed     uint64
	oSeed     uint64
}

// Play runs a match between cfg.XAgent and cfg.OAgent. The starting mark is
// picked at random once and rotated after every game.
func Play(ctx context.Context, cfg Config) (*Tally, error) {
	cfg = withDefaults(cfg)

	log.Info().Msg(strings.Repeat("-", 30))
	log.Info().Msgf("Playing %d games", cfg.NumGames)
	log.Info().Msgf("  * Player X: %s", cfg.XAgent)
	log.Info().Msgf("  * Player O: %s", cfg.OAgent)
	log.Info().Msg(strings.Repeat("-", 30))

	setups := planGames(cfg)
	results := make([]result, len(setups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i, setup := range setups {
		i, setup := i, setup
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := runGame(gctx, cfg, setup)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = r
			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, cfg.NumGames, winnerName(r.gameMetric.Winner))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := NewTally()
	for _, r := range results {
		tally.Add(r.reward)
	}
	for _, line := range strings.Split(tally.String(), "\n") {
		log.Info().Msg(line)
	}

	if cfg.OutDir != "" || cfg.DBPath != "" {
		if err := record(ctx, cfg, results); err != nil {
			return tally, err
		}
	}
	return tally, nil
}

func withDefaults(cfg Config) Config {
	if cfg.NumGames <= 0 {
		cfg.NumGames = meta.NumGames
	}
	if cfg.XAgent == "" {
		cfg.XAgent = agent.TicTacJoeName
	}
	if cfg.OAgent == "" {
		cfg.OAgent = agent.TicTacProName
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Parallelism <= 0 || cfg.Verbose != nil {
		cfg.Parallelism = 1
	}
	if cfg.NewAgent == nil {
		cfg.NewAgent = func(_ context.Context, name string, mark game.Mark, cfg agent.Config) (agent.Agent, error) {
			return agent.New(name, mark, cfg)
		}
	}
	return cfg
}

// planGames draws every game's start mark and seeds up front so that results
// do not depend on scheduling.
func planGames(cfg Config) []gameSetup {
	rng := rand.New(rand.NewSource(cfg.Seed))
	startMark := game.X
	if rng.Intn(2) == 1 {
		startMark = game.O
	}

	setups := make([]gameSetup, cfg.NumGames)
	for i := range setups {
		setups[i] = gameSetup{startMark: startMark, xSeed: nonZero(rng.Uint64()), oSeed: nonZero(rng.Uint64())}
		startMark = game.NextMark(startMark)
	}
	return setups
}

// agent.Config treats seed 0 as unseeded
func nonZero(seed uint64) uint64 {
	if seed == 0 {
		return 1
	}
	return seed
}

func runGame(ctx context.Context, cfg Config, setup gameSetup) (result, error) {
	xCfg, oCfg := cfg.Agent, cfg.Agent
	xCfg.Seed, oCfg.Seed = setup.xSeed, setup.oSeed

	x, err := cfg.NewAgent(ctx, cfg.XAgent, game.X, xCfg)
	if err != nil {
		return result{}, err
	}
	o, err := cfg.NewAgent(ctx, cfg.OAgent, game.O, oCfg)
	if err != nil {
		return result{}, err
	}

	var options []engine.Option
	if cfg.Verbose != nil {
		options = append(options, engine.WithRender(cfg.Verbose))
	}
	e := engine.LocalEngine([]agent.Agent{x, o}, setup.startMark, options...)

	reward, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return result{}, err
	}
	return result{reward: reward, gameMetric: gameMetric, moveMetrics: moveMetrics}, nil
}

func winnerName(winner string) string {
	if winner == "" {
		return "tie"
	}
	return winner
}

func record(ctx context.Context, cfg Config, results []result) error {
	gameRecords := make([]metrics.GameRecord, 0, len(results))
	moveRecords := make([][]metrics.MoveRecord, 0, len(results))
	for _, r := range results {
		id := uuid.NewString()
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         id,
			XAgent:     cfg.XAgent,
			OAgent:     cfg.OAgent,
			Reward:     r.reward,
			GameMetric: r.gameMetric,
		})
		moves := make([]metrics.MoveRecord, 0, len(r.moveMetrics))
		for _, mm := range r.moveMetrics {
			moves = append(moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		moveRecords = append(moveRecords, moves)
	}

	if cfg.OutDir != "" {
		if err := writeCSV(cfg, gameRecords, moveRecords); err != nil {
			return err
		}
	}
	if cfg.DBPath != "" {
		if err := writeDB(ctx, cfg.DBPath, gameRecords, moveRecords); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(cfg Config, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.OutDir)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	configs := []metrics.AgentConfig{
		agentConfig(game.X, cfg.XAgent, cfg),
		agentConfig(game.O, cfg.OAgent, cfg),
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var flat []metrics.MoveRecord
	for _, moves := range moveRecords {
		flat = append(flat, moves...)
	}
	if err := writer.WriteMoveRecords(flat); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}

func writeDB(ctx context.Context, path string, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) error {
	store, err := metrics.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	for i, g := range gameRecords {
		if err := store.SaveGame(ctx, g, moveRecords[i]); err != nil {
			return err
		}
	}
	log.Info().Int("games", len(gameRecords)).Str("path", path).Msg("saved games to database")
	return nil
}

// agentConfig records the effective settings, defaults included.
func agentConfig(mark game.Mark, name string, cfg Config) metrics.AgentConfig {
	c := metrics.AgentConfig{
		Mark:        mark,
		Name:        name,
		Iterations:  cfg.Agent.Iterations,
		Confidence:  meta.Confidence,
		Temperature: cfg.Agent.Temperature,
		Seed:        cfg.Seed,
	}
	if c.Iterations == 0 {
		c.Iterations = meta.Iterations
	}
	if cfg.Agent.Confidence != nil {
		c.Confidence = *cfg.Agent.Confidence
	}
	if c.Temperature == 0 {
		c.Temperature = meta.Temperature
	}
	return c
}
