package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"tictac/agent"
	"tictac/communication/client"
	"tictac/experiments"
	"tictac/game"
	"tictac/meta"
	"tictac/utils"
)

func main() {
	numGames := flag.Int("games", meta.NumGames, "Number of games to play")
	xAgent := flag.String("x", agent.TicTacJoeName, fmt.Sprintf("Agent playing X, one of %v", agent.Names()))
	oAgent := flag.String("o", agent.TicTacProName, fmt.Sprintf("Agent playing O, one of %v", agent.Names()))
	xURL := flag.String("x-url", "", "Agent service URL playing X instead of a local agent")
	oURL := flag.String("o-url", "", "Agent service URL playing O instead of a local agent")
	iterations := flag.Int("iterations", meta.Iterations, "Search iterations per move")
	confidence := flag.Float64("c", meta.Confidence, "UCB exploration constant, 0 disables exploration")
	temperature := flag.Float64("temperature", meta.Temperature, "Sampling temperature of the training agent")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	parallel := flag.Int("parallel", 1, "Games played concurrently")
	verbose := flag.Bool("verbose", true, "Render every turn and result")
	outDir := flag.String("out", "", "Directory for CSV records")
	dbPath := flag.String("db", "", "SQLite database for game records")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if err := utils.SetupLogging(os.Stderr, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := experiments.Config{
		NumGames: *numGames,
		XAgent:   *xAgent,
		OAgent:   *oAgent,
		Agent: agent.Config{
			Iterations:  *iterations,
			Confidence:  confidence,
			Temperature: *temperature,
			Metrics:     *outDir != "" || *dbPath != "",
		},
		Seed:        *seed,
		Parallelism: *parallel,
		OutDir:      *outDir,
		DBPath:      *dbPath,
		NewAgent:    agentFactory(map[game.Mark]string{game.X: *xURL, game.O: *oURL}),
	}
	if *verbose {
		cfg.Verbose = os.Stdout
	}

	if _, err := experiments.Play(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}

// agentFactory builds remote agents for marks with a service URL and local ones otherwise.
func agentFactory(urls map[game.Mark]string) experiments.AgentFactory {
	return func(ctx context.Context, name string, mark game.Mark, cfg agent.Config) (agent.Agent, error) {
		if url := urls[mark]; url != "" {
			return client.NewRemoteAgent(url, name, mark, client.WithContext(ctx)), nil
		}
		return agent.New(name, mark, cfg)
	}
}
