package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"tictac/agent"
	"tictac/communication/server"
	"tictac/meta"
	"tictac/utils"
)

func main() {
	port := flag.String("port", meta.Port, "Listening port")
	name := flag.String("agent", agent.TicTacProName, fmt.Sprintf("Default agent, one of %v", agent.Names()))
	iterations := flag.Int("iterations", meta.Iterations, "Search iterations per move")
	confidence := flag.Float64("c", meta.Confidence, "UCB exploration constant, 0 disables exploration")
	temperature := flag.Float64("temperature", meta.Temperature, "Sampling temperature of the training agent")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if err := utils.SetupLogging(os.Stderr, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(agent.Config{
		Iterations:  *iterations,
		Confidence:  confidence,
		Temperature: *temperature,
		Seed:        *seed,
		Metrics:     true,
	}, *name)
	if err := srv.ListenAndServe(ctx, ":"+*port); err != nil {
		log.Fatal().Err(err).Msg("agent service stopped")
	}
	log.Info().Msg("agent service shut down")
}
