package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/parade/internal/config"
	"github.com/peterkuimelis/parade/internal/log"
)

// seatNames name computer players when no game file names them.
var seatNames = []string{"Alice", "Hatter", "March Hare", "Dormouse", "Cheshire", "Queen"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, env, os.Args[2:])
	case "sim":
		err = runSim(ctx, env, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  parade play [--config FILE] [--seed N] [--no-color]")
	fmt.Println("  parade sim  [--games N] [--players N] [--seed N] [--workers N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play at the terminal against computer players")
	fmt.Println("  sim     Run many computer-only games and print statistics")
	fmt.Println()
	fmt.Println("Environment: PARADE_CONFIG, PARADE_SEED, PARADE_LOG_LEVEL, PARADE_LOG_FORMAT, PARADE_NO_COLOR")
}

func newLogger(env config.Env) (*logrus.Logger, error) {
	return log.NewLogrus(env.LogLevel, env.LogFormat, os.Stderr)
}
