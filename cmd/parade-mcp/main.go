package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/parade/internal/config"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
	parademcp "github.com/peterkuimelis/parade/internal/mcp"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	zeroTakesAll := flag.Bool("zero-takes-all", false, "a played 0 takes every exposed card")
	scoreHand := flag.Bool("score-hand", false, "cards left in hand count toward the score")
	flag.Parse()

	// stdout carries the MCP transport, so logs go to stderr.
	logger, err := log.NewLogrus(env.LogLevel, env.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	parademcp.SetRules(game.Rules{ZeroTakesAll: *zeroTakesAll, ScoreHand: *scoreHand})
	parademcp.SetLogger(logger)

	s := server.NewMCPServer("parade", "1.0.0")
	parademcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
