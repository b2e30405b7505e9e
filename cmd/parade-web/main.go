package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/parade/internal/config"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
	"github.com/peterkuimelis/parade/internal/web"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", env.WebAddr, "HTTP address to listen on")
	delay := flag.Duration("delay", env.WebDelay, "default pause between streamed events")
	zeroTakesAll := flag.Bool("zero-takes-all", false, "a played 0 takes every exposed card")
	scoreHand := flag.Bool("score-hand", false, "cards left in hand count toward the score")
	flag.Parse()

	logger, err := log.NewLogrus(env.LogLevel, env.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(web.Options{
		Rules:  game.Rules{ZeroTakesAll: *zeroTakesAll, ScoreHand: *scoreHand},
		Delay:  *delay,
		Logger: logger,
	})

	logger.Infof("parade web UI listening on %s", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
