package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/parade/internal/config"
	"github.com/peterkuimelis/parade/internal/console"
	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/game"
	"github.com/peterkuimelis/parade/internal/log"
)

type simGame struct {
	result *game.Result
	turns  int
}

func runSim(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	games := fs.Int("games", 1000, "number of games to simulate")
	players := fs.Int("players", 4, "players per game (2-6)")
	seed := fs.Int64("seed", env.Seed, "base RNG seed; game i uses seed+i (0 for random)")
	workers := fs.Int("workers", runtime.NumCPU(), "games run in parallel")
	zeroTakesAll := fs.Bool("zero-takes-all", false, "a played 0 takes every exposed card")
	scoreHand := fs.Bool("score-hand", false, "cards left in hand count toward the score")
	fs.Parse(args)

	if *players < game.MinPlayers || *players > game.MaxPlayers {
		return fmt.Errorf("%d players (want %d-%d): %w", *players, game.MinPlayers, game.MaxPlayers, game.ErrInvalidPlayerCount)
	}
	if *games < 1 {
		return fmt.Errorf("games must be positive")
	}

	logger, err := newLogger(env)
	if err != nil {
		return err
	}

	if *seed == 0 {
		if *seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}
	rules := game.Rules{ZeroTakesAll: *zeroTakesAll, ScoreHand: *scoreHand}
	names := seatNames[:*players]

	logger.WithFields(logrus.Fields{"games": *games, "players": *players, "seed": *seed}).Info("simulation started")

	results := make([]simGame, *games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))
	for i := range results {
		gameSeed := *seed + int64(i)
		g.Go(func() error {
			seats := make([]game.Seat, len(names))
			for j, name := range names {
				seats[j] = game.Seat{
					Name:    name,
					Kind:    game.KindAI,
					Chooser: game.NewRandomChooser(rand.New(rand.NewSource(gameSeed*int64(game.MaxPlayers+1) + int64(j)))),
				}
			}

			cfg := game.Config{Seed: gameSeed, Rules: rules}
			// Per-event logging only when asked for; a long run would flood.
			if logger.IsLevelEnabled(logrus.DebugLevel) {
				cfg.Logger = log.NewLogrusLogger(logger, logrus.Fields{"sim": i})
			}
			sess, err := game.NewSession(cfg, seats)
			if err != nil {
				return err
			}
			res, err := sess.Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, gameSeed, err)
			}
			results[i] = simGame{result: res, turns: sess.Turn}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	stats := console.NewSimStats(names)
	for _, r := range results {
		stats.Add(r.result, r.turns)
	}
	fmt.Println(stats.Render())
	return nil
}
