package main

import (
	"context"
	"flag"
	"math/rand"
	"os"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/parade/internal/config"
	"github.com/peterkuimelis/parade/internal/console"
	"github.com/peterkuimelis/parade/internal/dice"
	"github.com/peterkuimelis/parade/internal/game"
)

func runPlay(ctx context.Context, env config.Env, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configFile := fs.String("config", env.Config, "path to a game YAML file (players, rules, seed)")
	seed := fs.Int64("seed", env.Seed, "RNG seed (0 for random)")
	noColor := fs.Bool("no-color", env.NoColor, "disable colored output")
	zeroTakesAll := fs.Bool("zero-takes-all", false, "a played 0 takes every exposed card")
	scoreHand := fs.Bool("score-hand", false, "cards left in hand count toward the score")
	fs.Parse(args)

	logger, err := newLogger(env)
	if err != nil {
		return err
	}

	file := config.Default()
	if *configFile != "" {
		if file, err = config.LoadFile(*configFile); err != nil {
			return err
		}
	}

	rules := file.Rules.GameRules()
	rules.ZeroTakesAll = rules.ZeroTakesAll || *zeroTakesAll
	rules.ScoreHand = rules.ScoreHand || *scoreHand

	if *seed == 0 {
		*seed = file.Seed
	}
	if *seed == 0 {
		if *seed, err = dice.NewSeed(); err != nil {
			return err
		}
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	pal := console.NewPalette(!*noColor)
	kinds := file.Kinds()

	var humans []string
	seats := make([]game.Seat, len(file.Players))
	for i, p := range file.Players {
		seats[i] = game.Seat{Name: p.Name, Kind: kinds[i]}
		if kinds[i] == game.KindHuman {
			seats[i].Chooser = console.NewHumanChooser(line, os.Stdout, pal, rules)
			humans = append(humans, p.Name)
		} else {
			seats[i].Chooser = game.NewRandomChooser(rand.New(rand.NewSource(*seed + int64(i) + 1)))
		}
	}

	// Other players' draws stay hidden when exactly one person is playing.
	viewer := ""
	if len(humans) == 1 {
		viewer = humans[0]
	}

	sess, err := game.NewSession(game.Config{
		Seed:      *seed,
		Rules:     rules,
		Observers: []game.Observer{console.NewRenderer(os.Stdout, pal, viewer)},
	}, seats)
	if err != nil {
		return err
	}

	entry := logger.WithFields(logrus.Fields{"game": sess.ID, "seed": *seed, "players": len(seats)})
	entry.Info("game started")

	res, err := sess.Run(ctx)
	if err != nil {
		return err
	}
	entry.WithFields(logrus.Fields{"winner": res.WinnerName(), "turns": sess.Turn, "end": res.EndReason.String()}).Info("game over")
	return nil
}
