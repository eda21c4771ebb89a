package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/antonio-cesaria/connect-four/pkg/ai/alphabeta"
	"github.com/antonio-cesaria/connect-four/pkg/ai/heuristic"
	"github.com/antonio-cesaria/connect-four/pkg/ai/human"
	"github.com/antonio-cesaria/connect-four/pkg/ai/neural"
	"github.com/antonio-cesaria/connect-four/pkg/game"
	"github.com/antonio-cesaria/connect-four/pkg/game/debug"
)

func main() {
	depth := flag.Int("depth", alphabeta.MINMAX_DEEP, "search depth in plies")
	samples := flag.Int("samples", alphabeta.DefaultConfig().Samples, "Monte-Carlo playouts per frontier position")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	first := flag.String("first", "random", "who opens: random, human or ai")
	eval := flag.String("eval", "montecarlo", "frontier evaluator: montecarlo, heuristic or neural")
	weights := flag.String("weights", "", "value network file from cmd/train, for -eval neural")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	setupLogging(*logLevel)

	r := game.NewRand(*seed)
	config := alphabeta.DefaultConfig()
	config.Depth = *depth
	config.Samples = *samples

	var engine *alphabeta.Engine
	switch *eval {
	case "montecarlo":
		engine = alphabeta.New(config, r)
	case "heuristic":
		engine = alphabeta.NewWithEvaluator(config, heuristic.New(), r)
	case "neural":
		if *weights == "" {
			log.Fatal().Msg("-eval neural needs -weights")
		}
		net, err := neural.Load(*weights, game.NUM_COLUMNS, game.COLUMN_HEIGHT)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load value network")
		}
		engine = alphabeta.NewWithEvaluator(config, net, r)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -eval %q\n", *eval)
		flag.Usage()
		os.Exit(2)
	}

	var opener game.Side
	switch *first {
	case "random":
		opener = game.RandomFirst(r)
	case "human":
		opener = game.Player
	case "ai":
		opener = game.AI
	default:
		fmt.Fprintf(os.Stderr, "error: unknown -first %q\n", *first)
		flag.Usage()
		os.Exit(2)
	}

	engine.WithLogger(log.Logger)

	runner := game.NewGameRunner(human.New(os.Stdin, os.Stdout), engine)
	runner.Out = os.Stdout
	if _, err := runner.Run(opener); err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	debug.SetLogger(log.Logger)
}
