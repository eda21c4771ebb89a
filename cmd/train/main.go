package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/antonio-cesaria/connect-four/pkg/ai/neural"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

func main() {
	defaults := neural.DefaultTrainingConfig()

	episodes := flag.Int("episodes", defaults.Episodes, "number of self-play games")
	batchSize := flag.Int("batch", defaults.BatchSize, "examples collected per update")
	iterations := flag.Int("iterations", defaults.Iterations, "SGD passes per batch")
	reportInterval := flag.Int("report", defaults.ReportInterval, "report progress every N episodes")
	learningRate := flag.Float64("lr", defaults.Network.LearningRate, "learning rate")
	hidden := flag.String("hidden", "64,32", "comma separated hidden layer sizes")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	output := flag.String("output", "value.json", "where to write the trained network")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	layers, err := parseLayers(*hidden)
	if err != nil {
		log.Fatal().Err(err).Str("hidden", *hidden).Msg("invalid hidden layers")
	}

	config := defaults
	config.Episodes = *episodes
	config.BatchSize = *batchSize
	config.Iterations = *iterations
	config.ReportInterval = *reportInterval
	config.Network.LearningRate = *learningRate
	config.Network.HiddenLayers = layers
	config.Network.Name = *output
	config.Rand = game.NewRand(*seed)
	config.Logger = &log.Logger

	net, stats, err := neural.Train(config)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	if err := net.Save(*output); err != nil {
		log.Fatal().Err(err).Msg("failed to save network")
	}

	log.Info().
		Int("examples", stats.Examples).
		Float64("loss", stats.Loss).
		Str("output", *output).
		Msg("training complete")
}

func parseLayers(s string) ([]int, error) {
	var layers []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		layers = append(layers, n)
	}
	return layers, nil
}
