package neural

import (
	"errors"
	"fmt"
	"time"

	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog"

	"github.com/antonio-cesaria/connect-four/pkg/ai/random"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// TrainingConfig specifies the self-play training run.
type TrainingConfig struct {
	Episodes       int           // games to play
	BatchSize      int           // minimum examples collected before an update
	Iterations     int           // SGD passes over each batch
	ReportInterval int           // log progress every N episodes
	Network        NetworkConfig // architecture of the trained network
	Rand           game.Rand     // drives the random players and the opening side
	// Agents play PLAYER and AI. Nil seats a random player.
	Player, AI game.Agent
	// Logger receives progress reports. Nil discards them.
	Logger *zerolog.Logger
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Episodes:       1000,
		BatchSize:      512,
		Iterations:     5,
		ReportInterval: 100,
		Network:        DefaultNetworkConfig(),
	}
}

// TrainingStats tracks the outcome of the games played.
type TrainingStats struct {
	PlayerWins int
	AIWins     int
	Draws      int
	Examples   int
	Loss       float64 // mean squared error on the last batch after its update
	StartTime  time.Time
}

// Train plays Episodes games and fits a fresh network to their outcomes.
func Train(config TrainingConfig) (*ValueNet, TrainingStats, error) {
	if config.ReportInterval <= 0 {
		return nil, TrainingStats{}, errors.New("report interval must be greater than 0")
	}
	if config.BatchSize <= 0 || config.Iterations <= 0 {
		return nil, TrainingStats{}, errors.New("batch size and iterations must be greater than 0")
	}
	if config.Rand == nil {
		config.Rand = game.NewRand(0)
	}
	if config.Player == nil {
		config.Player = random.New(config.Rand)
	}
	if config.AI == nil {
		config.AI = random.New(config.Rand)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	net, err := New(config.Network)
	if err != nil {
		return nil, TrainingStats{}, fmt.Errorf("failed to create network: %w", err)
	}

	logger.Info().
		Int("episodes", config.Episodes).
		Int("batch", config.BatchSize).
		Str("player", config.Player.Name()).
		Str("ai", config.AI.Name()).
		Msg("starting self-play training")

	stats := TrainingStats{StartTime: time.Now()}
	var batch training.Examples
	update := func() {
		batch.Shuffle()
		net.Fit(batch, config.Iterations)
		stats.Loss = net.MeanSquaredError(batch)
		batch = batch[:0]
	}

	for episode := 0; episode < config.Episodes; episode++ {
		board, err := game.NewBoard(config.Network.Columns, config.Network.Height, game.FOUR)
		if err != nil {
			return nil, stats, err
		}
		runner := game.NewGameRunner(config.Player, config.AI).WithBoard(board)
		result, err := runner.Run(game.RandomFirst(config.Rand))
		if err != nil {
			return nil, stats, fmt.Errorf("episode %d: %w", episode, err)
		}

		switch result.Winner {
		case game.Player:
			stats.PlayerWins++
		case game.AI:
			stats.AIWins++
		default:
			stats.Draws++
		}

		examples, err := Examples(result, config.Network.Columns, config.Network.Height)
		if err != nil {
			return nil, stats, err
		}
		batch = append(batch, examples...)
		stats.Examples += len(examples)

		if len(batch) >= config.BatchSize {
			update()
		}

		if (episode+1)%config.ReportInterval == 0 || episode == config.Episodes-1 {
			logger.Info().
				Int("episode", episode+1).
				Int("player_wins", stats.PlayerWins).
				Int("ai_wins", stats.AIWins).
				Int("draws", stats.Draws).
				Float64("loss", stats.Loss).
				Dur("elapsed", time.Since(stats.StartTime)).
				Msg("training progress")
		}
	}
	if len(batch) > 0 {
		update()
	}

	return net, stats, nil
}

// Examples replays a finished game and labels every position after a
// move with the final outcome: +1 PLAYER win, -1 AI win, 0 draw.
func Examples(result game.BattleResult, columns, height int) (training.Examples, error) {
	board, err := game.NewBoard(columns, height, game.FOUR)
	if err != nil {
		return nil, err
	}
	target := []float64{float64(result.Winner)}
	examples := make(training.Examples, 0, len(result.Moves))
	for i, m := range result.Moves {
		if err := board.Drop(m.Column, m.Side); err != nil {
			return nil, fmt.Errorf("replay move %d: %w", i, err)
		}
		examples = append(examples, training.Example{
			Input:    features(board, m.Side),
			Response: target,
		})
	}
	return examples, nil
}
