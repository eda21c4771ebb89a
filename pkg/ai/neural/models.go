// Package neural is a learned frontier evaluator: a small regression
// network that predicts the outcome of random play from a position.
package neural

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"

	"github.com/antonio-cesaria/connect-four/pkg/game"
)

var ErrInputMismatch = errors.New("network input size does not match board")

// NetworkConfig defines the network architecture.
type NetworkConfig struct {
	Name         string
	Columns      int
	Height       int
	HiddenLayers []int
	LearningRate float64
	Weights      [][][]float64 // optional pre-trained weights
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		Name:         "default",
		Columns:      game.NUM_COLUMNS,
		Height:       game.COLUMN_HEIGHT,
		HiddenLayers: []int{64, 32},
		LearningRate: 0.01,
	}
}

// InputSize is one input per cell plus the side that moved last.
func (c NetworkConfig) InputSize() int { return c.Columns*c.Height + 1 }

// ValueNet scores positions in [-1, 1], positive when PLAYER is better
// off. It satisfies alphabeta.Evaluator.
type ValueNet struct {
	network *deep.Neural
	config  NetworkConfig
}

// New creates a network with random weights, or with config.Weights when
// they are set.
func New(config NetworkConfig) (*ValueNet, error) {
	if config.Columns <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", game.ErrBadDimensions, config.Columns, config.Height)
	}
	if len(config.HiddenLayers) == 0 {
		return nil, errors.New("at least one hidden layer is required")
	}
	layout := append(append([]int{}, config.HiddenLayers...), 1)

	network := deep.NewNeural(&deep.Config{
		Inputs:     config.InputSize(),
		Layout:     layout,
		Activation: deep.ActivationTanh,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	if config.Weights != nil {
		network.ApplyWeights(config.Weights)
	}
	return &ValueNet{network: network, config: config}, nil
}

// Load restores a network written by Save and checks it fits a board of
// the given size.
func Load(path string, columns, height int) (*ValueNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	network, err := deep.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	config := DefaultNetworkConfig()
	config.Name = path
	config.Columns, config.Height = columns, height
	if network.Config == nil || network.Config.Inputs != config.InputSize() {
		return nil, fmt.Errorf("%w: %s", ErrInputMismatch, path)
	}
	return &ValueNet{network: network, config: config}, nil
}

// Save writes the network as JSON.
func (v *ValueNet) Save(path string) error {
	data, err := v.network.Marshal()
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write weights: %w", err)
	}
	return nil
}

func (v *ValueNet) Name() string {
	return fmt.Sprintf("neural (%s)", v.config.Name)
}

func (v *ValueNet) Config() NetworkConfig { return v.config }

// Evaluate returns the exact score of decided positions and the network
// prediction otherwise.
func (v *ValueNet) Evaluate(b *game.Board, side game.Side) float64 {
	if b.FourInARow(game.Player) {
		return 1
	}
	if b.FourInARow(game.AI) {
		return -1
	}
	return v.predict(features(b, side))
}

func (v *ValueNet) predict(in []float64) float64 {
	if len(in) != v.network.Config.Inputs {
		panic(fmt.Sprintf("neural: %v: got %d inputs, want %d", ErrInputMismatch, len(in), v.network.Config.Inputs))
	}
	out := v.network.Predict(in)[0]
	return math.Max(-1, math.Min(1, out))
}

// Fit runs iterations of SGD over examples.
func (v *ValueNet) Fit(examples training.Examples, iterations int) {
	if len(examples) == 0 || iterations <= 0 {
		return
	}
	trainer := training.NewTrainer(training.NewSGD(v.config.LearningRate, 0.5, 0.0, false), 0)
	trainer.Train(v.network, examples, nil, iterations)
}

// MeanSquaredError of the clipped predictions over examples.
func (v *ValueNet) MeanSquaredError(examples training.Examples) float64 {
	if len(examples) == 0 {
		return 0
	}
	var sum float64
	for _, ex := range examples {
		d := v.predict(ex.Input) - ex.Response[0]
		sum += d * d
	}
	return sum / float64(len(examples))
}

// features encodes cells column-major as +1 PLAYER, -1 AI, 0 empty,
// followed by the side that moved last.
func features(b *game.Board, side game.Side) []float64 {
	in := make([]float64, 0, b.Columns()*b.Height()+1)
	for c := 0; c < b.Columns(); c++ {
		for r := 0; r < b.Height(); r++ {
			in = append(in, float64(b.At(c, r)))
		}
	}
	return append(in, float64(side))
}
