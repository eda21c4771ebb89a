package neural

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/patrikeh/go-deep/training"

	"github.com/antonio-cesaria/connect-four/pkg/ai/random"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

func smallConfig() NetworkConfig {
	c := DefaultNetworkConfig()
	c.HiddenLayers = []int{16}
	c.LearningRate = 0.05
	return c
}

func TestEvaluateRangeAndDecidedBoards(t *testing.T) {
	net, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b := game.New()
	b.Play(3, game.Player)
	if s := net.Evaluate(b, game.Player); s < -1 || s > 1 {
		t.Fatalf("score %f out of range", s)
	}
	ai := b.Clone()
	for i := 0; i < 4; i++ {
		ai.Play(4, game.AI)
	}
	if !ai.FourInARow(game.AI) {
		t.Fatalf("fixture has no AI line:\n%s", ai)
	}
	if s := net.Evaluate(ai, game.AI); s != -1 {
		t.Fatalf("expected -1 on an AI line, got %f", s)
	}

	player := b.Clone()
	for i := 0; i < 3; i++ {
		player.Play(3, game.Player)
	}
	if s := net.Evaluate(player, game.Player); s != 1 {
		t.Fatalf("expected 1 on a PLAYER line, got %f", s)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	c := smallConfig()
	c.Columns = 0
	if _, err := New(c); !errors.Is(err, game.ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions, got %v", err)
	}
	c = smallConfig()
	c.HiddenLayers = nil
	if _, err := New(c); err == nil {
		t.Fatalf("expected error without hidden layers")
	}
}

func TestFitReducesLoss(t *testing.T) {
	net, err := New(smallConfig())
	if err != nil {
		t.Fatal(err)
	}
	var examples training.Examples
	for i, col := range []int{0, 2, 4, 6} {
		b := game.New()
		b.Play(col, game.Player)
		target := 0.8
		if i%2 == 1 {
			target = -0.8
		}
		examples = append(examples, training.Example{Input: features(b, game.Player), Response: []float64{target}})
	}

	before := net.MeanSquaredError(examples)
	net.Fit(examples, 300)
	after := net.MeanSquaredError(examples)
	if after >= before {
		t.Fatalf("expected loss to drop, before %f after %f", before, after)
	}
}

func TestExamplesLabelEveryMove(t *testing.T) {
	r := game.NewRand(4)
	result, err := game.NewGameRunner(random.New(r), random.New(r)).Run(game.AI)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	examples, err := Examples(result, game.NUM_COLUMNS, game.COLUMN_HEIGHT)
	if err != nil {
		t.Fatalf("Examples: %v", err)
	}
	if len(examples) != len(result.Moves) {
		t.Fatalf("expected %d examples, got %d", len(result.Moves), len(examples))
	}
	for _, ex := range examples {
		if ex.Response[0] != float64(result.Winner) {
			t.Fatalf("label %f does not match winner %s", ex.Response[0], result.Winner)
		}
		if len(ex.Input) != DefaultNetworkConfig().InputSize() {
			t.Fatalf("unexpected input size %d", len(ex.Input))
		}
	}
	if examples[0].Input[len(examples[0].Input)-1] != float64(game.AI) {
		t.Fatalf("first example must record AI as last mover")
	}
}

func TestTrainSaveLoad(t *testing.T) {
	config := DefaultTrainingConfig()
	config.Episodes = 6
	config.BatchSize = 40
	config.Iterations = 2
	config.ReportInterval = 3
	config.Network = smallConfig()
	config.Rand = game.NewRand(8)

	net, stats, err := Train(config)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if stats.PlayerWins+stats.AIWins+stats.Draws != config.Episodes {
		t.Fatalf("expected %d games in stats, got %+v", config.Episodes, stats)
	}
	if stats.Examples == 0 {
		t.Fatalf("no examples collected")
	}

	path := filepath.Join(t.TempDir(), "value.json")
	if err := net.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path, game.NUM_COLUMNS, game.COLUMN_HEIGHT)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	b := game.New()
	b.Play(3, game.AI)
	b.Play(3, game.Player)
	if a, l := net.Evaluate(b, game.Player), loaded.Evaluate(b, game.Player); a != l {
		t.Fatalf("loaded network predicts %f, original %f", l, a)
	}

	if _, err := Load(path, 5, 4); !errors.Is(err, ErrInputMismatch) {
		t.Fatalf("expected ErrInputMismatch for another board size, got %v", err)
	}
}

func TestTrainRejectsBadConfig(t *testing.T) {
	config := DefaultTrainingConfig()
	config.ReportInterval = 0
	if _, _, err := Train(config); err == nil {
		t.Fatalf("expected error for zero report interval")
	}
}
