package montecarlo

import (
	"math"
	"testing"

	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// noRand fails the test if a playout draws from it.
type noRand struct{ t *testing.T }

func (r noRand) Intn(n int) int {
	r.t.Fatalf("unexpected random draw")
	return 0
}

// firstRand always picks the lowest legal column.
type firstRand struct{}

func (firstRand) Intn(n int) int { return 0 }

func mustCells(t *testing.T, rows [][]int) *game.Board {
	t.Helper()
	b, err := game.NewBoardFromCells(rows, game.FOUR)
	if err != nil {
		t.Fatalf("NewBoardFromCells: %v", err)
	}
	return b
}

func TestEvaluateDecidedBoardsSkipPlayouts(t *testing.T) {
	e := New(MC_SAMPLES, noRand{t})

	playerWon := game.New()
	aiWon := game.New()
	for c := 0; c < 4; c++ {
		playerWon.Play(c, game.Player)
		aiWon.Play(c, game.AI)
	}
	if got := e.Evaluate(playerWon, game.Player); got != 1 {
		t.Fatalf("expected +1 for a PLAYER win, got %f", got)
	}
	if got := e.Evaluate(aiWon, game.AI); got != -1 {
		t.Fatalf("expected -1 for an AI win, got %f", got)
	}
}

func TestEvaluateForcedOutcomes(t *testing.T) {
	// one row, PLAYER needs the last cell
	b := mustCells(t, [][]int{{1, 1, 1, 0}})
	e := New(10, game.NewRand(1))

	if got := e.Evaluate(b, game.AI); got != 1 {
		t.Fatalf("PLAYER moves next and must win every playout, got %f", got)
	}
	if got := e.Evaluate(b, game.Player); got != 0 {
		t.Fatalf("AI moves next and fills the board every playout, got %f", got)
	}
}

func TestEvaluateRangeAndBoardUntouched(t *testing.T) {
	b := game.New()
	b.Play(3, game.Player)
	b.Play(3, game.AI)
	b.Play(2, game.Player)
	before := b.Clone()

	e := New(0, game.NewRand(42))
	if e.Samples != MC_SAMPLES {
		t.Fatalf("expected default samples %d, got %d", MC_SAMPLES, e.Samples)
	}
	for i := 0; i < 5; i++ {
		score := e.Evaluate(b, game.Player)
		if score < -1 || score > 1 {
			t.Fatalf("score %f out of range", score)
		}
		// scores are multiples of 1/samples
		if n := score * MC_SAMPLES; math.Abs(n-math.Round(n)) > 1e-9 {
			t.Fatalf("score %f is not a sample ratio", score)
		}
	}
	if !b.Equal(before) {
		t.Fatalf("evaluation modified the board:\n%s", b)
	}
}

func TestEvaluateSeededIsReproducible(t *testing.T) {
	b := game.New()
	b.Play(0, game.AI)
	a := New(MC_SAMPLES, game.NewRand(9)).Evaluate(b, game.AI)
	c := New(MC_SAMPLES, game.NewRand(9)).Evaluate(b, game.AI)
	if a != c {
		t.Fatalf("same seed gave %f and %f", a, c)
	}
}

func TestRolloutStartsWithOpponent(t *testing.T) {
	// PLAYER has three stacked in column 0; PLAYER wins at once if it
	// moves first and picks column 0
	b := game.New()
	for i := 0; i < 3; i++ {
		b.Play(0, game.Player)
	}
	if got := Rollout(b, game.AI, firstRand{}); got != game.Player {
		t.Fatalf("expected PLAYER to open and win, got %s", got)
	}
	if b.Pieces() != 3 {
		t.Fatalf("rollout modified the caller's board")
	}
}

func TestRolloutFullBoardIsDraw(t *testing.T) {
	b := game.New()
	for c := 0; c < b.Columns(); c++ {
		for r := 0; r < b.Height(); r++ {
			s := game.AI
			if r%2 == 1 {
				s = game.Player
			}
			if c == 3 {
				s = s.Opponent()
			}
			b.Play(c, s)
		}
	}
	if got := Rollout(b, game.Player, noRand{t}); got != game.Empty {
		t.Fatalf("expected draw on a full board, got %s", got)
	}
}
