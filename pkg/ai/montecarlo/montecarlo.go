// Package montecarlo scores positions by random playouts.
package montecarlo

import (
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// MC_SAMPLES is the default number of playouts per evaluation.
const MC_SAMPLES = 30

// Evaluator estimates a position from the outcomes of uniformly random
// games played to the end. Scores are PLAYER-positive.
type Evaluator struct {
	Samples int
	Rand    game.Rand
}

// New returns an evaluator running samples playouts drawn from r.
func New(samples int, r game.Rand) *Evaluator {
	if samples <= 0 {
		samples = MC_SAMPLES
	}
	return &Evaluator{Samples: samples, Rand: r}
}

func (e *Evaluator) Name() string { return "montecarlo" }

// Evaluate returns +1 or -1 when PLAYER or AI already has a line, and
// otherwise (PLAYER wins - AI wins) / Samples over random playouts.
// side is the side that moved last; the playouts open with its
// opponent. b is not modified.
func (e *Evaluator) Evaluate(b *game.Board, side game.Side) float64 {
	if b.FourInARow(game.Player) {
		return 1
	}
	if b.FourInARow(game.AI) {
		return -1
	}
	samples := e.Samples
	if samples <= 0 {
		samples = MC_SAMPLES
	}
	var wins [3]int // indexed by outcome+1: AI, draw, PLAYER
	for i := 0; i < samples; i++ {
		wins[Rollout(b, side, e.Rand)+1]++
	}
	return float64(wins[2]-wins[0]) / float64(samples)
}

// Rollout plays random legal columns on a copy of b, alternating sides
// and starting with side's opponent, until a line appears or the board
// fills. It returns the winner, or Empty for a draw.
func Rollout(b *game.Board, side game.Side, r game.Rand) game.Side {
	sim := b.Clone()
	p := side
	moves := make([]int, 0, sim.Columns())
	for {
		moves = moves[:0]
		for c := 0; c < sim.Columns(); c++ {
			if sim.CanPlay(c) {
				moves = append(moves, c)
			}
		}
		if len(moves) == 0 {
			return game.Empty
		}
		p = p.Opponent()
		sim.Play(moves[r.Intn(len(moves))], p)
		if sim.FourInARow(p) {
			return p
		}
	}
}
