// Package alphabeta implements depth-limited minimax with alpha-beta
// pruning over a game.Board, falling back to a position evaluator at the
// depth limit.
//
// The search plays and takes back moves on the caller's board instead of
// copying it per branch, so an Engine and the board it searches must stay
// on one goroutine.
package alphabeta

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/antonio-cesaria/connect-four/pkg/ai/montecarlo"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// MINMAX_DEEP is the default search depth in plies.
const MINMAX_DEEP = 2

// ErrNoMoves is returned when asked to move on a finished game.
var ErrNoMoves = fmt.Errorf("alphabeta: %w", game.ErrGameOver)

// Evaluator scores a non-terminal position in [-1, 1], positive when
// PLAYER is better off. side is the side that made the last move.
type Evaluator interface {
	Evaluate(b *game.Board, side game.Side) float64
}

// Config holds the search parameters.
type Config struct {
	Depth          int  // plies searched before the evaluator takes over
	Samples        int  // playouts per frontier node for the default evaluator
	DisablePruning bool // plain minimax, for comparison runs
	// FoldFrontier negates the PLAYER-positive evaluator score so frontier
	// and terminal scores share the AI-positive sign, and passes the side
	// that moved last instead of AI. Off by default.
	FoldFrontier bool
}

func DefaultConfig() Config {
	return Config{
		Depth:   MINMAX_DEEP,
		Samples: montecarlo.MC_SAMPLES,
	}
}

// Stats counts work done since the last Reset.
type Stats struct {
	Nodes       int // Search calls
	Evaluations int // frontier evaluations
	Cutoffs     int // sibling loops cut by alpha >= beta
}

// Engine is the search player.
type Engine struct {
	config Config
	eval   Evaluator
	rand   game.Rand
	stats  Stats
	logger zerolog.Logger
}

// New returns an engine scoring its frontier with Monte-Carlo playouts
// drawn from r.
func New(config Config, r game.Rand) *Engine {
	if r == nil {
		r = game.NewRand(0)
	}
	return NewWithEvaluator(config, montecarlo.New(config.Samples, r), r)
}

// NewWithEvaluator returns an engine scoring its frontier with eval. r
// breaks ties between equally scored columns.
func NewWithEvaluator(config Config, eval Evaluator, r game.Rand) *Engine {
	if r == nil {
		r = game.NewRand(0)
	}
	return &Engine{config: config, eval: eval, rand: r, logger: zerolog.Nop()}
}

// WithLogger sets where search summaries go. The default discards them.
func (e *Engine) WithLogger(l zerolog.Logger) *Engine {
	e.logger = l
	return e
}

func (e *Engine) Name() string {
	return fmt.Sprintf("alphabeta (depth %d)", e.config.Depth)
}

func (e *Engine) Config() Config { return e.config }
func (e *Engine) Stats() Stats   { return e.stats }
func (e *Engine) ResetStats()    { e.stats = Stats{} }

// SelectMove implements game.Agent. AI maximizes, PLAYER minimizes.
func (e *Engine) SelectMove(b *game.Board, side game.Side) (int, error) {
	if b.IsTerminal() {
		return -1, ErrNoMoves
	}
	start := time.Now()
	e.ResetStats()
	col, score := e.Search(b, e.config.Depth, math.Inf(-1), math.Inf(1), side == game.AI)
	e.logger.Debug().
		Str("side", side.String()).
		Int("column", col).
		Float64("score", score).
		Int("nodes", e.stats.Nodes).
		Int("evaluations", e.stats.Evaluations).
		Int("cutoffs", e.stats.Cutoffs).
		Dur("elapsed", time.Since(start)).
		Msg("search done")
	if col < 0 {
		return -1, ErrNoMoves
	}
	return col, nil
}

// BestMove searches for AI with a full window at the configured depth.
func (e *Engine) BestMove(b *game.Board) (int, float64) {
	return e.Search(b, e.config.Depth, math.Inf(-1), math.Inf(1), true)
}

// Search returns the best column and its score, positive when AI is
// better off. Column is -1 at terminal and frontier nodes. Terminal
// positions score exactly: +1 for an AI line, -1 for a PLAYER line, 0
// for a draw. b is restored before Search returns.
func (e *Engine) Search(b *game.Board, depth int, alpha, beta float64, maximizing bool) (int, float64) {
	e.stats.Nodes++

	// terminal check must come before any draw from ValidMoves
	if b.IsTerminal() {
		switch {
		case b.FourInARow(game.AI):
			return -1, 1
		case b.FourInARow(game.Player):
			return -1, -1
		default:
			return -1, 0
		}
	}
	if depth <= 0 {
		e.stats.Evaluations++
		return -1, e.frontier(b, maximizing)
	}

	moves := b.ValidMoves()
	column := moves[e.rand.Intn(len(moves))]
	side, value := game.Player, math.Inf(1)
	if maximizing {
		side, value = game.AI, math.Inf(-1)
	}

	for _, col := range moves {
		score := e.child(b, col, side, depth-1, alpha, beta, !maximizing)
		if maximizing {
			if score > value {
				value, column = score, col
			}
			alpha = math.Max(alpha, value)
		} else {
			if score < value {
				value, column = score, col
			}
			beta = math.Min(beta, value)
		}
		if alpha >= beta && !e.config.DisablePruning {
			e.stats.Cutoffs++
			break
		}
	}
	return column, value
}

func (e *Engine) child(b *game.Board, col int, side game.Side, depth int, alpha, beta float64, maximizing bool) (score float64) {
	b.With(col, side, func() {
		_, score = e.Search(b, depth, alpha, beta, maximizing)
	})
	return score
}

// frontier scores a depth-limited leaf as evaluate(board, AI). With
// FoldFrontier the side to move is AI when maximizing, so the last mover
// was PLAYER.
func (e *Engine) frontier(b *game.Board, maximizing bool) float64 {
	if !e.config.FoldFrontier {
		return e.eval.Evaluate(b, game.AI)
	}
	last := game.AI
	if maximizing {
		last = game.Player
	}
	return -e.eval.Evaluate(b, last)
}
