// Package mcts is a UCT Monte Carlo tree search player, used as a
// sparring opponent for the alpha-beta engine.
package mcts

import (
	"fmt"
	"math"

	"github.com/antonio-cesaria/connect-four/pkg/ai/montecarlo"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// exploration constant for UCB1
const c = 1.414

// MCTSNode is a node of the search tree. state is owned by the node.
type MCTSNode struct {
	state       *game.Board
	parent      *MCTSNode
	children    []*MCTSNode
	column      int       // move that led here
	mover       game.Side // side that played column
	visits      int
	totalReward float64 // from mover's point of view
	unexplored  []int
}

// MCTSAI picks the most visited root child after Simulations playouts.
type MCTSAI struct {
	Simulations int
	rand        game.Rand
}

func New(simulations int, r game.Rand) *MCTSAI {
	if r == nil {
		r = game.NewRand(0)
	}
	if simulations <= 0 {
		simulations = 1000
	}
	return &MCTSAI{Simulations: simulations, rand: r}
}

func (m *MCTSAI) Name() string { return fmt.Sprintf("mcts (%d)", m.Simulations) }

func (m *MCTSAI) SelectMove(b *game.Board, side game.Side) (int, error) {
	if b.IsTerminal() {
		return -1, game.ErrGameOver
	}
	root := &MCTSNode{
		state:      b.Clone(),
		column:     -1,
		mover:      side.Opponent(),
		unexplored: b.ValidMoves(),
	}

	for i := 0; i < m.Simulations; i++ {
		node := m.selectNode(root)
		winner := m.simulate(node)
		m.backpropagate(node, winner)
	}

	// most visited child
	var best *MCTSNode
	for _, child := range root.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	if best == nil {
		// no simulation ran
		return game.RandomMove(b, m.rand), nil
	}
	return best.column, nil
}

// selectNode descends by UCB1 and expands one unexplored move.
func (m *MCTSAI) selectNode(node *MCTSNode) *MCTSNode {
	for {
		if node.state.IsTerminal() {
			return node
		}
		if len(node.unexplored) > 0 {
			i := m.rand.Intn(len(node.unexplored))
			col := node.unexplored[i]
			node.unexplored = append(node.unexplored[:i], node.unexplored[i+1:]...)

			mover := node.mover.Opponent()
			state := node.state.Clone()
			state.Play(col, mover)
			child := &MCTSNode{
				state:      state,
				parent:     node,
				column:     col,
				mover:      mover,
				unexplored: state.ValidMoves(),
			}
			node.children = append(node.children, child)
			return child
		}

		var best *MCTSNode
		var bestUCB float64
		for _, child := range node.children {
			exploitation := child.totalReward / float64(child.visits)
			exploration := c * math.Sqrt(math.Log(float64(node.visits))/float64(child.visits))
			if ucb := exploitation + exploration; best == nil || ucb > bestUCB {
				best, bestUCB = child, ucb
			}
		}
		node = best
	}
}

func (m *MCTSAI) simulate(node *MCTSNode) game.Side {
	if w := node.state.Winner(); w != game.Empty {
		return w
	}
	if node.state.IsFull() {
		return game.Empty
	}
	return montecarlo.Rollout(node.state, node.mover, m.rand)
}

// backpropagate credits a win to the mover of each node on the path.
func (m *MCTSAI) backpropagate(node *MCTSNode, winner game.Side) {
	for ; node != nil; node = node.parent {
		node.visits++
		switch winner {
		case node.mover:
			node.totalReward++
		case game.Empty:
			node.totalReward += 0.5
		}
	}
}
