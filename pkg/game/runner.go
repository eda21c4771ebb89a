package game

import (
	"fmt"
	"io"
	"time"

	"github.com/antonio-cesaria/connect-four/pkg/game/debug"
)

// Move は確定した一手
type Move struct {
	Side   Side
	Column int
}

// BattleResult は対戦結果の記録。メモリ上にのみ保持する
type BattleResult struct {
	First  Side   // 先手
	Moves  []Move // 手の履歴
	Winner Side   // 引き分けなら Empty
	Final  *Board
}

// Draw は引き分けで終わったかを返す
func (r BattleResult) Draw() bool { return r.Winner == Empty }

// GameRunner は PLAYER と AI の対戦を管理
type GameRunner struct {
	agents map[Side]Agent
	board  *Board
	// Out に盤面と結果を出力する。nil なら何も出さない
	Out io.Writer
}

// NewGameRunner はエージェントを標準盤面にセットして返す
func NewGameRunner(player, ai Agent) *GameRunner {
	return &GameRunner{agents: map[Side]Agent{Player: player, AI: ai}, board: New()}
}

// WithBoard は初期盤面を差し替える。以降 b は GameRunner が所有する
func (gr *GameRunner) WithBoard(b *Board) *GameRunner {
	gr.board = b
	return gr
}

// Board は対戦中の盤面を返す
func (gr *GameRunner) Board() *Board { return gr.board }

// Run はどちらかが並べるか盤面が埋まるまで対戦し BattleResult を返す
func (gr *GameRunner) Run(first Side) (BattleResult, error) {
	if first != Player && first != AI {
		return BattleResult{}, fmt.Errorf("invalid first side %d", first)
	}
	board := gr.board
	result := BattleResult{First: first, Moves: make([]Move, 0, board.Columns()*board.Height())}
	gr.printf("%s\n", board)

	// ゲームループ
	side := board.ToMove(first)
	for {
		if w := board.Winner(); w != Empty {
			result.Winner = w
			gr.printf("%s WINS!!!\n", w)
			break
		}
		if board.IsFull() {
			gr.printf("DRAW!\n")
			break
		}

		agent := gr.agents[side]
		debug.Log("Turn: %s (%s), legal moves: %v", side, agent.Name(), board.ValidMoves())

		start := time.Now()
		col, err := agent.SelectMove(board, side)
		if err != nil {
			return result, fmt.Errorf("%s move: %w", agent.Name(), err)
		}
		// 不正な手はエラーとして返す
		if err := board.Drop(col, side); err != nil {
			return result, fmt.Errorf("%s move: %w", agent.Name(), err)
		}
		elapsed := time.Since(start)

		result.Moves = append(result.Moves, Move{Side: side, Column: col})
		debug.Log("Selected column %d for %s in %s", col, side, elapsed)
		gr.printf("%s chooses column %d! (took %.3fs)\n\n", agent.Name(), col+1, elapsed.Seconds())
		gr.printf("%s\n", board)

		side = side.Opponent()
	}

	result.Final = board.Clone()
	return result, nil
}

func (gr *GameRunner) printf(format string, args ...any) {
	if gr.Out == nil {
		return
	}
	fmt.Fprintf(gr.Out, format, args...)
}
