//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/antonio-cesaria/connect-four/pkg/ai/alphabeta"
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

var engine = alphabeta.New(alphabeta.DefaultConfig(), game.NewRand(0))

type reply struct {
	Column int     `json:"column"`
	Score  float64 `json:"score"`
	Error  string  `json:"error,omitempty"`
}

// bestMove は盤面を JSON の行配列 (下の行から, PLAYER=1, AI=-1, 空=0) で受け取り
// AI の列を JSON で返す
func bestMove(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return encode(reply{Column: -1, Error: "expected one argument"})
	}
	var rows [][]int
	if err := json.Unmarshal([]byte(args[0].String()), &rows); err != nil {
		return encode(reply{Column: -1, Error: err.Error()})
	}
	b, err := game.NewBoardFromCells(rows, game.FOUR)
	if err != nil {
		return encode(reply{Column: -1, Error: err.Error()})
	}
	if b.IsTerminal() {
		return encode(reply{Column: -1, Error: alphabeta.ErrNoMoves.Error()})
	}
	col, score := engine.BestMove(b)
	return encode(reply{Column: col, Score: score})
}

func encode(r reply) string {
	b, _ := json.Marshal(r)
	return string(b)
}

func main() {
	js.Global().Set("bestMove", js.FuncOf(bestMove))
	select {}
}
