// Package heuristic は乱数を使わない静的な盤面評価
package heuristic

import (
	"math"

	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// 片方の駒だけが 1, 2, 3 個入った区間の重み
var windowWeight = []float64{0, 1, 4, 16}

// 区間スコアの合計を (-1, 1) に収める係数
const scale = 64.0

// WindowAI は片方だけがまだ並べられる長さ Connect() の区間を数えて評価する
// alphabeta.Evaluator を満たす
type WindowAI struct{}

func New() *WindowAI { return &WindowAI{} }

func (ai *WindowAI) Name() string { return "heuristic" }

// Evaluate は決着済みなら +1/-1、それ以外は PLAYER - AI の区間スコアを返します
// side は使いません
func (ai *WindowAI) Evaluate(b *game.Board, side game.Side) float64 {
	if b.FourInARow(game.Player) {
		return 1
	}
	if b.FourInARow(game.AI) {
		return -1
	}
	return math.Tanh(Score(b) / scale)
}

// Score は区間の重みの合計 (PLAYER が正) を返します
func Score(b *game.Board) float64 {
	n := b.Connect()
	var score float64
	dirs := [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for _, d := range dirs {
		for c := 0; c < b.Columns(); c++ {
			for r := 0; r < b.Height(); r++ {
				endC, endR := c+d[0]*(n-1), r+d[1]*(n-1)
				if endC < 0 || endC >= b.Columns() || endR < 0 || endR >= b.Height() {
					continue
				}
				var player, ai int
				for i := 0; i < n; i++ {
					switch b.At(c+i*d[0], r+i*d[1]) {
					case game.Player:
						player++
					case game.AI:
						ai++
					}
				}
				switch {
				case ai == 0 && player > 0:
					score += weight(player)
				case player == 0 && ai > 0:
					score -= weight(ai)
				}
			}
		}
	}
	return score
}

func weight(pieces int) float64 {
	if pieces < len(windowWeight) {
		return windowWeight[pieces]
	}
	return windowWeight[len(windowWeight)-1]
}
