package random

import (
	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// RandomAI はランダムに列を選ぶ実装
type RandomAI struct {
	rand game.Rand
}

// New は r を使う RandomAI を生成する
func New(r game.Rand) *RandomAI {
	if r == nil {
		r = game.NewRand(0)
	}
	return &RandomAI{rand: r}
}

func (ai *RandomAI) Name() string { return "random" }

func (ai *RandomAI) SelectMove(b *game.Board, side game.Side) (int, error) {
	col := game.RandomMove(b, ai.rand)
	if col < 0 {
		return -1, game.ErrGameOver
	}
	return col, nil
}
