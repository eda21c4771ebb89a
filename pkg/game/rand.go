package game

import (
	"math/rand"
	"time"
)

// Rand はエンジンが使う乱数源。*rand.Rand が満たす
type Rand interface {
	Intn(n int) int
}

// NewRand はシード付きの乱数生成器を返す。0 なら時刻をシードにする
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomMove は合法な列を一様ランダムに返す。満杯なら -1
func RandomMove(b *Board, r Rand) int {
	moves := b.ValidMoves()
	if len(moves) == 0 {
		return -1
	}
	return moves[r.Intn(len(moves))]
}

// RandomFirst は先手をランダムに選ぶ
func RandomFirst(r Rand) Side {
	if r.Intn(2) == 0 {
		return Player
	}
	return AI
}
