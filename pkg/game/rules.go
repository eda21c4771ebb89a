package game

// 探索する方向 (列の増分, 行の増分): 縦, 横, 右上がり, 右下がり
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// FourInARow は side が4方向のいずれかに Connect() 個並べているかを返す
func (b *Board) FourInARow(side Side) bool {
	if side == Empty {
		return false
	}
	n := b.connect
	for _, d := range directions {
		dc, dr := d[0], d[1]
		// 最後のマスが盤内に収まる開始位置だけを見る
		cLo, cHi := 0, b.columns-1-dc*(n-1)
		rLo, rHi := 0, b.height-1-dr*(n-1)
		if dr < 0 {
			rLo, rHi = n-1, b.height-1
		}
		for c := cLo; c <= cHi; c++ {
			for r := rLo; r <= rHi; r++ {
				if b.window(c, r, dc, dr, side) {
					return true
				}
			}
		}
	}
	return false
}

func (b *Board) window(c, r, dc, dr int, side Side) bool {
	for i := 0; i < b.connect; i++ {
		if b.cells[c+i*dc][r+i*dr] != side {
			return false
		}
	}
	return true
}

// Winner は並べた側を返す。いなければ Empty
func (b *Board) Winner() Side {
	switch {
	case b.FourInARow(Player):
		return Player
	case b.FourInARow(AI):
		return AI
	default:
		return Empty
	}
}

// IsFull はどの列にも置けないかを返す
func (b *Board) IsFull() bool {
	for _, f := range b.filled {
		if f < b.height {
			return false
		}
	}
	return true
}

// IsTerminal はどちらかの勝ち、または満杯かを返す
func (b *Board) IsTerminal() bool {
	return b.FourInARow(Player) || b.FourInARow(AI) || b.IsFull()
}
