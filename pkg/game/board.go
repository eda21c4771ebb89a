package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	NUM_COLUMNS   = 7
	COLUMN_HEIGHT = 6
	FOUR          = 4
)

var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrColumnFull    = errors.New("column is full")
	ErrBadDimensions = errors.New("bad board dimensions")
	ErrGameOver      = errors.New("game is over")
)

// Side はマスの中身とプレイヤーを兼ねる。符号はそのまま評価値の符号: Player=+1, AI=-1
type Side int8

const (
	Empty  Side = 0
	Player Side = 1
	AI     Side = -1
)

// Opponent は相手側を返す。Empty は Empty のまま
func (s Side) Opponent() Side { return -s }

// Glyph はコンソール表示用の文字
func (s Side) Glyph() byte {
	switch s {
	case Player:
		return 'X'
	case AI:
		return 'O'
	default:
		return '-'
	}
}

func (s Side) String() string {
	switch s {
	case Player:
		return "PLAYER"
	case AI:
		return "AI"
	default:
		return "EMPTY"
	}
}

// Board は (列, 行) で参照する盤面。行 0 が一番下
// 各列の駒は常に行 0 から詰まっている
type Board struct {
	columns int
	height  int
	connect int
	cells   [][]Side // cells[列][行]
	filled  []int    // 列ごとの駒数
}

// New は標準の 7x6、4目並べの空盤面を返す
func New() *Board {
	b, _ := NewBoard(NUM_COLUMNS, COLUMN_HEIGHT, FOUR)
	return b
}

// NewBoard は指定サイズの空盤面を返す
func NewBoard(columns, height, connect int) (*Board, error) {
	if columns <= 0 || height <= 0 || connect <= 1 || (connect > columns && connect > height) {
		return nil, fmt.Errorf("%w: %dx%d connect %d", ErrBadDimensions, columns, height, connect)
	}
	b := &Board{
		columns: columns,
		height:  height,
		connect: connect,
		cells:   make([][]Side, columns),
		filled:  make([]int, columns),
	}
	for c := range b.cells {
		b.cells[c] = make([]Side, height)
	}
	return b, nil
}

func (b *Board) Columns() int { return b.columns }
func (b *Board) Height() int  { return b.height }
func (b *Board) Connect() int { return b.connect }

// At はマスの中身を返す。範囲外は Empty
func (b *Board) At(column, row int) Side {
	if column < 0 || column >= b.columns || row < 0 || row >= b.height {
		return Empty
	}
	return b.cells[column][row]
}

// Clone はディープコピーを返す
func (b *Board) Clone() *Board {
	nb := &Board{
		columns: b.columns,
		height:  b.height,
		connect: b.connect,
		cells:   make([][]Side, b.columns),
		filled:  make([]int, b.columns),
	}
	for c := range b.cells {
		nb.cells[c] = make([]Side, b.height)
		copy(nb.cells[c], b.cells[c])
	}
	copy(nb.filled, b.filled)
	return nb
}

// Equal はサイズと全マスが一致するかを返す
func (b *Board) Equal(o *Board) bool {
	if b.columns != o.columns || b.height != o.height || b.connect != o.connect {
		return false
	}
	for c := range b.cells {
		if b.filled[c] != o.filled[c] {
			return false
		}
		for r := range b.cells[c] {
			if b.cells[c][r] != o.cells[c][r] {
				return false
			}
		}
	}
	return true
}

// CanPlay は column にまだ置けるかを返す
func (b *Board) CanPlay(column int) bool {
	return column >= 0 && column < b.columns && b.filled[column] < b.height
}

// ValidMoves は置ける列を昇順で返す。空なら盤面は満杯
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, b.columns)
	for c := 0; c < b.columns; c++ {
		if b.filled[c] < b.height {
			moves = append(moves, c)
		}
	}
	return moves
}

// Drop は column の一番下の空きマスに side の駒を置く
func (b *Board) Drop(column int, side Side) error {
	if column < 0 || column >= b.columns {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	if b.filled[column] >= b.height {
		return fmt.Errorf("%w: %d", ErrColumnFull, column)
	}
	b.cells[column][b.filled[column]] = side
	b.filled[column]++
	return nil
}

// Play は ValidMoves を確認済みの呼び出し元向けの Drop
// 満杯や範囲外の列はロジックエラーとして panic する
func (b *Board) Play(column int, side Side) {
	if err := b.Drop(column, side); err != nil {
		panic(fmt.Sprintf("game: play %s: %v", side, err))
	}
}

// TakeBack は column の一番上の駒を取り除く。Play と逆順に呼ぶこと
func (b *Board) TakeBack(column int) {
	if column < 0 || column >= b.columns || b.filled[column] == 0 {
		panic(fmt.Sprintf("game: take back from empty or invalid column %d", column))
	}
	b.filled[column]--
	b.cells[column][b.filled[column]] = Empty
}

// With は駒を置いて fn を実行し、fn が panic しても駒を戻す
func (b *Board) With(column int, side Side, fn func()) {
	b.Play(column, side)
	defer b.TakeBack(column)
	fn()
}

// Pieces は盤上の駒数を返す
func (b *Board) Pieces() int {
	n := 0
	for _, f := range b.filled {
		n += f
	}
	return n
}

// ToMove は first が先手だったときの現手番を返す
func (b *Board) ToMove(first Side) Side {
	if b.Pieces()%2 == 0 {
		return first
	}
	return first.Opponent()
}

// Cells は盤面を下の行から順に、各行は左の列から並べて返す
func (b *Board) Cells() [][]int {
	rows := make([][]int, b.height)
	for r := 0; r < b.height; r++ {
		rows[r] = make([]int, b.columns)
		for c := 0; c < b.columns; c++ {
			rows[r][c] = int(b.cells[c][r])
		}
	}
	return rows
}

// NewBoardFromCells は Cells と同じ形式から盤面を作る。浮いた駒はエラー
func NewBoardFromCells(rows [][]int, connect int) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadDimensions)
	}
	b, err := NewBoard(len(rows[0]), len(rows), connect)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != b.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrBadDimensions, r, len(row))
		}
		for c, v := range row {
			s := Side(v)
			if s == Empty {
				continue
			}
			if s != Player && s != AI {
				return nil, fmt.Errorf("invalid cell %d at column %d row %d", v, c, r)
			}
			if b.filled[c] != r {
				return nil, fmt.Errorf("floating piece at column %d row %d", c, r)
			}
			b.Play(c, s)
		}
	}
	return b, nil
}

// String は 1 始まりの列番号の下に、上の行から盤面を描画する
func (b *Board) String() string {
	var sb strings.Builder
	for c := 0; c < b.columns; c++ {
		fmt.Fprintf(&sb, "%d  ", c+1)
	}
	sb.WriteByte('\n')
	for r := b.height - 1; r >= 0; r-- {
		for c := 0; c < b.columns; c++ {
			sb.WriteByte(b.cells[c][r].Glyph())
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
