package game

import (
	"errors"
	"strings"
	"testing"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := New()
	if b.Columns() != NUM_COLUMNS || b.Height() != COLUMN_HEIGHT || b.Connect() != FOUR {
		t.Fatalf("unexpected geometry %dx%d connect %d", b.Columns(), b.Height(), b.Connect())
	}
	moves := b.ValidMoves()
	if len(moves) != NUM_COLUMNS {
		t.Fatalf("expected %d valid moves, got %v", NUM_COLUMNS, moves)
	}
	for i, c := range moves {
		if c != i {
			t.Fatalf("expected ascending columns, got %v", moves)
		}
	}
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, tc := range [][3]int{{0, 6, 4}, {7, 0, 4}, {7, 6, 1}, {3, 3, 4}} {
		if _, err := NewBoard(tc[0], tc[1], tc[2]); !errors.Is(err, ErrBadDimensions) {
			t.Fatalf("NewBoard(%v): expected ErrBadDimensions, got %v", tc, err)
		}
	}
}

func TestPlayFillsFromBottom(t *testing.T) {
	b := New()
	b.Play(3, Player)
	b.Play(3, AI)
	if b.At(3, 0) != Player || b.At(3, 1) != AI || b.At(3, 2) != Empty {
		t.Fatalf("pieces not stacked from row 0:\n%s", b)
	}
}

func TestPlayTakeBackRoundTrip(t *testing.T) {
	b := New()
	r := NewRand(7)
	for i := 0; i < 20; i++ {
		b.Play(RandomMove(b, r), []Side{Player, AI}[i%2])
	}
	for _, c := range b.ValidMoves() {
		for _, s := range []Side{Player, AI} {
			before := b.Clone()
			b.Play(c, s)
			b.TakeBack(c)
			if !b.Equal(before) {
				t.Fatalf("play/take back on column %d changed the board:\n%s\nwant\n%s", c, b, before)
			}
		}
	}
}

func TestFullColumn(t *testing.T) {
	b := New()
	for i := 0; i < COLUMN_HEIGHT; i++ {
		b.Play(0, Player)
	}
	for _, c := range b.ValidMoves() {
		if c == 0 {
			t.Fatalf("full column listed as valid: %v", b.ValidMoves())
		}
	}
	if err := b.Drop(0, AI); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if err := b.Drop(NUM_COLUMNS, AI); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	mustPanic(t, "play on full column", func() { b.Play(0, AI) })
	mustPanic(t, "take back on empty column", func() { b.TakeBack(1) })
}

func TestWithRestoresOnPanic(t *testing.T) {
	b := New()
	before := b.Clone()
	mustPanic(t, "panicking body", func() {
		b.With(2, AI, func() {
			if b.At(2, 0) != AI {
				t.Fatalf("move not applied inside With")
			}
			panic("boom")
		})
	})
	if !b.Equal(before) {
		t.Fatalf("With left the board modified:\n%s", b)
	}
}

func TestCellsRoundTrip(t *testing.T) {
	b := New()
	b.Play(0, Player)
	b.Play(0, AI)
	b.Play(6, AI)
	nb, err := NewBoardFromCells(b.Cells(), FOUR)
	if err != nil {
		t.Fatalf("NewBoardFromCells: %v", err)
	}
	if !nb.Equal(b) {
		t.Fatalf("rebuilt board differs:\n%s\nwant\n%s", nb, b)
	}

	rows := New().Cells()
	rows[1][3] = int(Player)
	if _, err := NewBoardFromCells(rows, FOUR); err == nil {
		t.Fatalf("expected floating piece to be rejected")
	}
}

func TestStringGlyphs(t *testing.T) {
	b := New()
	b.Play(0, Player)
	b.Play(1, AI)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != COLUMN_HEIGHT+1 {
		t.Fatalf("expected %d lines, got %d", COLUMN_HEIGHT+1, len(lines))
	}
	if !strings.HasPrefix(lines[0], "1  2  3") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "X  O  -") {
		t.Fatalf("unexpected bottom row %q", lines[len(lines)-1])
	}
}

func TestToMove(t *testing.T) {
	b := New()
	if b.ToMove(AI) != AI {
		t.Fatalf("expected opener to move on an empty board")
	}
	b.Play(0, AI)
	if b.ToMove(AI) != Player {
		t.Fatalf("expected PLAYER to move after one piece")
	}
}
