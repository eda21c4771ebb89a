// Package human reads moves typed on a console.
package human

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antonio-cesaria/connect-four/pkg/game"
)

// HumanAI asks for a 1-indexed column until it reads a legal one.
type HumanAI struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *HumanAI {
	return &HumanAI{in: bufio.NewScanner(in), out: out}
}

func (h *HumanAI) Name() string { return "PLAYER" }

func (h *HumanAI) SelectMove(b *game.Board, side game.Side) (int, error) {
	legal := b.ValidMoves()
	shown := make([]int, len(legal))
	for i, c := range legal {
		shown[i] = c + 1
	}
	for {
		fmt.Fprintf(h.out, "Enter a column from %v: ", shown)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return -1, fmt.Errorf("read column: %w", err)
			}
			return -1, io.EOF
		}
		if col, ok := parseColumn(h.in.Text(), b); ok {
			return col, nil
		}
	}
}

// parseColumn accepts a digit string naming a legal column and returns
// it 0-indexed.
func parseColumn(text string, b *game.Board) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return -1, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return -1, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return -1, false
	}
	if !b.CanPlay(n - 1) {
		return -1, false
	}
	return n - 1, true
}
