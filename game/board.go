package game

import (
	"fmt"
	"strings"
)

// Board is a Gomoku grid stored in a padded one-dimensional array. Every cell outside the
// interior holds Border, so window walks never need bounds checks.
//
// Padded layout for size N: stride N+1, interior cell (row, col) at (row+1)*(N+1) + col+1,
// plus a margin so the last row is followed by a full border row.
type Board struct {
	size    int
	stride  int
	cells   []Color
	empty   int
	current Color

	lastMove       Point
	secondLastMove Point

	lines *Lines
}

// NewBoard returns an empty board with Black to move.
func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("board size %d outside [%d, %d]: %w", size, MinSize, MaxSize, ErrInvalidSize)
	}

	stride := size + 1
	cells := make([]Color, size*size+3*stride)
	for i := range cells {
		cells[i] = Border
	}
	for row := 1; row <= size; row++ {
		start := row*stride + 1
		for i := start; i < start+size; i++ {
			cells[i] = Empty
		}
	}

	return &Board{
		size:           size,
		stride:         stride,
		cells:          cells,
		empty:          size * size,
		current:        Black,
		lastMove:       NoMove,
		secondLastMove: NoMove,
		lines:          linesFor(size),
	}, nil
}

// Copy duplicates cell state and move history. Line tables are shared.
func (b *Board) Copy() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:           b.size,
		stride:         b.stride,
		cells:          cells,
		empty:          b.empty,
		current:        b.current,
		lastMove:       b.lastMove,
		secondLastMove: b.secondLastMove,
		lines:          b.lines,
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) CurrentPlayer() Color {
	return b.current
}

// SetCurrentPlayer overrides the side to move, as a GTP "play" for the non-moving side requires.
func (b *Board) SetCurrentPlayer(c Color) {
	b.current = c
}

func (b *Board) LastMove() Point {
	return b.lastMove
}

func (b *Board) SecondLastMove() Point {
	return b.secondLastMove
}

func (b *Board) NumEmpty() int {
	return b.empty
}

func (b *Board) IsFull() bool {
	return b.empty == 0
}

// Contains reports whether p is an interior cell.
func (b *Board) Contains(p Point) bool {
	return p >= 0 && int(p) < b.size*b.size
}

// At returns the color of an unpadded point.
func (b *Board) At(p Point) Color {
	return b.cells[b.ToPadded(p)]
}

// AtPadded returns the color of a padded index, as found in windows.
func (b *Board) AtPadded(i int) Color {
	return b.cells[i]
}

// EmptyPoints lists the empty cells in row-major order.
func (b *Board) EmptyPoints() []Point {
	points := make([]Point, 0, b.empty)
	for p := Point(0); int(p) < b.size*b.size; p++ {
		if b.cells[b.ToPadded(p)] == Empty {
			points = append(points, p)
		}
	}
	return points
}

func (b *Board) ToPadded(p Point) int {
	return (int(p)/b.size+1)*b.stride + int(p)%b.size + 1
}

func (b *Board) ToUnpadded(i int) Point {
	return Point((i/b.stride-1)*b.size + i%b.stride - 1)
}

// PlayMove places a stone of color c on p and hands the move to the opponent. It returns false
// without touching the board when p is occupied or off the board. A pass always succeeds.
func (b *Board) PlayMove(p Point, c Color) bool {
	if p != Pass {
		if !b.Contains(p) {
			return false
		}
		i := b.ToPadded(p)
		if b.cells[i] != Empty {
			return false
		}
		b.cells[i] = c
		b.empty--
	}
	b.current = c.Opponent()
	b.secondLastMove = b.lastMove
	b.lastMove = p
	return true
}

// UndoMove empties p and flips the side to move back. It must only reverse the most recent
// PlayMove on p; the move history fields are not restored.
func (b *Board) UndoMove(p Point) {
	if p != Pass {
		i := b.ToPadded(p)
		if b.cells[i].IsStone() {
			b.empty++
		}
		b.cells[i] = Empty
	}
	b.current = b.current.Opponent()
}

// Lines5 lists the length-5 windows through p.
func (b *Board) Lines5(p Point) []Window {
	return b.lines.five[p]
}

// Lines6 lists the length-6 windows through p.
func (b *Board) Lines6(p Point) []Window {
	return b.lines.six[p]
}

// Counts tallies the stones in a window.
func (b *Board) Counts(w Window) (black, white, empty int) {
	for _, i := range w {
		switch b.cells[i] {
		case Black:
			black++
		case White:
			white++
		default:
			empty++
		}
	}
	return black, white, empty
}

// CheckWin inspects only the length-5 windows through p and returns the color owning any of
// them, or Empty.
func (b *Board) CheckWin(p Point) Color {
	if !b.Contains(p) {
		return Empty
	}
	for _, w := range b.lines.five[p] {
		black, white, _ := b.Counts(w)
		if black == WinLength {
			return Black
		}
		if white == WinLength {
			return White
		}
	}
	return Empty
}

// DetectFiveInARow scans every row, column and diagonal of the board. It is meant for use
// between turns; search code uses CheckWin.
func (b *Board) DetectFiveInARow() Color {
	for _, lines := range [][]Window{b.lines.rows, b.lines.cols, b.lines.diags} {
		for _, line := range lines {
			if c := b.fiveInLine(line); c != Empty {
				return c
			}
		}
	}
	return Empty
}

func (b *Board) fiveInLine(line Window) Color {
	prev := Border
	run := 0
	for _, i := range line {
		c := b.cells[i]
		if c == prev {
			run++
		} else {
			run = 1
			prev = c
		}
		if run == WinLength && prev.IsStone() {
			return prev
		}
	}
	return Empty
}

// String renders the board top row first, X for Black, O for White and . for empty.
func (b *Board) String() string {
	var sb strings.Builder
	for row := b.size - 1; row >= 0; row-- {
		for col := 0; col < b.size; col++ {
			switch b.At(Point(row*b.size + col)) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
