package game

import "sync"

// Lines holds the precomputed windows of a board size. Tables are immutable once built and are
// shared by every board of the same size.
type Lines struct {
	size int

	five [][]Window // per unpadded point
	six  [][]Window

	rows  []Window
	cols  []Window
	diags []Window
}

type linesStore struct {
	mu     sync.Mutex
	tables map[int]*Lines
}

var lineTables = &linesStore{tables: make(map[int]*Lines)}

func linesFor(size int) *Lines {
	lineTables.mu.Lock()
	defer lineTables.mu.Unlock()
	if lines, ok := lineTables.tables[size]; ok {
		return lines
	}
	lines := buildLines(size)
	lineTables.tables[size] = lines
	return lines
}

// Directions in window order: horizontal, vertical, diagonal towards SE, diagonal towards SW.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func buildLines(size int) *Lines {
	l := &Lines{
		size: size,
		five: make([][]Window, size*size),
		six:  make([][]Window, size*size),
	}
	for p := 0; p < size*size; p++ {
		l.five[p] = windowsThrough(size, p, WinLength)
		l.six[p] = windowsThrough(size, p, WinLength+1)
	}

	for i := 0; i < size; i++ {
		row := make(Window, 0, size)
		col := make(Window, 0, size)
		for j := 0; j < size; j++ {
			row = append(row, padded(size, i, j))
			col = append(col, padded(size, j, i))
		}
		l.rows = append(l.rows, row)
		l.cols = append(l.cols, col)
	}

	// Diagonals towards SE start on the top row or the left column, diagonals towards NE
	// start on the left column or the bottom row. Only runs that can hold a five are kept.
	for c := 0; c < size; c++ {
		l.appendDiag(0, c, 1, 1)
	}
	for r := 1; r < size; r++ {
		l.appendDiag(r, 0, 1, 1)
	}
	for r := 0; r < size; r++ {
		l.appendDiag(r, 0, -1, 1)
	}
	for c := 1; c < size; c++ {
		l.appendDiag(size-1, c, -1, 1)
	}
	return l
}

func (l *Lines) appendDiag(row, col, dr, dc int) {
	var diag Window
	for r, c := row, col; inBounds(l.size, r, c); r, c = r+dr, c+dc {
		diag = append(diag, padded(l.size, r, c))
	}
	if len(diag) >= WinLength {
		l.diags = append(l.diags, diag)
	}
}

// windowsThrough lists every in-bounds window of the given length that contains p.
func windowsThrough(size, p, length int) []Window {
	row, col := p/size, p%size
	var windows []Window
	for _, d := range directions {
		for back := length - 1; back >= 0; back-- {
			startRow, startCol := row-back*d[0], col-back*d[1]
			endRow, endCol := startRow+(length-1)*d[0], startCol+(length-1)*d[1]
			if !inBounds(size, startRow, startCol) || !inBounds(size, endRow, endCol) {
				continue
			}
			window := make(Window, length)
			for i := range window {
				window[i] = padded(size, startRow+i*d[0], startCol+i*d[1])
			}
			windows = append(windows, window)
		}
	}
	return windows
}

func inBounds(size, row, col int) bool {
	return row >= 0 && col >= 0 && row < size && col < size
}

func padded(size, row, col int) int {
	return (row+1)*(size+1) + col + 1
}
