package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowsStayOnBoard(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		b := newBoard(t, size)
		for p := Point(0); int(p) < size*size; p++ {
			for _, windows := range [][]Window{b.Lines5(p), b.Lines6(p)} {
				for _, w := range windows {
					containsP := false
					for i, idx := range w {
						require.NotEqual(t, Border, b.AtPadded(idx), "Window through %d on size %d leaves the board", p, size)
						if i > 0 {
							step := idx - w[i-1]
							require.Contains(t, []int{1, size + 1, size + 2, size}, step, "Window cells should be contiguous")
						}
						if idx == b.ToPadded(p) {
							containsP = true
						}
					}
					require.True(t, containsP, "Window should contain its point %d", p)
				}
			}
		}
	}
}

func TestWindowCounts(t *testing.T) {
	b := newBoard(t, 7)

	// A corner only lies on one window per direction, except the blocked anti-diagonal.
	require.Len(t, b.Lines5(0), 3, "Corner should see horizontal, vertical and one diagonal window")
	require.Len(t, b.Lines6(0), 3)

	// The centre of a 7x7 board sees three windows of five in each direction.
	require.Len(t, b.Lines5(24), 12)
	// And two windows of six in each direction.
	require.Len(t, b.Lines6(24), 8)

	// On the smallest board every cell sees exactly one horizontal and one vertical window.
	small := newBoard(t, 5)
	require.Len(t, small.Lines5(12), 4, "Centre of 5x5 lies on both full diagonals")
	require.Len(t, small.Lines5(1), 2, "Off-diagonal edge cell only sees its row and column")
	require.Empty(t, small.Lines6(12), "No window of six fits on a 5x5 board")
}

func TestFullLines(t *testing.T) {
	for _, size := range []int{5, 7, 15, 25} {
		l := linesFor(size)
		require.Len(t, l.rows, size)
		require.Len(t, l.cols, size)
		require.Len(t, l.diags, (2*(size-5)+1)*2, "Diagonals shorter than five should be dropped")
		for _, d := range l.diags {
			require.GreaterOrEqual(t, len(d), WinLength)
		}
	}
}

func TestLinesAreShared(t *testing.T) {
	require.Same(t, linesFor(9), linesFor(9), "Tables should be built once per size")
}
