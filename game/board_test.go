package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, size int) *Board {
	t.Helper()
	b, err := NewBoard(size)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Run("rejects sizes outside the supported range", func(t *testing.T) {
		for _, size := range []int{0, 4, 26} {
			_, err := NewBoard(size)
			require.ErrorIs(t, err, ErrInvalidSize, "Size %d should be rejected", size)
		}
	})

	t.Run("starts empty with black to move", func(t *testing.T) {
		b := newBoard(t, 7)

		require.Equal(t, 49, b.NumEmpty(), "Every interior cell should be empty")
		require.Len(t, b.EmptyPoints(), 49, "Every interior cell should be listed")
		require.Equal(t, Black, b.CurrentPlayer(), "Black should move first")
		require.Equal(t, NoMove, b.LastMove(), "No move should be recorded")
	})

	t.Run("pads the interior with border cells", func(t *testing.T) {
		b := newBoard(t, 5)

		interior := map[int]bool{}
		for p := Point(0); p < 25; p++ {
			interior[b.ToPadded(p)] = true
		}
		for i := range b.cells {
			if interior[i] {
				require.Equal(t, Empty, b.AtPadded(i), "Interior index %d should be empty", i)
			} else {
				require.Equal(t, Border, b.AtPadded(i), "Padding index %d should be border", i)
			}
		}
	})
}

func TestPaddedMapping(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		b := newBoard(t, size)
		for p := Point(0); int(p) < size*size; p++ {
			require.Equal(t, p, b.ToUnpadded(b.ToPadded(p)), "Round trip should hold for %d on size %d", p, size)
		}
	}

	b := newBoard(t, 7)
	require.Equal(t, 9, b.ToPadded(0), "Cell (0,0) should map to row 1 col 1 with stride 8")
	require.Equal(t, 7*8+7, b.ToPadded(48), "Cell (6,6) should map to row 7 col 7")
}

func TestPlayMove(t *testing.T) {
	t.Run("places a stone and hands over the move", func(t *testing.T) {
		b := newBoard(t, 7)

		require.True(t, b.PlayMove(10, Black))
		require.Equal(t, Black, b.At(10))
		require.Equal(t, White, b.CurrentPlayer())
		require.Equal(t, Point(10), b.LastMove())
		require.Equal(t, 48, b.NumEmpty())

		require.True(t, b.PlayMove(11, White))
		require.Equal(t, Point(11), b.LastMove())
		require.Equal(t, Point(10), b.SecondLastMove())
	})

	t.Run("refuses an occupied cell without mutation", func(t *testing.T) {
		b := newBoard(t, 7)
		require.True(t, b.PlayMove(10, Black))

		require.False(t, b.PlayMove(10, White), "Occupied cell should be illegal")
		require.Equal(t, Black, b.At(10), "Stone should be unchanged")
		require.Equal(t, White, b.CurrentPlayer(), "Side to move should be unchanged")
		require.Equal(t, 48, b.NumEmpty())
	})

	t.Run("refuses a point off the board", func(t *testing.T) {
		b := newBoard(t, 7)

		require.False(t, b.PlayMove(49, Black))
		require.False(t, b.PlayMove(-5, Black))
	})

	t.Run("pass only flips the side to move", func(t *testing.T) {
		b := newBoard(t, 7)

		require.True(t, b.PlayMove(Pass, Black))
		require.Equal(t, White, b.CurrentPlayer())
		require.Equal(t, 49, b.NumEmpty())
		require.Equal(t, Pass, b.LastMove())
	})
}

func TestUndoMove(t *testing.T) {
	b := newBoard(t, 9)
	require.True(t, b.PlayMove(40, Black))
	before := b.Copy()

	require.True(t, b.PlayMove(41, White))
	b.UndoMove(41)

	require.Equal(t, before.cells, b.cells, "Cells should be restored exactly")
	require.Equal(t, before.CurrentPlayer(), b.CurrentPlayer(), "Side to move should be restored")
	require.Equal(t, before.NumEmpty(), b.NumEmpty(), "Empty count should be restored")

	b.PlayMove(Pass, White)
	b.UndoMove(Pass)
	require.Equal(t, White, b.CurrentPlayer(), "Undoing a pass should flip the side back")
}

func TestCopy(t *testing.T) {
	b := newBoard(t, 7)
	b.PlayMove(3, Black)

	c := b.Copy()
	c.PlayMove(4, White)

	require.Equal(t, Empty, b.At(4), "Copy should not share cells")
	require.Equal(t, Black, c.At(3), "Copy should carry existing stones")
	require.Same(t, b.lines, c.lines, "Line tables should be shared")
}

func TestCheckWin(t *testing.T) {
	t.Run("horizontal five agrees with the full scan", func(t *testing.T) {
		b := newBoard(t, 7)
		row := 3
		for col := 1; col <= 5; col++ {
			p := Point(row*7 + col)
			require.True(t, b.PlayMove(p, Black))
			if col < 5 {
				require.Equal(t, Empty, b.CheckWin(p), "Four stones should not win")
				require.Equal(t, Empty, b.DetectFiveInARow())
			} else {
				require.Equal(t, Black, b.CheckWin(p), "Fifth stone should win")
				require.Equal(t, Black, b.DetectFiveInARow(), "Full scan should agree")
			}
			b.SetCurrentPlayer(Black)
		}
	})

	t.Run("vertical and diagonal fives", func(t *testing.T) {
		cases := map[string][]Point{
			"vertical":      {2, 9, 16, 23, 30},
			"diagonal SE":   {0, 8, 16, 24, 32},
			"diagonal SW":   {6, 12, 18, 24, 30},
			"edge diagonal": {14, 22, 30, 38, 46},
		}
		for name, points := range cases {
			b := newBoard(t, 7)
			for _, p := range points {
				require.True(t, b.PlayMove(p, White), name)
			}
			last := points[len(points)-1]
			require.Equal(t, White, b.CheckWin(last), "%s five should be found locally", name)
			require.Equal(t, White, b.CheckWin(points[0]), "%s five should be found from any stone", name)
			require.Equal(t, White, b.DetectFiveInARow(), "%s five should be found by the full scan", name)
		}
	})

	t.Run("no wrap across rows", func(t *testing.T) {
		b := newBoard(t, 7)
		// 5, 6 end row 0 and 7, 8, 9 start row 1.
		for _, p := range []Point{5, 6, 7, 8, 9} {
			require.True(t, b.PlayMove(p, Black))
		}
		require.Equal(t, Empty, b.CheckWin(9))
		require.Equal(t, Empty, b.DetectFiveInARow())
	})

	t.Run("mixed window is not a win", func(t *testing.T) {
		b := newBoard(t, 7)
		for i, p := range []Point{0, 1, 2, 3, 4} {
			c := Black
			if i == 2 {
				c = White
			}
			require.True(t, b.PlayMove(p, c))
		}
		require.Equal(t, Empty, b.CheckWin(4))
		require.Equal(t, Empty, b.DetectFiveInARow())
	})

	t.Run("pass and off-board points never win", func(t *testing.T) {
		b := newBoard(t, 7)
		require.Equal(t, Empty, b.CheckWin(Pass))
		require.Equal(t, Empty, b.CheckWin(NoMove))
	})
}

func TestDetectFiveInARow(t *testing.T) {
	t.Run("six in a row still counts", func(t *testing.T) {
		b := newBoard(t, 9)
		for col := 0; col < 6; col++ {
			require.True(t, b.PlayMove(Point(9*4+col), Black))
		}
		require.Equal(t, Black, b.DetectFiveInARow())
	})

	t.Run("broken run does not count", func(t *testing.T) {
		b := newBoard(t, 9)
		for _, col := range []int{0, 1, 2, 4, 5, 6} {
			require.True(t, b.PlayMove(Point(col), White))
		}
		require.Equal(t, Empty, b.DetectFiveInARow())
	})
}

func TestString(t *testing.T) {
	b := newBoard(t, 5)
	b.PlayMove(0, Black)
	b.PlayMove(24, White)

	want := "....O\n" +
		".....\n" +
		".....\n" +
		".....\n" +
		"X....\n"
	require.Equal(t, want, b.String(), "Row 0 should be printed last")
}
