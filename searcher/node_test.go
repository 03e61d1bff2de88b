package searcher

import (
	"gomoku/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		got := uct(0.5, 10, 100, 2.0)

		expected := 0.5 + 2.0*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute winRate + c*sqrt(ln(N)/n)")
	})

	t.Run("unvisited node scores zero", func(t *testing.T) {
		require.Zero(t, uct(0, 0, 100, 2.0), "Should not divide by zero visits")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := uct(0.5, 10, 100, 2.0)
		score2 := uct(0.5, 10, 1000, 2.0)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		score1 := uct(0.5, 10, 100, 2.0)
		score2 := uct(0.5, 20, 100, 2.0)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with win rate", func(t *testing.T) {
		require.Greater(t, uct(0.8, 10, 100, 2.0), uct(0.2, 10, 100, 2.0),
			"Higher win rate should increase the score")
	})
}

func TestNode(t *testing.T) {
	t.Run("root stands for the opponent having just moved", func(t *testing.T) {
		root := newRoot(game.Black)

		require.Equal(t, game.White, root.ColorJustMoved())
		require.Equal(t, game.NoMove, root.Move())
		require.Empty(t, root.Path())
		require.Nil(t, root.Parent())
	})

	t.Run("child paths extend the parent path independently", func(t *testing.T) {
		root := newRoot(game.Black)
		a := newChild(root, 3, game.Black)
		root.AddChild(a)
		aa := newChild(a, 4, game.White)
		ab := newChild(a, 5, game.White)

		require.Equal(t, []game.Point{3}, a.Path())
		require.Equal(t, []game.Point{3, 4}, aa.Path())
		require.Equal(t, []game.Point{3, 5}, ab.Path(), "Sibling paths should not alias")
		require.Same(t, a, aa.Parent())
		require.Equal(t, []*Node{a}, root.Children())
	})

	t.Run("win rate and UCT of an unvisited node are zero", func(t *testing.T) {
		n := newRoot(game.Black)

		require.Zero(t, n.WinRate())
		require.Zero(t, n.UCT(DefaultExploration))
	})

	t.Run("update accumulates statistics", func(t *testing.T) {
		n := newRoot(game.Black)
		n.Update(30, 50)
		n.Update(10, 50)

		require.Equal(t, 40.0, n.Wins())
		require.Equal(t, 100.0, n.Sims())
		require.Equal(t, 0.4, n.WinRate())
	})

	t.Run("root UCT uses its own visits", func(t *testing.T) {
		n := newRoot(game.Black)
		n.Update(25, 50)

		require.InDelta(t, 0.5+2*math.Sqrt(math.Log(50)/50), n.UCT(2), 0.0001)
	})

	t.Run("terminal node is fully expanded", func(t *testing.T) {
		n := newRoot(game.Black)
		require.False(t, n.IsDecided())

		n.SetTerminal(game.Draw)
		require.True(t, n.IsDecided())
		require.True(t, n.FullyExpanded(), "A decided node should never be expanded")
		require.Equal(t, game.Draw, n.Winner())
	})
}
