package policy

import "gomoku/game"

// windowScores values a window by how many stones one side holds in it. A completed five
// dominates every other term.
var windowScores = [game.WinLength + 1]int{0, 1, 2, 5, 15, 1000}

// Heuristic ranks each empty cell by how much playing it improves a window evaluation for the
// mover. Only the windows through the cell change, so only those are scored.
type Heuristic struct{}

func (Heuristic) BestMoves(board *game.Board, color game.Color) []ScoredMove {
	scratch := board.Copy()
	empty := scratch.EmptyPoints()
	moves := make([]ScoredMove, len(empty))
	for i, p := range empty {
		moves[i] = ScoredMove{Move: p, Score: float64(heuristicDelta(scratch, color, p))}
	}
	sortByScore(moves)
	return moves
}

func heuristicDelta(b *game.Board, color game.Color, p game.Point) int {
	windows := b.Lines5(p)
	before := 0
	for _, w := range windows {
		before += windowScore(b, w, color)
	}

	current := b.CurrentPlayer()
	b.PlayMove(p, color)
	after := 0
	for _, w := range windows {
		after += windowScore(b, w, color)
	}
	b.UndoMove(p)
	b.SetCurrentPlayer(current)

	return after - before
}

// windowScore is zero for a window both sides hold stones in.
func windowScore(b *game.Board, w game.Window, color game.Color) int {
	own, opp := ownCounts(b, w, color)
	if own > 0 && opp > 0 {
		return 0
	}
	return windowScores[own] - windowScores[opp]
}
