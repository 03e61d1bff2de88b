package policy

import "gomoku/game"

// Rule tiers, strongest first.
const (
	Win           = 4
	BlockWin      = 3
	OpenFour      = 2
	BlockOpenFour = 1
	NoRule        = 0
)

// Rule scores each empty cell by the strongest tactical rule the move satisfies.
type Rule struct{}

func (Rule) BestMoves(board *game.Board, color game.Color) []ScoredMove {
	scratch := board.Copy()
	empty := scratch.EmptyPoints()
	moves := make([]ScoredMove, len(empty))
	for i, p := range empty {
		moves[i] = ScoredMove{Move: p, Score: float64(ruleScore(scratch, color, p, true))}
	}
	sortByScore(moves)
	return moves
}

// ruleScore plays p for color, inspects the windows through it and undoes the move. Without
// blocks the open-four blocking tier is not evaluated, which is all the lookahead needs.
func ruleScore(b *game.Board, color game.Color, p game.Point, blocks bool) int {
	current := b.CurrentPlayer()
	b.PlayMove(p, color)
	defer func() {
		b.UndoMove(p)
		b.SetCurrentPlayer(current)
	}()

	score := NoRule
	for _, w := range b.Lines5(p) {
		own, opp := ownCounts(b, w, color)
		if own == game.WinLength {
			return Win
		}
		if opp == game.WinLength-1 && own == 1 {
			score = max(score, BlockWin)
		}
	}

	opponent := color.Opponent()
	for _, w := range b.Lines6(p) {
		own, opp := ownCounts(b, w, color)
		first, last := b.AtPadded(w[0]), b.AtPadded(w[len(w)-1])
		switch {
		case own == 4 && first == game.Empty && last == game.Empty:
			score = max(score, OpenFour)
		case blocks && own == 1 && opp == 3 && first != opponent && last != opponent:
			if !ambiguousBlock(b, w, color) || !hasOpenFour(b, opponent) {
				score = max(score, BlockOpenFour)
			}
		}
	}
	return score
}

// ambiguousBlock matches the two six-cell shapes where the stone sits beside a three without
// stopping it from becoming an open four.
func ambiguousBlock(b *game.Board, w game.Window, color game.Color) bool {
	opp := color.Opponent()
	shapes := [2][6]game.Color{
		{color, game.Empty, opp, opp, opp, game.Empty},
		{game.Empty, opp, opp, opp, game.Empty, color},
	}
	for _, shape := range shapes {
		match := true
		for i, idx := range w {
			if b.AtPadded(idx) != shape[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// hasOpenFour reports whether color has any reply scoring at least OpenFour.
func hasOpenFour(b *game.Board, color game.Color) bool {
	for _, p := range b.EmptyPoints() {
		if ruleScore(b, color, p, false) >= OpenFour {
			return true
		}
	}
	return false
}

func ownCounts(b *game.Board, w game.Window, color game.Color) (own, opp int) {
	black, white, _ := b.Counts(w)
	if color == game.Black {
		return black, white
	}
	return white, black
}
