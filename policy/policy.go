package policy

import (
	"fmt"
	"gomoku/game"

	"golang.org/x/exp/slices"
)

// ScoredMove is a candidate move ranked by a policy.
type ScoredMove struct {
	Move  game.Point
	Score float64
}

// Policy orders candidate moves for color on board, highest score first. An empty result is
// only valid on a full board. Implementations must leave board unchanged.
type Policy interface {
	BestMoves(board *game.Board, color game.Color) []ScoredMove
}

// Moves strips the scores.
func Moves(scored []ScoredMove) []game.Point {
	moves := make([]game.Point, len(scored))
	for i, s := range scored {
		moves[i] = s.Move
	}
	return moves
}

// sortByScore orders moves by descending score, keeping board order among ties.
func sortByScore(moves []ScoredMove) {
	slices.SortStableFunc(moves, func(a, b ScoredMove) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}

// Uniform offers every empty cell with the same score, in board order.
type Uniform struct{}

func (Uniform) BestMoves(board *game.Board, _ game.Color) []ScoredMove {
	empty := board.EmptyPoints()
	moves := make([]ScoredMove, len(empty))
	for i, p := range empty {
		moves[i] = ScoredMove{Move: p}
	}
	return moves
}

type strict struct {
	policy Policy
}

// Strict keeps only the top-scoring tier of p, and nothing when that tier scores zero.
func Strict(p Policy) Policy {
	return strict{policy: p}
}

func (s strict) BestMoves(board *game.Board, color game.Color) []ScoredMove {
	moves := s.policy.BestMoves(board, color)
	if len(moves) == 0 || moves[0].Score <= 0 {
		return nil
	}
	top := moves[0].Score
	end := slices.IndexFunc(moves, func(m ScoredMove) bool { return m.Score < top })
	if end < 0 {
		return moves
	}
	return moves[:end]
}

type fallback struct {
	primary   Policy
	secondary Policy
}

// Fallback consults primary and defers to secondary when primary offers nothing.
func Fallback(primary, secondary Policy) Policy {
	return fallback{primary: primary, secondary: secondary}
}

func (f fallback) BestMoves(board *game.Board, color game.Color) []ScoredMove {
	if moves := f.primary.BestMoves(board, color); len(moves) > 0 {
		return moves
	}
	return f.secondary.BestMoves(board, color)
}

// Combined plays forcing rule moves when there are any and heuristic moves otherwise.
func Combined() Policy {
	return Fallback(Strict(Rule{}), Heuristic{})
}

// ByName resolves a configured policy name.
func ByName(name string) (Policy, error) {
	switch name {
	case "combined", "":
		return Combined(), nil
	case "rule":
		return Fallback(Strict(Rule{}), Uniform{}), nil
	case "heuristic":
		return Heuristic{}, nil
	case "uniform":
		return Uniform{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}
