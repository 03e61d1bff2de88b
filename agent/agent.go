package agent

import (
	"context"
	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Agent interface {
	// FindMove returns a move for color and performance metrics (if collected) from the search
	FindMove(ctx context.Context, board *game.Board, color game.Color) (game.Point, metrics.SearchMetric)
}
