package engine

import (
	"context"
	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Engine interface {
	// Run plays a game till someone makes five or the board is full
	Run(ctx context.Context) (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
