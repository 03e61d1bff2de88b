package agent

import (
	"context"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, board *game.Board, color game.Color) (game.Point, metrics.SearchMetric) {
	// The search logs its own failures and still reports its best move
	result, _ := a.mcts.Search(ctx, board, color)
	return result.Move, result.Metric
}
