package agent

import (
	"context"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples moves in proportion to root
// visits raised to 1/temperature. A zero seed is taken from the clock.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, board *game.Board, color game.Color) (game.Point, metrics.SearchMetric) {
	result, _ := a.mcts.Search(ctx, board, color)
	if len(result.Policy) == 0 {
		return result.Move, result.Metric
	}
	policy := adjustTemperature(result.Policy, a.temperature)
	return sample(policy, a.rng.Float64()), result.Metric
}

func adjustTemperature(policy map[game.Point]float64, temperature float64) map[game.Point]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Point]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the moves in board order so a fixed draw always maps to the same move.
func sample(policy map[game.Point]float64, draw float64) game.Point {
	moves := make([]game.Point, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.Sort(moves)

	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if draw < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
