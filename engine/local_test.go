package engine

import (
	"context"
	"gomoku/agent"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// scriptedAgent plays its moves in order and passes once they run out.
type scriptedAgent struct {
	moves []game.Point
}

func (a *scriptedAgent) FindMove(_ context.Context, _ *game.Board, _ game.Color) (game.Point, metrics.SearchMetric) {
	if len(a.moves) == 0 {
		return game.Pass, metrics.SearchMetric{}
	}
	move := a.moves[0]
	a.moves = a.moves[1:]
	return move, metrics.SearchMetric{Iterations: 1}
}

func TestLocalEngine(t *testing.T) {
	t.Run("rejects an invalid board size", func(t *testing.T) {
		_, err := LocalEngine([2]agent.Agent{&scriptedAgent{}, &scriptedAgent{}}, 3, 1)
		require.ErrorIs(t, err, game.ErrInvalidSize)
	})

	t.Run("black wins with five in a row", func(t *testing.T) {
		black := &scriptedAgent{moves: []game.Point{0, 1, 2, 3, 4}}
		white := &scriptedAgent{moves: []game.Point{7, 8, 9, 10}}
		e, err := LocalEngine([2]agent.Agent{black, white}, 7, 1)
		require.NoError(t, err)

		winner, gameMetric, moveMetrics := e.Run(context.Background())
		require.Equal(t, game.Black, winner)
		require.Equal(t, "black", gameMetric.Winner)
		require.Equal(t, 9, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 9)
		_, err = uuid.Parse(gameMetric.ID)
		require.NoError(t, err, "Game id should be a uuid")
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))

		require.Equal(t, metrics.MoveMetric{Step: 1, Player: "black", Move: "A1", SearchMetric: metrics.SearchMetric{Iterations: 1}}, moveMetrics[0])
		require.Equal(t, "white", moveMetrics[1].Player)
		require.Equal(t, "E1", moveMetrics[8].Move)
	})

	t.Run("illegal moves are replaced by legal ones", func(t *testing.T) {
		black := &scriptedAgent{moves: []game.Point{0}}
		white := &scriptedAgent{moves: []game.Point{0}} // Occupied, then passes
		e, err := LocalEngine([2]agent.Agent{black, white}, 5, 2)
		require.NoError(t, err)

		winner, gameMetric, moveMetrics := e.Run(context.Background())
		require.NotEqual(t, game.Empty, winner, "Game should run to an outcome")
		require.LessOrEqual(t, gameMetric.TotalMoves, 25)
		for _, m := range moveMetrics {
			require.NotEqual(t, "pass", m.Move, "Passes on a non-full board should be replaced")
		}
		if winner == game.Draw {
			require.True(t, e.Board().IsFull())
		} else {
			require.Equal(t, winner, e.Board().DetectFiveInARow())
		}
	})

	t.Run("cancelled context stops the game", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e, err := LocalEngine([2]agent.Agent{&scriptedAgent{}, &scriptedAgent{}}, 7, 3)
		require.NoError(t, err)

		winner, gameMetric, _ := e.Run(ctx)
		require.Equal(t, game.Empty, winner)
		require.Zero(t, gameMetric.TotalMoves)
	})

	t.Run("search agents finish a game", func(t *testing.T) {
		newAgent := func(seed uint64) agent.Agent {
			return agent.NewEvaluationAgent(searcher.NewMCTS(searcher.WithIterations(5), searcher.WithSimulations(5), searcher.WithSeed(seed)))
		}
		e, err := LocalEngine([2]agent.Agent{newAgent(1), newAgent(2)}, 5, 4)
		require.NoError(t, err)

		winner, gameMetric, _ := e.Run(context.Background())
		require.Contains(t, []game.Color{game.Black, game.White, game.Draw}, winner)
		require.Positive(t, gameMetric.TotalMoves)
	})
}
