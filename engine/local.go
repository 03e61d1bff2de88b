package engine

import (
	"context"
	"fmt"
	"gomoku/agent"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Local plays two in-process agents against each other. agents[0] plays Black and moves first.
type Local struct {
	board  *game.Board
	agents [2]agent.Agent
	rng    *rand.Rand
}

// LocalEngine sets up an empty board. The seed drives the replacement of illegal agent moves;
// zero seeds from the clock.
func LocalEngine(agents [2]agent.Agent, size int, seed uint64) (*Local, error) {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Local{
		board:  board,
		agents: agents,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

func (e *Local) Board() *game.Board {
	return e.board
}

// Run returns Black, White or Draw, or Empty when ctx ends the game early.
func (e *Local) Run(ctx context.Context) (game.Color, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
	}
	log.Info().Msgf("game %s: black is starting", gameMetric.ID)

	var moveMetrics []metrics.MoveMetric
	winner := game.Empty
	step := 1
	for ; ctx.Err() == nil; step++ {
		if winner = e.board.DetectFiveInARow(); winner != game.Empty {
			break
		}
		if e.board.IsFull() {
			winner = game.Draw
			break
		}

		color := e.board.CurrentPlayer()
		move, searchMetric := e.agents[agentIndex(color)].FindMove(ctx, e.board, color)
		if !e.board.Contains(move) || e.board.At(move) != game.Empty {
			legal := e.board.EmptyPoints()
			replacement := legal[e.rng.Intn(len(legal))]
			log.Warn().Msgf("%s returned illegal move %s, playing %s instead",
				color, game.FormatPoint(move, e.board.Size()), game.FormatPoint(replacement, e.board.Size()))
			move = replacement
		}
		e.board.PlayMove(move, color)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       color.String(),
			Move:         game.FormatPoint(move, e.board.Size()),
			SearchMetric: searchMetric,
		})
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = winner.String()

	log.Info().Msgf("game %s: %s after %d moves", gameMetric.ID, outcome(winner), len(moveMetrics))
	return winner, gameMetric, moveMetrics
}

func agentIndex(color game.Color) int {
	if color == game.White {
		return 1
	}
	return 0
}

func outcome(winner game.Color) string {
	switch winner {
	case game.Black, game.White:
		return winner.String() + " wins"
	case game.Draw:
		return "draw"
	default:
		return "stopped"
	}
}
