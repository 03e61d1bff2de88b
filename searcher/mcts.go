package searcher

import (
	"context"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/policy"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(s *settings)

type settings struct {
	duration     time.Duration
	iterations   int
	simulations  int
	exploration  float64
	robustFactor int
	seed         uint64
	policy       policy.Policy
	metrics      metrics.Collector
}

func defaultSettings() settings {
	return settings{
		simulations:  DefaultSimulations,
		exploration:  DefaultExploration,
		robustFactor: DefaultRobustFactor,
		policy:       policy.Combined(),
		metrics:      metrics.NewDummyCollector(),
	}
}

func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithIterations(iterations int) Option {
	return func(s *settings) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(s *settings) {
		if simulations > 0 {
			s.simulations = simulations
		}
	}
}

func WithExploration(exploration float64) Option {
	return func(s *settings) {
		if exploration >= 0 {
			s.exploration = exploration
		}
	}
}

func WithRobustFactor(factor int) Option {
	return func(s *settings) {
		if factor >= 0 {
			s.robustFactor = factor
		}
	}
}

// WithSeed fixes the rollout random source. Zero seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithPolicy(p policy.Policy) Option {
	return func(s *settings) {
		if p != nil {
			s.policy = p
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

// MCTS runs a fresh tree search for every move under a time and/or iteration budget.
type MCTS struct {
	settings
}

type Result struct {
	Move     game.Point
	Policy   map[game.Point]float64 // Root move -> simulations
	WinRate  float64                // Of the chosen root child
	Fallback bool                   // No iteration expanded the root; Move is random
	Metric   metrics.SearchMetric
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{settings: defaultSettings()}
	for _, option := range options {
		option(&m.settings)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	return m
}

// Search looks for color's move on board, which is not modified. Cancellation and the budget
// are checked between iterations only. The returned error is non-nil only when the tree hit an
// inconsistency; the result still holds the best move found before it.
func (m *MCTS) Search(ctx context.Context, board *game.Board, color game.Color) (Result, error) {
	m.metrics.Start(m.simulations, m.exploration)
	if board.IsFull() {
		return Result{Move: game.Pass, Metric: m.metrics.Complete()}, nil
	}

	tree := newTree(board, color, m.settings)
	err := m.run(ctx, tree)
	if err != nil {
		log.Error().Err(err).Msg("search stopped early")
	}

	result := Result{Policy: tree.Policy()}
	if len(tree.root.children) == 0 {
		empty := board.EmptyPoints()
		result.Move = empty[tree.rng.Intn(len(empty))]
		result.Fallback = true
	} else {
		best := tree.bestChild()
		result.Move = best.move
		result.WinRate = best.WinRate()
	}
	result.Metric = m.metrics.Complete()

	log.Debug().
		Str("color", color.String()).
		Int("move", int(result.Move)).
		Float64("win_rate", result.WinRate).
		Int("iterations", result.Metric.Iterations).
		Dur("duration", result.Metric.Duration).
		Bool("fallback", result.Fallback).
		Msg("search completed")

	return result, err
}

func (m *MCTS) run(ctx context.Context, tree *Tree) error {
	start := time.Now()
	for i := 0; m.iterations <= 0 || i < m.iterations; i++ {
		if ctx.Err() != nil {
			return nil
		}
		if m.duration > 0 && time.Since(start) >= m.duration {
			return nil
		}
		if err := tree.Step(); err != nil {
			return err
		}
		m.metrics.AddIteration()
	}
	return nil
}
