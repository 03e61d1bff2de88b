package experiments

import (
	"context"
	"fmt"
	"gomoku/agent"
	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/policy"
	"gomoku/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 20 // Per match up
	TimeBudget = 100 * time.Millisecond
	BoardSize  = 7
	ResultsDir = "experiments"
)

// MatchUp pairs two agent configs. The first agent plays Black in even-numbered games.
type MatchUp [2]metrics.AgentConfig

func RunExplorationExperiment(ctx context.Context) (string, error) {
	// Each matchup pairs the reference constant against another exploration constant
	baseline := metrics.AgentConfig{ID: 0, Duration: TimeBudget, Exploration: searcher.DefaultExploration}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: TimeBudget, Exploration: 0.5},
		{ID: 2, Duration: TimeBudget, Exploration: 1.0},
		{ID: 3, Duration: TimeBudget, Exploration: 1.414},
		{ID: 4, Duration: TimeBudget, Exploration: 4.0},
	}
	return Run(ctx, ResultsDir, "exploration", append(configs, baseline), againstBaseline(baseline, configs), NumGames, BoardSize)
}

func RunSimulationsExperiment(ctx context.Context) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Duration: TimeBudget, Simulations: searcher.DefaultSimulations}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: TimeBudget, Simulations: 1},
		{ID: 2, Duration: TimeBudget, Simulations: 10},
		{ID: 3, Duration: TimeBudget, Simulations: 100},
	}
	return Run(ctx, ResultsDir, "simulations", append(configs, baseline), againstBaseline(baseline, configs), NumGames, BoardSize)
}

func RunPolicyExperiment(ctx context.Context) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Duration: TimeBudget, Policy: "combined"}
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: TimeBudget, Policy: "rule"},
		{ID: 2, Duration: TimeBudget, Policy: "heuristic"},
		{ID: 3, Duration: TimeBudget, Policy: "uniform"},
	}
	return Run(ctx, ResultsDir, "policy", append(configs, baseline), againstBaseline(baseline, configs), NumGames, BoardSize)
}

// ByName resolves an experiment for the command line.
func ByName(name string) (func(context.Context) (string, error), error) {
	switch name {
	case "exploration":
		return RunExplorationExperiment, nil
	case "simulations":
		return RunSimulationsExperiment, nil
	case "policy":
		return RunPolicyExperiment, nil
	default:
		return nil, fmt.Errorf("unknown experiment %q", name)
	}
}

func againstBaseline(baseline metrics.AgentConfig, configs []metrics.AgentConfig) []MatchUp {
	matchUps := make([]MatchUp, 0, len(configs))
	for _, config := range configs {
		matchUps = append(matchUps, MatchUp{baseline, config})
	}
	return matchUps
}

// Run plays games per match up, alternating colors, and stores the records under
// root/name/<timestamp>. It returns that directory.
func Run(ctx context.Context, root, name string, configs []metrics.AgentConfig, matchUps []MatchUp, games, size int) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%s experiment interrupted: %w", name, ctx.Err())
			}

			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}

			winner, gameMetric, moveMetrics, err := runGame(ctx, black, white, size)
			if err != nil {
				return "", fmt.Errorf("failed to run matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameMetric.StartingPlayer = black.ID
			gameRecords = append(gameRecords, metrics.GameRecord{
				Number:     count,
				Agent1:     matchUp[0].ID,
				Agent2:     matchUp[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game between two configs and returns the winner
func runGame(ctx context.Context, black, white metrics.AgentConfig, size int) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	blackMCTS, err := createMCTS(black)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	whiteMCTS, err := createMCTS(white)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	agents := [2]agent.Agent{agent.NewEvaluationAgent(blackMCTS), agent.NewEvaluationAgent(whiteMCTS)}
	e, err := engine.LocalEngine(agents, size, black.Seed)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func createMCTS(config metrics.AgentConfig) (*searcher.MCTS, error) {
	if config.Iterations <= 0 && config.Duration <= 0 {
		return nil, fmt.Errorf("agent %d has no search budget", config.ID)
	}
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Policy != "" {
		p, err := policy.ByName(config.Policy)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		options = append(options, searcher.WithPolicy(p))
	}
	options = append(options, searcher.WithSeed(config.Seed))

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...), nil
}
