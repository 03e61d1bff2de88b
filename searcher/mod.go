package searcher

import "errors"

// Hyperparameters for MCTS

const DefaultSimulations = 50 // Rollouts per iteration (K)

const DefaultExploration = 2.0 // Exploration constant (C)

// Root children with at least DefaultRobustFactor*K simulations are preferred for the final move
const DefaultRobustFactor = 2

// ErrExhaustedCandidates means expansion found every policy move already expanded on a node
// that was never marked fully expanded.
var ErrExhaustedCandidates = errors.New("no unexpanded candidate move")
