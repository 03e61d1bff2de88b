package searcher

import (
	"fmt"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/policy"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Tree is one search from a fixed root position. It is not safe for concurrent use.
type Tree struct {
	board *game.Board // Root snapshot, never mutated
	color game.Color
	root  *Node

	policy       policy.Policy
	simulations  int
	exploration  float64
	robustFactor int
	rng          *rand.Rand
	metrics      metrics.Collector
}

// NewTree snapshots board with color to move. Budget options are ignored; the caller drives
// Step.
func NewTree(board *game.Board, color game.Color, options ...Option) *Tree {
	s := defaultSettings()
	for _, option := range options {
		option(&s)
	}
	return newTree(board, color, s)
}

func newTree(board *game.Board, color game.Color, s settings) *Tree {
	snapshot := board.Copy()
	snapshot.SetCurrentPlayer(color)

	seed := s.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Tree{
		board:        snapshot,
		color:        color,
		root:         newRoot(color),
		policy:       s.policy,
		simulations:  s.simulations,
		exploration:  s.exploration,
		robustFactor: s.robustFactor,
		rng:          rand.New(rand.NewSource(seed)),
		metrics:      s.metrics,
	}
}

func (t *Tree) Root() *Node {
	return t.root
}

// Step runs one select, expand, simulate, backpropagate iteration.
func (t *Tree) Step() error {
	selected := t.selectNode()
	node, board, err := t.expand(selected)
	if err != nil {
		return fmt.Errorf("failed to expand node at %v: %w", selected.path, err)
	}
	reward := t.simulate(node, board)
	t.backpropagate(node, reward)
	return nil
}

// selectNode descends by UCT. Below the root, and at the root until it is fully expanded, the
// current node competes with its own children; picking itself stops the descent.
func (t *Tree) selectNode() *Node {
	current := t.root
	for {
		var candidates []*Node
		if current == t.root && current.fullyExpanded {
			candidates = current.children
		} else {
			candidates = make([]*Node, 0, len(current.children)+1)
			candidates = append(candidates, current)
			candidates = append(candidates, current.children...)
		}

		open := make([]*Node, 0, len(candidates))
		for _, c := range candidates {
			if !c.IsDecided() {
				open = append(open, c)
			}
		}
		if len(open) == 0 {
			open = candidates
		}
		if len(open) == 0 { // Decided root without children
			return current
		}

		next := open[0]
		best := next.UCT(t.exploration)
		for _, c := range open[1:] {
			if v := c.UCT(t.exploration); v > best {
				best = v
				next = c
			}
		}

		if next == current {
			return current
		}
		current = next
	}
}

// expand replays the node's path on a copy of the root board and adds the best policy move
// that has no child yet. Fully expanded nodes and full boards come back unchanged.
func (t *Tree) expand(node *Node) (*Node, *game.Board, error) {
	board := t.board.Copy()
	for _, move := range node.path {
		board.PlayMove(move, board.CurrentPlayer())
	}

	if node.fullyExpanded || board.IsFull() {
		return node, board, nil
	}

	numEmpty := board.NumEmpty()
	moves := t.policy.BestMoves(board, board.CurrentPlayer())
	i := slices.IndexFunc(moves, func(m policy.ScoredMove) bool {
		return !slices.ContainsFunc(node.children, func(c *Node) bool { return c.move == m.Move })
	})
	if i < 0 {
		return nil, nil, ErrExhaustedCandidates
	}

	mover := board.CurrentPlayer()
	move := moves[i].Move
	if !board.PlayMove(move, mover) {
		return nil, nil, fmt.Errorf("policy offered occupied point %d", move)
	}
	child := newChild(node, move, mover)
	node.AddChild(child)

	if len(node.children) == len(moves) || numEmpty == 1 {
		node.fullyExpanded = true
	}
	return child, board, nil
}

// simulate scores the node from the perspective of the color that just moved into it.
// board is restored before returning.
func (t *Tree) simulate(node *Node, board *game.Board) float64 {
	k := float64(t.simulations)
	if board.IsFull() {
		node.SetTerminal(game.Draw)
		t.metrics.AddDecided()
		return k / 2
	}
	if winner := board.CheckWin(node.move); winner != game.Empty {
		node.SetTerminal(winner)
		t.metrics.AddDecided()
		return k
	}

	reward := 0.0
	for i := 0; i < t.simulations; i++ {
		reward += t.rollout(board, node.colorJustMoved)
	}
	t.metrics.AddRollouts(t.simulations)
	return reward
}

// rollout plays uniformly random moves until someone makes five or the board fills, then
// undoes them all. It returns 1 for a perspective win, 0.5 for a draw and 0 for a loss.
func (t *Tree) rollout(board *game.Board, perspective game.Color) float64 {
	free := board.EmptyPoints()
	played := make([]game.Point, 0, len(free))
	winner := game.Empty
	for winner == game.Empty && len(free) > 0 {
		i := t.rng.Intn(len(free))
		p := free[i]
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]

		board.PlayMove(p, board.CurrentPlayer())
		played = append(played, p)
		winner = board.CheckWin(p)
	}
	for i := len(played) - 1; i >= 0; i-- {
		board.UndoMove(played[i])
	}

	switch winner {
	case perspective:
		return 1
	case game.Empty:
		return 0.5
	default:
		return 0
	}
}

// backpropagate adds (reward, K) at the node and alternates K-reward up to the root. A decided
// node also decides its parent: the side to move there can force the same outcome.
func (t *Tree) backpropagate(node *Node, reward float64) {
	k := float64(t.simulations)
	if node.IsDecided() && node.parent != nil {
		node.parent.SetTerminal(node.winner)
	}
	for n := node; n != nil; n = n.parent {
		n.Update(reward, k)
		reward = k - reward
	}
}

// BestMove picks the root child with the highest win rate, among robust children when there
// are any. It panics when no iteration has expanded the root.
func (t *Tree) BestMove() game.Point {
	return t.bestChild().move
}

func (t *Tree) bestChild() *Node {
	children := t.root.children
	if len(children) == 0 {
		panic("root has no children")
	}

	threshold := float64(t.robustFactor * t.simulations)
	candidates := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.sims >= threshold {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = children
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.WinRate() > best.WinRate() {
			best = c
		}
	}
	return best
}

// Policy maps each expanded root move to its simulation count.
func (t *Tree) Policy() map[game.Point]float64 {
	visits := make(map[game.Point]float64, len(t.root.children))
	for _, c := range t.root.children {
		visits[c.move] = c.sims
	}
	return visits
}
