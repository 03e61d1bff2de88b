package searcher

import "gomoku/game"

// Node is a position in the search tree. The parent pointer is a back-reference only; each node
// owns its children.
type Node struct {
	parent   *Node
	children []*Node

	move           game.Point // game.NoMove at the root
	colorJustMoved game.Color
	path           []game.Point

	wins          float64
	sims          float64
	winner        game.Color // game.Empty while undecided
	fullyExpanded bool
}

func newRoot(colorToMove game.Color) *Node {
	return &Node{
		move:           game.NoMove,
		colorJustMoved: colorToMove.Opponent(),
	}
}

func newChild(parent *Node, move game.Point, mover game.Color) *Node {
	path := make([]game.Point, len(parent.path), len(parent.path)+1)
	copy(path, parent.path)
	return &Node{
		parent:         parent,
		move:           move,
		colorJustMoved: mover,
		path:           append(path, move),
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Move() game.Point {
	return n.move
}

func (n *Node) ColorJustMoved() game.Color {
	return n.colorJustMoved
}

// Path lists the moves from the root to this node.
func (n *Node) Path() []game.Point {
	return n.path
}

func (n *Node) Wins() float64 {
	return n.wins
}

func (n *Node) Sims() float64 {
	return n.sims
}

// Winner is game.Empty until the node is decided, then a color or game.Draw.
func (n *Node) Winner() game.Color {
	return n.winner
}

func (n *Node) IsDecided() bool {
	return n.winner != game.Empty
}

func (n *Node) FullyExpanded() bool {
	return n.fullyExpanded
}

// AddChild appends without checking for duplicate moves.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// SetTerminal records a decided outcome. A decided node is never expanded further.
func (n *Node) SetTerminal(winner game.Color) {
	n.winner = winner
	n.fullyExpanded = true
}

func (n *Node) Update(wins, sims float64) {
	n.wins += wins
	n.sims += sims
}

func (n *Node) WinRate() float64 {
	if n.sims == 0 {
		return 0
	}
	return n.wins / n.sims
}

// UCT scores the node against its parent's visits, or its own at the root.
func (n *Node) UCT(exploration float64) float64 {
	parentSims := n.sims
	if n.parent != nil {
		parentSims = n.parent.sims
	}
	return uct(n.WinRate(), n.sims, parentSims, exploration)
}
