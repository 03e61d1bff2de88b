package gtp

import (
	"context"
	"fmt"
	"gomoku/game"
	"gomoku/policy"
	"gomoku/searcher"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Move generators reported by policy_moves.
const (
	RandomPolicy    = "random"
	RuleBasedPolicy = "rule_based"
)

var tierNames = map[int]string{
	policy.Win:           "Win",
	policy.BlockWin:      "BlockWin",
	policy.OpenFour:      "OpenFour",
	policy.BlockOpenFour: "BlockOpenFour",
}

const analyzeCommands = "pstring/Legal Moves For ToPlay/gogui-rules_legal_moves\n" +
	"pstring/Side to Play/gogui-rules_side_to_move\n" +
	"pstring/Final Result/gogui-rules_final_result\n" +
	"pstring/Board Size/gogui-rules_board_size\n" +
	"pstring/Rules GameID/gogui-rules_game_id\n" +
	"pstring/Show Board/gogui-rules_board\n" +
	"pstring/Policy Moves/policy_moves"

func (c *Connection) protocolVersion(context.Context, []string) (string, error) {
	return "2", nil
}

func (c *Connection) name(context.Context, []string) (string, error) {
	return Name, nil
}

func (c *Connection) version(context.Context, []string) (string, error) {
	return Version, nil
}

func (c *Connection) quit(context.Context, []string) (string, error) {
	return "", nil
}

func (c *Connection) boardSize(_ context.Context, args []string) (string, error) {
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return "", fmt.Errorf("Usage: boardsize INT")
	}
	board, err := game.NewBoard(size)
	if err != nil {
		return "", fmt.Errorf("unacceptable size")
	}
	c.board = board
	return "", nil
}

func (c *Connection) clearBoard(context.Context, []string) (string, error) {
	board, err := game.NewBoard(c.board.Size())
	if err != nil {
		return "", err
	}
	c.board = board
	return "", nil
}

// komi is accepted for controller compatibility and has no effect.
func (c *Connection) komi(_ context.Context, args []string) (string, error) {
	if _, err := strconv.ParseFloat(args[0], 64); err != nil {
		return "", fmt.Errorf("Usage: komi FLOAT")
	}
	return "", nil
}

func (c *Connection) showBoard(context.Context, []string) (string, error) {
	return "\n" + strings.TrimSuffix(c.board.String(), "\n"), nil
}

func (c *Connection) knownCommand(_ context.Context, args []string) (string, error) {
	_, ok := c.commands[args[0]]
	return strconv.FormatBool(ok), nil
}

func (c *Connection) listCommands(context.Context, []string) (string, error) {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, "\n"), nil
}

func (c *Connection) play(_ context.Context, args []string) (string, error) {
	color, err := game.ParseColor(args[0])
	if err != nil {
		return "", fmt.Errorf("illegal move: %q wrong color", args[0])
	}
	move, err := game.ParsePoint(args[1], c.board.Size())
	if err != nil {
		return "", fmt.Errorf("illegal move: %q wrong coordinate", args[1])
	}
	if !c.board.PlayMove(move, color) {
		return "", fmt.Errorf("illegal move: %q occupied", strings.ToLower(args[1]))
	}
	return "", nil
}

func (c *Connection) genMove(ctx context.Context, args []string) (string, error) {
	color, err := game.ParseColor(args[0])
	if err != nil {
		return "", fmt.Errorf("Usage: genmove {w,b}")
	}
	if c.board.DetectFiveInARow() == color.Opponent() {
		return "resign", nil
	}
	if c.board.IsFull() {
		return "pass", nil
	}

	options := append(slices.Clip(c.options), searcher.WithDuration(c.timeLimit))
	result, err := searcher.NewMCTS(options...).Search(ctx, c.board, color)
	if err != nil {
		log.Warn().Err(err).Msg("genmove search failed, playing its best move so far")
	}
	vertex := strings.ToLower(game.FormatPoint(result.Move, c.board.Size()))
	if !c.board.PlayMove(result.Move, color) {
		return "", fmt.Errorf("illegal move: %q occupied", vertex)
	}
	return vertex, nil
}

func (c *Connection) legalMoves(_ context.Context, args []string) (string, error) {
	if _, err := game.ParseColor(args[0]); err != nil {
		return "", fmt.Errorf("Usage: legal_moves {w,b}")
	}
	return strings.Join(c.formatMoves(c.board.EmptyPoints()), " "), nil
}

func (c *Connection) setTimeLimit(_ context.Context, args []string) (string, error) {
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds < MinTimeLimit || seconds > MaxTimeLimit {
		return "", fmt.Errorf("timelimit must be an integer in [%d, %d]", MinTimeLimit, MaxTimeLimit)
	}
	c.timeLimit = time.Duration(seconds) * time.Second
	return "", nil
}

func (c *Connection) setPolicy(_ context.Context, args []string) (string, error) {
	switch args[0] {
	case RandomPolicy, RuleBasedPolicy:
		c.movePolicy = args[0]
		return "", nil
	default:
		return "", fmt.Errorf("Usage: policy {random,rule_based}")
	}
}

// policyMoves lists the moves the simulation policy would choose from, labelled with the
// strongest rule they satisfy.
func (c *Connection) policyMoves(context.Context, []string) (string, error) {
	if c.gameOver() {
		return "", nil
	}
	kind, moves := "Random", c.board.EmptyPoints()
	if c.movePolicy == RuleBasedPolicy {
		if best := policy.Strict(policy.Rule{}).BestMoves(c.board, c.board.CurrentPlayer()); len(best) > 0 {
			kind, moves = tierNames[int(best[0].Score)], policy.Moves(best)
		}
	}
	return kind + " " + strings.Join(c.formatMoves(moves), " "), nil
}

func (c *Connection) gameID(context.Context, []string) (string, error) {
	return Name, nil
}

func (c *Connection) boardSizeQuery(context.Context, []string) (string, error) {
	return strconv.Itoa(c.board.Size()), nil
}

func (c *Connection) ruleLegalMoves(context.Context, []string) (string, error) {
	if c.gameOver() {
		return "", nil
	}
	return strings.ToLower(strings.Join(c.formatMoves(c.board.EmptyPoints()), " ")), nil
}

func (c *Connection) sideToMove(context.Context, []string) (string, error) {
	return c.board.CurrentPlayer().String(), nil
}

func (c *Connection) ruleBoard(context.Context, []string) (string, error) {
	return strings.TrimSuffix(c.board.String(), "\n"), nil
}

func (c *Connection) finalResult(context.Context, []string) (string, error) {
	if winner := c.board.DetectFiveInARow(); winner != game.Empty {
		return winner.String(), nil
	}
	if c.board.IsFull() {
		return "draw", nil
	}
	return "unknown", nil
}

func (c *Connection) analyzeCommands(context.Context, []string) (string, error) {
	return analyzeCommands, nil
}

func (c *Connection) gameOver() bool {
	return c.board.DetectFiveInARow() != game.Empty || c.board.IsFull()
}

// formatMoves renders moves as sorted vertices.
func (c *Connection) formatMoves(moves []game.Point) []string {
	vertices := make([]string, len(moves))
	for i, p := range moves {
		vertices[i] = game.FormatPoint(p, c.board.Size())
	}
	slices.Sort(vertices)
	return vertices
}
