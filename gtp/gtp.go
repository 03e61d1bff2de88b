// Package gtp serves the engine over the Go Text Protocol with the GoGui rules extensions.
package gtp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"gomoku/game"
	"gomoku/searcher"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	Name    = "Gomoku"
	Version = "1.0"

	MinTimeLimit = 1
	MaxTimeLimit = 100
)

var errUnknownCommand = errors.New("unknown command")

type command struct {
	run   func(ctx context.Context, args []string) (string, error)
	nargs int
	usage string
}

// Connection holds one game and answers commands against it.
type Connection struct {
	board      *game.Board
	options    []searcher.Option
	timeLimit  time.Duration
	movePolicy string
	out        io.Writer
	commands   map[string]command
}

// NewConnection starts an empty board of the given size. Options configure every genmove search,
// which additionally runs under the time limit.
func NewConnection(size int, timeLimit time.Duration, options []searcher.Option, out io.Writer) (*Connection, error) {
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		board:      board,
		options:    options,
		timeLimit:  timeLimit,
		movePolicy: RuleBasedPolicy,
		out:        out,
	}
	c.commands = map[string]command{
		"protocol_version":         {run: c.protocolVersion},
		"name":                     {run: c.name},
		"version":                  {run: c.version},
		"quit":                     {run: c.quit},
		"boardsize":                {run: c.boardSize, nargs: 1, usage: "boardsize INT"},
		"clear_board":              {run: c.clearBoard},
		"komi":                     {run: c.komi, nargs: 1, usage: "komi FLOAT"},
		"showboard":                {run: c.showBoard},
		"known_command":            {run: c.knownCommand, nargs: 1, usage: "known_command CMD_NAME"},
		"list_commands":            {run: c.listCommands},
		"play":                     {run: c.play, nargs: 2, usage: "play {b,w} MOVE"},
		"genmove":                  {run: c.genMove, nargs: 1, usage: "genmove {w,b}"},
		"legal_moves":              {run: c.legalMoves, nargs: 1, usage: "legal_moves {w,b}"},
		"timelimit":                {run: c.setTimeLimit, nargs: 1, usage: "timelimit INT"},
		"policy":                   {run: c.setPolicy, nargs: 1, usage: "policy {random,rule_based}"},
		"policy_moves":             {run: c.policyMoves},
		"gogui-rules_game_id":      {run: c.gameID},
		"gogui-rules_board_size":   {run: c.boardSizeQuery},
		"gogui-rules_legal_moves":  {run: c.ruleLegalMoves},
		"gogui-rules_side_to_move": {run: c.sideToMove},
		"gogui-rules_board":        {run: c.ruleBoard},
		"gogui-rules_final_result": {run: c.finalResult},
		"gogui-analyze_commands":   {run: c.analyzeCommands},
	}
	return c, nil
}

func (c *Connection) Board() *game.Board {
	return c.board
}

// Serve answers commands read from in until quit or end of input.
func (c *Connection) Serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if c.Handle(ctx, scanner.Text()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Handle answers a single command line and reports whether it was quit.
func (c *Connection) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	fields := strings.Fields(line)
	id := ""
	if _, err := strconv.Atoi(fields[0]); err == nil {
		id, fields = fields[0], fields[1:]
	}
	if len(fields) == 0 {
		c.respond(id, "", errUnknownCommand)
		return false
	}

	name, args := fields[0], fields[1:]
	log.Debug().Str("command", name).Strs("args", args).Msg("gtp command")

	cmd, ok := c.commands[name]
	switch {
	case !ok:
		c.respond(id, "", errUnknownCommand)
	case len(args) < cmd.nargs:
		c.respond(id, "", fmt.Errorf("Usage: %s", cmd.usage))
	default:
		result, err := cmd.run(ctx, args)
		c.respond(id, result, err)
	}
	return ok && name == "quit"
}

func (c *Connection) respond(id, result string, err error) {
	var werr error
	if err != nil {
		log.Debug().Err(err).Msg("gtp error")
		_, werr = fmt.Fprintf(c.out, "?%s %s\n\n", id, err)
	} else {
		_, werr = fmt.Fprintf(c.out, "=%s %s\n\n", id, result)
	}
	if werr != nil {
		log.Error().Err(werr).Msg("failed to write gtp response")
	}
}
