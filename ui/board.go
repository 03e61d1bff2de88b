// Package ui lets a human play the engine on a tview board in the terminal.
package ui

import (
	"context"
	"fmt"
	"gomoku/agent"
	"gomoku/game"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

// Left margin for the row numbers.
const marginLeft = 3

type BoardUI struct {
	Box      *tview.Box
	board    *game.Board
	hint     *tview.TextView
	engine   agent.Agent
	human    game.Color
	queue    func(func())
	ctx      context.Context
	selRow   int
	selCol   int
	thinking bool
	outcome  game.Color
}

// NewBoardUI shows board with the human playing color human against engine. Engine replies are
// queued back onto app's event loop.
func NewBoardUI(ctx context.Context, app *tview.Application, board *game.Board, human game.Color, engine agent.Agent, hint *tview.TextView) *BoardUI {
	g := &BoardUI{
		Box:    tview.NewBox(),
		board:  board,
		hint:   hint,
		engine: engine,
		human:  human,
		ctx:    ctx,
		selRow: board.Size() / 2,
		selCol: board.Size() / 2,
		queue: func(f func()) {
			app.QueueUpdateDraw(f)
		},
	}
	g.Box.SetDrawFunc(g.draw)
	g.Box.SetInputCapture(g.HandleKey)
	g.refreshHint()
	return g
}

// Start lets the engine open the game when it plays Black.
func (g *BoardUI) Start() {
	if g.board.CurrentPlayer() != g.human {
		g.think()
	}
}

func (g *BoardUI) Selected() game.Point {
	return game.Point(g.selRow*g.board.Size() + g.selCol)
}

func (g *BoardUI) Outcome() game.Color {
	return g.outcome
}

// MoveSelection shifts the cursor, staying on the board. Positive dRow moves up.
func (g *BoardUI) MoveSelection(dRow, dCol int) {
	size := g.board.Size()
	if row := g.selRow + dRow; row >= 0 && row < size {
		g.selRow = row
	}
	if col := g.selCol + dCol; col >= 0 && col < size {
		g.selCol = col
	}
}

// PlaySelected plays the human's stone under the cursor and hands the turn to the engine.
func (g *BoardUI) PlaySelected() {
	if g.outcome != game.Empty || g.thinking || g.board.CurrentPlayer() != g.human {
		return
	}
	if !g.board.PlayMove(g.Selected(), g.human) {
		g.hint.SetText(fmt.Sprintf("  %s is occupied", game.FormatPoint(g.Selected(), g.board.Size())))
		return
	}
	if !g.checkOutcome() {
		g.think()
	}
	g.refreshHint()
}

func (g *BoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		g.MoveSelection(1, 0)
	case tcell.KeyDown:
		g.MoveSelection(-1, 0)
	case tcell.KeyLeft:
		g.MoveSelection(0, -1)
	case tcell.KeyRight:
		g.MoveSelection(0, 1)
	case tcell.KeyEnter:
		g.PlaySelected()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			g.MoveSelection(1, 0)
		case 'j':
			g.MoveSelection(-1, 0)
		case 'h':
			g.MoveSelection(0, -1)
		case 'l':
			g.MoveSelection(0, 1)
		case ' ':
			g.PlaySelected()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

// think searches on a snapshot in the background; the board itself is only touched on the
// event loop.
func (g *BoardUI) think() {
	g.thinking = true
	snapshot := g.board.Copy()
	color := g.human.Opponent()
	go func() {
		move, metric := g.engine.FindMove(g.ctx, snapshot, color)
		log.Debug().Int("move", int(move)).Int("iterations", metric.Iterations).Msg("engine replied")
		g.queue(func() {
			g.applyEngineMove(move, color)
		})
	}()
}

func (g *BoardUI) applyEngineMove(move game.Point, color game.Color) {
	g.thinking = false
	if !g.board.PlayMove(move, color) {
		log.Error().Int("move", int(move)).Msg("engine played an illegal move")
	}
	g.checkOutcome()
	g.refreshHint()
}

func (g *BoardUI) checkOutcome() bool {
	if winner := g.board.DetectFiveInARow(); winner != game.Empty {
		g.outcome = winner
	} else if g.board.IsFull() {
		g.outcome = game.Draw
	}
	return g.outcome != game.Empty
}

func (g *BoardUI) refreshHint() {
	switch {
	case g.outcome == game.Draw:
		g.hint.SetText("  Draw\n\n  q · quit")
	case g.outcome == g.human:
		g.hint.SetText("  You win\n\n  q · quit")
	case g.outcome != game.Empty:
		g.hint.SetText("  Engine wins\n\n  q · quit")
	case g.thinking:
		g.hint.SetText("  Thinking...")
	default:
		g.hint.SetText(fmt.Sprintf("  Your move (%s)\n\n  hjkl/↑↓←→ move   ⏎ play\n  q quit", g.human))
	}
}

func (g *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := g.board.Size()
	lastMove := g.board.LastMove()
	for row := 0; row < size; row++ {
		top := y + size - 1 - row
		label := fmt.Sprintf("%2d", row+1)
		for i, r := range label {
			screen.SetContent(x+i, top, r, nil, tcell.StyleDefault)
		}
		for col := 0; col < size; col++ {
			p := game.Point(row*size + col)
			style := tcell.StyleDefault
			switch {
			case row == g.selRow && col == g.selCol && g.outcome == game.Empty:
				style = style.Reverse(true)
			case p == lastMove:
				style = style.Bold(true).Underline(true)
			}
			screen.SetContent(x+marginLeft+col*2, top, stoneRune(g.board.At(p)), nil, style)
			screen.SetContent(x+marginLeft+col*2+1, top, ' ', nil, tcell.StyleDefault)
		}
	}
	for col := 0; col < size; col++ {
		letter := []rune(game.FormatPoint(game.Point(col), size))[0]
		screen.SetContent(x+marginLeft+col*2, y+size, letter, nil, tcell.StyleDefault)
	}
	return x, y, width, height
}

func stoneRune(c game.Color) rune {
	switch c {
	case game.Black:
		return 'X'
	case game.White:
		return 'O'
	default:
		return '.'
	}
}
