package ui

import (
	"context"
	"gomoku/agent"
	"gomoku/game"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Run plays one game in the terminal until the user quits.
func Run(ctx context.Context, board *game.Board, human game.Color, engine agent.Agent) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := tview.NewApplication()

	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	boardUI := NewBoardUI(ctx, app, board, human, engine, hint)

	layout := tview.NewFlex().
		AddItem(boardUI.Box, marginLeft+board.Size()*2+1, 0, true).
		AddItem(hint, 0, 1, false)
	layout.SetBorder(true).SetTitle(" Gomoku ")

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if (event.Key() == tcell.KeyRune && event.Rune() == 'q') || event.Key() == tcell.KeyCtrlC {
			cancel()
			app.Stop()
			return nil
		}
		return event
	})

	boardUI.Start()
	return app.SetRoot(layout, true).SetFocus(boardUI.Box).Run()
}
