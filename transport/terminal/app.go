package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App is the full screen front-end: the board on top, the status line below.
type App struct {
	logger *slog.Logger

	app     *tview.Application
	session *Session
	board   *BoardView
	status  *tview.TextView
}

func NewApp(logger *slog.Logger, session *Session) *App {
	that := &App{
		logger:  logger.With("component", "terminal"),
		app:     tview.NewApplication(),
		session: session,
	}

	that.status = tview.NewTextView().SetDynamicColors(true)
	that.status.SetBorder(true).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)

	that.board = NewBoardView(session, that.refresh)
	that.board.SetBorder(true).SetTitle(" m,n,k tic-tac-toe ")

	game := session.Game()
	boardWidth := game.Board.Cols()*cellWidth + 1
	boardHeight := game.Board.Rows()*cellHeight + 1

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(that.board, boardHeight, 0, true).
		AddItem(that.status, 5, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	root := tview.NewFlex().
		AddItem(layout, max(boardWidth, 44), 0, true).
		AddItem(tview.NewBox(), 0, 1, false)

	that.app.SetRoot(root, true).EnableMouse(true)
	that.app.SetInputCapture(that.handleKey)
	that.refresh()

	return that
}

func (that *App) Run() error {
	that.logger.Info("terminal started")

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("terminal failed: %w", err)
	}

	that.logger.Info("terminal stopped")

	return nil
}

func (that *App) Stop() {
	that.app.Stop()
}

func (that *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEsc, event.Key() == tcell.KeyRune && event.Rune() == 'q':
		that.app.Stop()
		return nil
	case event.Key() == tcell.KeyRune && event.Rune() == 'r':
		if err := that.session.Restart(); err != nil {
			that.logger.Error("failed to restart", "error", err)
		}
		that.board.ResetSelection()
		that.refresh()
		return nil
	}

	return event
}

func (that *App) refresh() {
	that.status.SetText(that.session.Status() + "\n[gray]click or arrows+enter to play, r restart, q quit[-]")
}
